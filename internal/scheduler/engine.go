package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/hamed0406/sitecheck/internal/domain"
	"github.com/hamed0406/sitecheck/internal/metrics"
	"github.com/hamed0406/sitecheck/internal/probe"
	"github.com/hamed0406/sitecheck/internal/stats"
)

// Sink receives every ProbeResult the engine produces, one per
// (target, round) pair, in drain order.
type Sink interface {
	Emit(r domain.ProbeResult) error
}

type job struct {
	target domain.Target
	round  int
}

// Engine drives rounds of probes across a fixed worker pool.
//
// One job per target per round goes onto a shared channel; workers
// probe and publish results; the coordinator drains exactly
// len(targets) results before the round ends, so rounds never
// overlap. A cancelled context lets the running round drain fully and
// prevents the next one from starting.
type Engine struct {
	Logger   *zap.Logger
	Targets  []domain.Target
	Prober   probe.Prober
	Workers  int
	Period   time.Duration // 0 = single round
	Schedule cron.Schedule // optional; wins over Period when set
	Sink     Sink
	Stats    *stats.Aggregator
	Metrics  *metrics.Metrics

	// AfterRound runs on the coordinator after each round has fully
	// drained. Used by the CLI to print the running summary.
	AfterRound func(round int)

	// Alerter, when set, observes every result on the coordinator.
	Alerter *Alerter
}

func New(
	logger *zap.Logger,
	targets []domain.Target,
	prober probe.Prober,
	workers int,
	period time.Duration,
	sink Sink,
	agg *stats.Aggregator,
) *Engine {
	if workers < 1 {
		workers = 1
	}
	if period < 0 {
		period = 0
	}
	if agg == nil {
		agg = stats.NewAggregator()
	}
	return &Engine{
		Logger:  logger,
		Targets: targets,
		Prober:  prober,
		Workers: workers,
		Period:  period,
		Sink:    sink,
		Stats:   agg,
	}
}

// Run executes rounds until the context is cancelled or, with no
// period and no schedule, after the single round. On return all
// workers have exited and every enqueued job has produced a result.
func (e *Engine) Run(ctx context.Context) error {
	if len(e.Targets) == 0 {
		return errors.New("scheduler: no targets")
	}
	if e.Prober == nil {
		return errors.New("scheduler: no prober")
	}

	log := e.Logger.With(zap.String("run_id", uuid.NewString()))

	// Buffered to a full round so the coordinator never blocks on
	// enqueue: there is at most one round in flight at a time.
	jobs := make(chan job, len(e.Targets))
	results := make(chan domain.ProbeResult, len(e.Targets))

	var wg sync.WaitGroup
	for i := 0; i < e.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.worker(ctx, jobs, results)
		}()
	}

	log.Info("engine_started",
		zap.Int("targets", len(e.Targets)),
		zap.Int("workers", e.Workers),
		zap.Duration("period", e.Period),
		zap.Bool("cron", e.Schedule != nil),
	)

	round := 0
	for ctx.Err() == nil {
		round++
		roundStart := time.Now()

		for _, t := range e.Targets {
			jobs <- job{target: t, round: round}
		}
		e.drainRound(ctx, log, results)

		took := time.Since(roundStart)
		if e.Metrics != nil {
			e.Metrics.ObserveRound(took)
		}
		log.Info("round_complete",
			zap.Int("round", round),
			zap.Int("results", len(e.Targets)),
			zap.Duration("took", took),
		)
		if e.AfterRound != nil {
			e.AfterRound(round)
		}

		next, again := e.nextRound(roundStart)
		if !again || ctx.Err() != nil {
			break
		}
		// The next round is due `period` after this one STARTED. If
		// the round ran long, catch up now instead of stacking delay.
		if wait := time.Until(next); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
			case <-timer.C:
			}
		}
		if ctx.Err() != nil {
			break
		}
	}

	close(jobs)
	wg.Wait()
	close(results)

	log.Info("engine_stopped", zap.Int("rounds", round))
	return nil
}

// drainRound collects exactly one result per target. It deliberately
// ignores cancellation: jobs already dispatched are bounded by their
// per-attempt timeout, and cutting the drain short would drop results
// for URLs that were already probed.
func (e *Engine) drainRound(ctx context.Context, log *zap.Logger, results <-chan domain.ProbeResult) {
	for i := 0; i < len(e.Targets); i++ {
		r := <-results

		e.Stats.Update(r)
		if e.Metrics != nil {
			e.Metrics.ObserveResult(r)
		}
		if e.Alerter != nil {
			// alerts for an already-drained result still go out during shutdown
			e.Alerter.Observe(context.WithoutCancel(ctx), r)
		}
		if e.Sink != nil {
			if err := e.Sink.Emit(r); err != nil {
				log.Warn("sink_emit_error", zap.String("url", r.Target.URL), zap.Error(err))
			}
		}

		if r.Outcome.OK() {
			log.Debug("probe_ok",
				zap.String("url", r.Target.URL),
				zap.Int("status", r.Outcome.StatusCode),
				zap.Int64("response_time_ms", r.ResponseTimeMS),
				zap.Int("attempts", r.Attempts),
			)
		} else {
			log.Warn("probe_failed",
				zap.String("url", r.Target.URL),
				zap.String("kind", string(r.Outcome.Kind)),
				zap.String("reason", r.Outcome.Reason),
				zap.Int("attempts", r.Attempts),
			)
		}
	}
}

func (e *Engine) worker(ctx context.Context, jobs <-chan job, results chan<- domain.ProbeResult) {
	for j := range jobs {
		att, attempts := e.Prober.Probe(ctx, j.target)
		results <- domain.ProbeResult{
			Target:         j.target,
			Round:          j.round,
			Outcome:        att.Outcome,
			Attempts:       attempts,
			ResponseTimeMS: att.Elapsed.Milliseconds(),
			CheckedAt:      time.Now().UTC(),
		}
	}
}

func (e *Engine) nextRound(start time.Time) (time.Time, bool) {
	if e.Schedule != nil {
		return e.Schedule.Next(start), true
	}
	if e.Period > 0 {
		return start.Add(e.Period), true
	}
	return time.Time{}, false
}
