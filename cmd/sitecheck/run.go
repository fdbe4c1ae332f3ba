package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hamed0406/sitecheck/internal/config"
	"github.com/hamed0406/sitecheck/internal/domain"
	"github.com/hamed0406/sitecheck/internal/httpapi"
	"github.com/hamed0406/sitecheck/internal/logging"
	"github.com/hamed0406/sitecheck/internal/metrics"
	"github.com/hamed0406/sitecheck/internal/notify"
	"github.com/hamed0406/sitecheck/internal/output"
	"github.com/hamed0406/sitecheck/internal/probe"
	"github.com/hamed0406/sitecheck/internal/scheduler"
	"github.com/hamed0406/sitecheck/internal/stats"
)

const shutdownTimeout = 5 * time.Second

var runCmd = &cobra.Command{
	Use:   "run [urls...]",
	Short: "Probe the given URLs once, or periodically with --period",
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("config", "c", "", "YAML run file with targets and tuning")
	runCmd.Flags().StringP("file", "f", "", "file with one URL per line ('#' comments allowed)")
	runCmd.Flags().IntP("workers", "n", 0, "number of concurrent workers (default: 50)")
	runCmd.Flags().DurationP("timeout", "t", 0, "per-attempt request timeout (default: 5s)")
	runCmd.Flags().IntP("retries", "r", -1, "max retries per probe (default: 1)")
	runCmd.Flags().DurationP("period", "p", 0, "repeat every period; 0 runs once")
	runCmd.Flags().String("cron", "", "cron expression for round starts (overrides --period)")
	runCmd.Flags().StringArrayP("header", "H", nil, "require response header 'Name: Value' (repeatable; last wins)")
	runCmd.Flags().String("contains", "", "require response body to contain this text")
	runCmd.Flags().String("listen", "", "serve the status API on this address (empty: disabled)")
	runCmd.Flags().Bool("dns-diagnose", false, "annotate transport errors with a DNS classification")
	runCmd.Flags().Bool("verbose", false, "log successful probes too")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()

	var fileTargets []domain.Target
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		f, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		f.Apply(&cfg)
		fileTargets = config.SpecTargets(f.Targets)
	}

	if n, _ := cmd.Flags().GetInt("workers"); n > 0 {
		cfg.Workers = n
	}
	if d, _ := cmd.Flags().GetDuration("timeout"); d > 0 {
		cfg.Timeout = d
	}
	if r, _ := cmd.Flags().GetInt("retries"); r >= 0 {
		cfg.MaxRetries = r
	}
	if d, _ := cmd.Flags().GetDuration("period"); d > 0 {
		cfg.Period = d
	}
	if c, _ := cmd.Flags().GetString("cron"); c != "" {
		cfg.Cron = c
	}
	if addr, _ := cmd.Flags().GetString("listen"); addr != "" {
		cfg.ListenAddr = addr
	}
	if v, _ := cmd.Flags().GetBool("dns-diagnose"); v {
		cfg.DNSDiagnose = true
	}

	var schedule cron.Schedule
	if cfg.Cron != "" {
		var err error
		schedule, err = cron.ParseStandard(cfg.Cron)
		if err != nil {
			return fmt.Errorf("invalid --cron expression: %w", err)
		}
	}

	var header *domain.HeaderCheck
	for _, raw := range mustStringArray(cmd, "header") {
		h := config.ParseHeader(raw)
		if h == nil {
			return fmt.Errorf("invalid --header %q, want 'Name: Value'", raw)
		}
		header = h
	}
	contains, _ := cmd.Flags().GetString("contains")

	urls := append([]string(nil), args...)
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		fromFile, err := config.ReadURLFile(path)
		if err != nil {
			return err
		}
		urls = append(urls, fromFile...)
	}
	targets, err := config.BuildTargets(urls, header, contains)
	if err != nil {
		return err
	}
	targets = append(fileTargets, targets...)
	if len(targets) == 0 {
		return errors.New("no URLs provided: pass positional URLs, -f <file>, or -c <config>")
	}

	level := zapcore.InfoLevel
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = zapcore.DebugLevel
	}
	logger, err := logging.NewLogger(cfg.LogDir, level)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logger.Sync()

	prober := &probe.RetryChecker{
		Inner:      probe.NewHTTPChecker(cfg.Timeout),
		MaxRetries: cfg.MaxRetries,
		Backoff:    cfg.RetryBackoff,
		DNSReason:  cfg.DNSDiagnose,
	}

	agg := stats.NewAggregator()
	m := metrics.New()

	eng := scheduler.New(logger, targets, prober, cfg.Workers, cfg.Period, output.NewJSONLWriter(os.Stdout), agg)
	eng.Schedule = schedule
	eng.Metrics = m
	eng.AfterRound = func(int) {
		_ = output.WriteSummary(os.Stderr, agg.Snapshot())
	}
	if slack := notify.NewSlack(cfg.SlackWebhook); slack != nil {
		eng.Alerter = scheduler.NewAlerter(notify.Multi{slack}, scheduler.AlerterConfig{
			AlertOnRecovery: cfg.AlertOnRecovery,
			Cooldown:        cfg.AlertCooldown,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *http.Server
	if cfg.ListenAddr != "" {
		api := httpapi.NewServer(logger, agg, m)
		srv = &http.Server{Addr: cfg.ListenAddr, Handler: api.Router()}
		go func() {
			logger.Info("api_listen", zap.String("addr", cfg.ListenAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("api_serve_error", zap.Error(err))
			}
		}()
	}

	runErr := eng.Run(ctx)

	if srv != nil {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		runErr = multierr.Append(runErr, srv.Shutdown(sctx))
	}
	return runErr
}

func mustStringArray(cmd *cobra.Command, name string) []string {
	vals, _ := cmd.Flags().GetStringArray(name)
	return vals
}
