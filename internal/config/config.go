package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds everything the run command needs, resolved from
// environment defaults, an optional YAML file, and CLI flags (in that
// order of precedence, flags last).
type Config struct {
	Workers      int           // concurrent probe workers
	Timeout      time.Duration // per-attempt deadline
	MaxRetries   int           // extra attempts after the first
	RetryBackoff time.Duration // linear backoff base between attempts
	Period       time.Duration // 0 = single round
	Cron         string        // optional cron expression; wins over Period

	ListenAddr string // status API bind address; empty disables it
	LogDir     string // rotated log directory

	SlackWebhook    string
	AlertCooldown   time.Duration
	AlertOnRecovery bool

	DNSDiagnose bool // annotate transport errors with a DNS class
}

// FromEnv builds the baseline configuration: 50 workers, 5s timeout,
// 1 retry unless the environment says otherwise.
func FromEnv() Config {
	cfg := Config{
		Workers:       50,
		Timeout:       5 * time.Second,
		MaxRetries:    1,
		RetryBackoff:  200 * time.Millisecond,
		LogDir:        "logs",
		AlertCooldown: 5 * time.Minute,
	}

	if v := os.Getenv("LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	cfg.ListenAddr = os.Getenv("LISTEN_ADDR")
	cfg.SlackWebhook = os.Getenv("SLACK_WEBHOOK")

	if v := os.Getenv("WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.Timeout = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("RETRY_BACKOFF_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			cfg.RetryBackoff = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("ALERT_COOLDOWN_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			cfg.AlertCooldown = time.Duration(ms) * time.Millisecond
		}
	}
	if os.Getenv("ALERT_ON_RECOVERY") == "1" {
		cfg.AlertOnRecovery = true
	}

	return cfg
}
