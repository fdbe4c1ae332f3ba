package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hamed0406/sitecheck/internal/domain"
)

// Duration accepts "5s", "1m", "500ms" style strings in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Duration() time.Duration { return time.Duration(d) }

// TargetSpec is one target entry in a YAML run file.
type TargetSpec struct {
	URL          string              `yaml:"url"`
	Header       *domain.HeaderCheck `yaml:"header"`
	BodyContains string              `yaml:"body_contains"`
}

// File is the YAML run-file schema:
//
//	workers: 50
//	timeout: 5s
//	max_retries: 1
//	period: 60s
//	targets:
//	  - url: https://example.com
//	    header: {name: Server, value: nginx}
//	    body_contains: Welcome
type File struct {
	Workers    int          `yaml:"workers"`
	Timeout    Duration     `yaml:"timeout"`
	MaxRetries *int         `yaml:"max_retries"`
	Period     Duration     `yaml:"period"`
	Cron       string       `yaml:"cron"`
	Targets    []TargetSpec `yaml:"targets"`
}

// LoadFile parses and validates a YAML run file. Target URLs must be
// http(s); anything else is rejected here, at load time.
func LoadFile(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if f.Workers < 0 {
		return nil, fmt.Errorf("workers must be >= 0, got %d", f.Workers)
	}
	if f.MaxRetries != nil && *f.MaxRetries < 0 {
		return nil, fmt.Errorf("max_retries must be >= 0, got %d", *f.MaxRetries)
	}
	for i, t := range f.Targets {
		if !IsValidHTTPURL(t.URL) {
			return nil, fmt.Errorf("targets[%d]: not an http(s) URL: %q", i, t.URL)
		}
	}
	return &f, nil
}

// Apply overlays the file's values onto cfg; zero values leave cfg
// untouched.
func (f *File) Apply(cfg *Config) {
	if f.Workers > 0 {
		cfg.Workers = f.Workers
	}
	if f.Timeout > 0 {
		cfg.Timeout = f.Timeout.Duration()
	}
	if f.MaxRetries != nil {
		cfg.MaxRetries = *f.MaxRetries
	}
	if f.Period > 0 {
		cfg.Period = f.Period.Duration()
	}
	if f.Cron != "" {
		cfg.Cron = f.Cron
	}
}
