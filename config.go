package conceptflow

import (
	"fmt"
	"time"
)

// Config is a serialisable representation of the engine configuration. It can
// be populated from JSON, YAML, environment variables or flags (see
// cmd/conceptflow).
type Config struct {
	Threads    ThreadsConfig    `json:"threads" yaml:"threads" mapstructure:"threads"`
	Validation ValidationConfig `json:"validation" yaml:"validation" mapstructure:"validation"`
	Overwrite  OverwriteConfig  `json:"overwrite" yaml:"overwrite" mapstructure:"overwrite"`
	Cache      CacheConfig      `json:"cache" yaml:"cache" mapstructure:"cache"`
	Tracing    TracingConfig    `json:"tracing" yaml:"tracing" mapstructure:"tracing"`
}

// ThreadsConfig controls Threads fan-out
type ThreadsConfig struct {
	// Concurrency is the maximum number of batch children running at once;
	// one keeps batches sequential.
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`
}

// ValidationConfig controls static dependency checks before a run
type ValidationConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
}

// OverwriteConfig controls overwrite warnings
type OverwriteConfig struct {
	Diff    bool `json:"diff" yaml:"diff" mapstructure:"diff"`
	Context int  `json:"context" yaml:"context" mapstructure:"context"`
}

// CacheConfig controls response caching of registered models
type CacheConfig struct {
	Enabled bool          `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`
}

// TracingConfig controls OpenTelemetry tracing
type TracingConfig struct {
	Enabled     bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	ServiceName string `json:"serviceName" yaml:"serviceName" mapstructure:"serviceName"`
	Version     string `json:"version" yaml:"version" mapstructure:"version"`
	// Output is a file path; empty writes spans to stdout.
	Output string `json:"output" yaml:"output" mapstructure:"output"`
}

// DefaultConfig returns a Config populated with the engine defaults. Callers
// may modify the returned struct before passing it to WithConfig.
func DefaultConfig() *Config {
	return &Config{
		Threads:    ThreadsConfig{Concurrency: 1},
		Validation: ValidationConfig{Enabled: true},
		Overwrite:  OverwriteConfig{Diff: true, Context: 3},
		Cache:      CacheConfig{TTL: 10 * time.Minute},
		Tracing:    TracingConfig{ServiceName: "conceptflow"},
	}
}

// Validate returns an error describing the first invalid setting or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Threads.Concurrency <= 0 {
		return fmt.Errorf("threads.concurrency must be > 0")
	}
	if c.Overwrite.Context < 0 {
		return fmt.Errorf("overwrite.context must be >= 0")
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0 when cache is enabled")
	}
	if c.Tracing.Enabled && c.Tracing.ServiceName == "" {
		return fmt.Errorf("tracing.serviceName is required when tracing is enabled")
	}
	return nil
}
