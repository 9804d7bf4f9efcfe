// Package config loads and validates scraper configuration via Viper.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/export"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/hansard"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/normalize"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/transport"
)

// Config captures all scraper configuration knobs loaded via Viper.
type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Transport TransportConfig `mapstructure:"transport"`
	Scrape    ScrapeConfig    `mapstructure:"scrape"`
	Fragment  FragmentConfig  `mapstructure:"fragment"`
	Export    ExportConfig    `mapstructure:"export"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// APIConfig locates the Hansard API.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// TransportConfig selects and tunes the HTTP provider.
type TransportConfig struct {
	Provider  string        `mapstructure:"provider"`
	Timeout   time.Duration `mapstructure:"timeout"`
	PoolSize  int           `mapstructure:"pool_size"`
	UserAgent string        `mapstructure:"user_agent"`
}

// ScrapeConfig governs the topic fan-out and artifact placement.
type ScrapeConfig struct {
	Workers   int    `mapstructure:"workers"`
	Engine    string `mapstructure:"engine"`
	OutputDir string `mapstructure:"output_dir"`
	Progress  bool   `mapstructure:"progress"`
	DumpHTML  bool   `mapstructure:"dump_html"`
}

// FragmentConfig tunes retry behavior for fragment fetches.
type FragmentConfig struct {
	Retries       int           `mapstructure:"retries"`
	RetryStatuses []int         `mapstructure:"retry_statuses"`
	InitialDelay  time.Duration `mapstructure:"initial_delay"`
	Backoff       float64       `mapstructure:"backoff"`
}

// ExportConfig lists the formats rendered after a scrape.
type ExportConfig struct {
	Formats []string `mapstructure:"formats"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Listen  string `mapstructure:"listen"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment. With an explicit path the
// file must exist; otherwise hansard.yaml is searched for in the working
// directory and $HOME/.config/hansard, and its absence is fine.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("HANSARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// WORKERS and HANSARD_WORKERS are older names for the same knob.
	// HANSARD_SCRAPE_WORKERS wins over both, WORKERS wins over
	// HANSARD_WORKERS.
	v.MustBindEnv("scrape.workers", "WORKERS", "HANSARD_WORKERS")

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("hansard")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/hansard")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", hansard.DefaultBaseURL)
	v.SetDefault("transport.provider", "http")
	v.SetDefault("transport.timeout", 30*time.Second)
	v.SetDefault("transport.pool_size", 32)
	v.SetDefault("transport.user_agent", "")
	v.SetDefault("scrape.workers", 12)
	v.SetDefault("scrape.engine", string(normalize.EngineXPath))
	v.SetDefault("scrape.output_dir", "storage")
	v.SetDefault("scrape.progress", true)
	v.SetDefault("scrape.dump_html", false)
	v.SetDefault("fragment.retries", 3)
	v.SetDefault("fragment.retry_statuses", []int{502})
	v.SetDefault("fragment.initial_delay", 3*time.Second)
	v.SetDefault("fragment.backoff", 2.0)
	v.SetDefault("export.formats", []string{})
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.listen", ":9090")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must be set")
	}
	if c.Transport.Provider != "http" && c.Transport.Provider != "colly" {
		return fmt.Errorf("transport.provider must be http or colly, got %q", c.Transport.Provider)
	}
	if c.Transport.Timeout <= 0 {
		return fmt.Errorf("transport.timeout must be > 0")
	}
	if c.Transport.PoolSize <= 0 {
		return fmt.Errorf("transport.pool_size must be > 0")
	}
	if c.Scrape.Workers <= 0 {
		return fmt.Errorf("scrape.workers must be > 0")
	}
	if _, err := normalize.ParseEngine(c.Scrape.Engine); err != nil {
		return fmt.Errorf("scrape.engine: %w", err)
	}
	if c.Scrape.OutputDir == "" {
		return fmt.Errorf("scrape.output_dir must be set")
	}
	if c.Fragment.Retries < 0 {
		return fmt.Errorf("fragment.retries must be >= 0")
	}
	if c.Fragment.InitialDelay < 0 {
		return fmt.Errorf("fragment.initial_delay must be >= 0")
	}
	if c.Fragment.Backoff < 1 {
		return fmt.Errorf("fragment.backoff must be >= 1")
	}
	for _, format := range c.Export.Formats {
		if !slices.Contains(export.Formats(), format) {
			return fmt.Errorf("export.formats: unknown format %q", format)
		}
	}
	if c.Metrics.Enabled && c.Metrics.Listen == "" {
		return fmt.Errorf("metrics.listen must be set when metrics are enabled")
	}
	return nil
}

// RetryPolicy converts the fragment settings into the client's policy.
func (c FragmentConfig) RetryPolicy() hansard.RetryPolicy {
	return hansard.RetryPolicy{
		Retries:      c.Retries,
		Statuses:     slices.Clone(c.RetryStatuses),
		InitialDelay: c.InitialDelay,
		Multiplier:   c.Backoff,
	}
}

// TransportOptions converts the transport settings into provider options.
func (c TransportConfig) TransportOptions() transport.Options {
	return transport.Options{
		Timeout:   c.Timeout,
		PoolSize:  c.PoolSize,
		UserAgent: c.UserAgent,
	}
}
