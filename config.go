package fsmx

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/comalice/fsmx/policy"
)

// Config carries the build-configuration-time settings of a machine: the
// watchdog timeout, the event queue capacity hint, the threading strategy
// and the diagnostic output switch. Load it from the environment with
// LoadConfig or from a YAML file with LoadConfigFile.
type Config struct {
	WatchdogTimeout time.Duration `env:"FSM_WATCHDOG_TIMEOUT" envDefault:"2s" yaml:"watchdog_timeout"`
	QueueCapacity   int           `env:"FSM_QUEUE_CAPACITY" envDefault:"16" yaml:"queue_capacity"`
	Threaded        bool          `env:"FSM_THREADED" envDefault:"true" yaml:"threaded"`
	Silent          bool          `env:"FSM_SILENT" envDefault:"false" yaml:"silent"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		WatchdogTimeout: DefaultWatchdogTimeout,
		QueueCapacity:   16,
		Threaded:        true,
	}
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("fsmx: parse environment: %w", err)
	}
	return cfg, nil
}

// fileConfig mirrors Config for YAML decoding; yaml.v3 does not parse
// duration strings on its own.
type fileConfig struct {
	WatchdogTimeout string `yaml:"watchdog_timeout"`
	QueueCapacity   *int   `yaml:"queue_capacity"`
	Threaded        *bool  `yaml:"threaded"`
	Silent          *bool  `yaml:"silent"`
}

// LoadConfigFile reads the configuration from a YAML file. Absent keys keep
// their defaults.
func LoadConfigFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("fsmx: read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return Config{}, fmt.Errorf("fsmx: parse config: %w", err)
	}

	cfg := DefaultConfig()
	if fc.WatchdogTimeout != "" {
		d, err := time.ParseDuration(fc.WatchdogTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("fsmx: watchdog_timeout: %w", err)
		}
		cfg.WatchdogTimeout = d
	}
	if fc.QueueCapacity != nil {
		cfg.QueueCapacity = *fc.QueueCapacity
	}
	if fc.Threaded != nil {
		cfg.Threaded = *fc.Threaded
	}
	if fc.Silent != nil {
		cfg.Silent = *fc.Silent
	}

	return cfg, nil
}

// Options translates the configuration into machine options. Options passed
// to NewFromConfig after these win.
func (c Config) Options() []Option {
	opts := []Option{
		WithWatchdogTimeout(c.WatchdogTimeout),
		WithQueueCapacity(c.QueueCapacity),
	}
	if c.Threaded {
		opts = append(opts, WithPolicy(policy.Threaded{}))
	} else {
		opts = append(opts, WithPolicy(policy.Single{}))
	}
	if c.Silent {
		opts = append(opts, Silent())
	}
	return opts
}

// NewFromConfig creates a machine from cfg, with opts applied on top.
func NewFromConfig[E EventID, A any](cfg Config, opts ...Option) *Machine[E, A] {
	return New[E, A](append(cfg.Options(), opts...)...)
}
