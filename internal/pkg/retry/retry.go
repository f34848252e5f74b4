// Package retry adapts env-driven retry settings to retry-go options.
// Only startup-time bootstrap calls retry; the answering and indexing
// paths never retry upstream failures on their own.
package retry

import (
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultAttempts = 3
	defaultDelay    = 100 * time.Millisecond
	defaultMaxDelay = 2 * time.Second
)

// Config holds retry policy knobs loaded from the environment.
type Config struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"3"`
	Delay    time.Duration `env:"DELAY" envDefault:"100ms"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"2s"`
}

// ToOptions converts the config into retry-go options.
func (c *Config) ToOptions() []retry.Option {
	return []retry.Option{
		retry.Attempts(c.Attempts),
		retry.Delay(c.Delay),
		retry.MaxDelay(c.MaxDelay),
	}
}

// DefaultConfig returns the built-in retry policy.
func DefaultConfig() *Config {
	return &Config{
		Attempts: defaultAttempts,
		Delay:    defaultDelay,
		MaxDelay: defaultMaxDelay,
	}
}
