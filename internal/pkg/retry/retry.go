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

type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"3"`
	Delay    time.Duration `env:"DELAY" envDefault:"100ms"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"2s"`
}

// ToRetryOptions translates the config into retry-go options. Callers
// append their own RetryIf predicate to limit which errors are retried.
// A zero Attempts means "retry forever" to retry-go, so a zero-value
// config falls back to DefaultRetryConfig instead.
func (rc *RetryConfig) ToRetryOptions() []retry.Option {
	cfg := *rc
	if cfg.Attempts == 0 {
		cfg = *DefaultRetryConfig()
	}

	return []retry.Option{
		retry.Attempts(cfg.Attempts),
		retry.Delay(cfg.Delay),
		retry.MaxDelay(cfg.MaxDelay),
		retry.LastErrorOnly(true),
	}
}

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Attempts: defaultAttempts,
		Delay:    defaultDelay,
		MaxDelay: defaultMaxDelay,
	}
}
