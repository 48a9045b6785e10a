package retry

import (
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultAttempts = 1000
	defaultDelay    = 5 * time.Second
)

// RetryConfig bounds retries of transient model failures. The large default
// rides out cold starts of hosted models.
type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"1000"`
	Delay    time.Duration `env:"DELAY" envDefault:"5s"`
}

func (rc *RetryConfig) ToRetryOptions() []retry.Option {
	attempts := rc.Attempts
	if attempts == 0 {
		// retry-go treats zero as unlimited
		attempts = defaultAttempts
	}

	return []retry.Option{
		retry.Attempts(attempts),
		retry.Delay(rc.Delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	}
}

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Attempts: defaultAttempts,
		Delay:    defaultDelay,
	}
}
