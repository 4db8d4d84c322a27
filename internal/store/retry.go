package store

import "time"

// retryConfig bounds the backoff applied to transient persistence failures.
type retryConfig struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
	multiplier  float64
}

var defaultRetry = retryConfig{
	maxAttempts: 3,
	baseDelay:   100 * time.Millisecond,
	maxDelay:    2 * time.Second,
	multiplier:  2.0,
}

// withRetry runs op with exponential backoff until it succeeds or the
// attempts are exhausted, returning the last error.
func withRetry(cfg retryConfig, op func() error) error {
	delay := cfg.baseDelay

	var err error
	for attempt := 1; ; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if attempt >= cfg.maxAttempts {
			return err
		}

		time.Sleep(delay)
		delay = time.Duration(float64(delay) * cfg.multiplier)
		if delay > cfg.maxDelay {
			delay = cfg.maxDelay
		}
	}
}
