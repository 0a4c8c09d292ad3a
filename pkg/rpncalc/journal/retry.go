package journal

import (
	"errors"
	"math/rand/v2"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// RetryConfig configures retry behavior for journal writes.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial).
	MaxAttempts int

	// InitialBackoff is the starting backoff duration.
	InitialBackoff time.Duration

	// MaxBackoff is the maximum backoff duration.
	MaxBackoff time.Duration

	// BackoffFactor is the multiplier applied to backoff after each attempt.
	BackoffFactor float64

	// Jitter is the random jitter factor (0.0-1.0).
	Jitter float64

	// RetryableFunc optionally overrides IsRetryable.
	RetryableFunc func(error) bool
}

// DefaultRetry suits a journal file shared by a few CLI processes.
var DefaultRetry = RetryConfig{
	MaxAttempts:    4,
	InitialBackoff: 10 * time.Millisecond,
	MaxBackoff:     250 * time.Millisecond,
	BackoffFactor:  2.0,
	Jitter:         0.1,
}

// IsRetryable reports whether err is a lock conflict that may clear on its own.
func IsRetryable(err error) bool {
	var sqlErr *sqlite.Error
	if !errors.As(err, &sqlErr) {
		return false
	}
	switch sqlErr.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	default:
		return false
	}
}

// RetryStore retries writes of the wrapped Store on transient failures.
// Reads are passed through.
type RetryStore struct {
	Store
	cfg RetryConfig
}

// NewRetryStore wraps store with cfg.
func NewRetryStore(store Store, cfg RetryConfig) *RetryStore {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryStore{Store: store, cfg: cfg}
}

// Save implements Store.
func (r *RetryStore) Save(e Entry) error {
	return r.retry(func() error { return r.Store.Save(e) })
}

// Delete implements Store.
func (r *RetryStore) Delete(id string) error {
	return r.retry(func() error { return r.Store.Delete(id) })
}

// Clear implements Store.
func (r *RetryStore) Clear() error {
	return r.retry(func() error { return r.Store.Clear() })
}

func (r *RetryStore) retry(fn func() error) error {
	isRetryable := r.cfg.RetryableFunc
	if isRetryable == nil {
		isRetryable = IsRetryable
	}

	backoff := r.cfg.InitialBackoff
	var err error
	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		err = fn()
		if err == nil || !isRetryable(err) {
			return err
		}

		// Don't sleep after the last attempt
		if attempt < r.cfg.MaxAttempts-1 {
			time.Sleep(calculateBackoff(backoff, r.cfg.Jitter))

			backoff = time.Duration(float64(backoff) * r.cfg.BackoffFactor)
			if backoff > r.cfg.MaxBackoff {
				backoff = r.cfg.MaxBackoff
			}
		}
	}
	return err
}

// calculateBackoff returns the backoff duration with jitter applied.
func calculateBackoff(base time.Duration, jitter float64) time.Duration {
	if jitter <= 0 {
		return base
	}

	// base +/- (base * jitter * random)
	jitterAmount := float64(base) * jitter * (rand.Float64()*2 - 1)
	return time.Duration(float64(base) + jitterAmount)
}
