package fetcher

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"net"
	"net/textproto"
	"time"

	"github.com/jlaffaye/ftp"
	"go.uber.org/zap"
)

// RetryConfig controls download retry behavior with exponential backoff and
// jitter. Vendor FTP servers drop connections under load, so transient
// failures are retried before a fetch is reported as failed.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts including the first try.
	// A value of 1 means no retries.
	MaxAttempts int

	// InitialBackoff is the base delay before the first retry.
	InitialBackoff time.Duration

	// MaxBackoff caps the backoff duration.
	MaxBackoff time.Duration

	// Multiplier scales the backoff after each attempt.
	Multiplier float64

	// JitterFraction adds random jitter as a fraction of the computed delay.
	JitterFraction float64
}

// DefaultRetryConfig is tuned for county and vendor FTP drops: a handful of
// attempts spread over roughly a minute.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 2 * time.Second,
		MaxBackoff:     30 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.25,
	}
}

// retryDo executes fn, retrying transient failures per cfg. Context
// cancellation stops retries immediately.
func retryDo(ctx context.Context, cfg RetryConfig, op string, fn func() error) error {
	cfg = retryDefaults(cfg)

	var lastErr error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return lastErr
		}
		if !isTransientFTP(lastErr) {
			return lastErr
		}
		if attempt >= cfg.MaxAttempts-1 {
			break
		}

		delay := retryBackoff(attempt, cfg)
		zap.L().Warn("retrying download",
			zap.String("operation", op),
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", delay),
			zap.Error(lastErr),
		)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return lastErr
		case <-timer.C:
		}
	}
	return lastErr
}

// isTransientFTP reports whether an error is worth retrying: network
// failures, timeouts, and 4xx FTP replies. 5xx replies (bad path, no such
// file, auth rejected) are permanent.
func isTransientFTP(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		return protoErr.Code >= ftp.StatusNotAvailable && protoErr.Code < 500
	}
	return false
}

func retryDefaults(cfg RetryConfig) RetryConfig {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 2 * time.Second
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 30 * time.Second
	}
	if cfg.Multiplier <= 0 {
		cfg.Multiplier = 2.0
	}
	if cfg.JitterFraction < 0 {
		cfg.JitterFraction = 0
	}
	return cfg
}

func retryBackoff(attempt int, cfg RetryConfig) time.Duration {
	delay := float64(cfg.InitialBackoff) * math.Pow(cfg.Multiplier, float64(attempt))
	if delay > float64(cfg.MaxBackoff) {
		delay = float64(cfg.MaxBackoff)
	}
	if cfg.JitterFraction > 0 {
		jitterRange := delay * cfg.JitterFraction
		delay += (rand.Float64()*2 - 1) * jitterRange
	}
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay)
}
