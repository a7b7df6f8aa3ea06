package retry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/crypto-news/pkg/logger"
)

// ErrExhausted marks a failure that survived every allowed attempt.
// Callers branch on it to distinguish upstream exhaustion from other
// request-level failures.
var ErrExhausted = errors.New("retries exhausted")

// Policy wraps a fallible operation with bounded exponential-backoff retry.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
}

// Do runs fn up to MaxAttempts times. The delay after a failed attempt k
// (0-based) is InitialDelay * 2^k, with no jitter and no cap.
//
// A rate-limit error always retries while attempts remain. Other errors
// retry only when attempts remain and the error is classified retryable.
// Non-retryable errors abort immediately with the original error; once
// attempts are exhausted the last error is returned wrapped with op.
func (p Policy) Do(ctx context.Context, op string, fn func(context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		rateLimited := isRateLimit(err)
		if !rateLimited && !isRetryable(err) {
			return err
		}
		if attempt == p.MaxAttempts-1 {
			break
		}

		delay := p.InitialDelay * (1 << attempt)

		logger.Debug("retrying operation",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Bool("rate_limited", rateLimited),
			zap.Error(err),
		)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", op, ctx.Err())
		}
	}

	return fmt.Errorf("%s: %w after %d attempts: %w", op, ErrExhausted, p.MaxAttempts, lastErr)
}

// isRateLimit reports an explicit "too many requests" signal.
func isRateLimit(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests")
}

// isRetryable classifies transient transport failures by error text.
func isRetryable(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "429")
}
