package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/cenkalti/backoff/v4"
)

// Policy bounds how often and how fast a transient failure is retried.
type Policy struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultPolicy is used when configuration does not override it.
var DefaultPolicy = Policy{
	MaxRetries:      3,
	InitialInterval: 50 * time.Millisecond,
	MaxInterval:     time.Second,
}

// NoRetry fails on the first error.
var NoRetry = Policy{MaxRetries: 0, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond}

// IsTransient reports whether err is worth retrying. Only store unavailability is.
func IsTransient(err error) bool {
	return errors.Is(err, apperrors.ErrStoreUnavailable)
}

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.InitialInterval
	exp.MaxInterval = p.MaxInterval
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, p.MaxRetries), ctx)
}

// Do runs op until it succeeds, fails permanently or the retry budget is spent.
// Errors that are not transient stop the loop immediately and are returned as is.
// Exhausting the budget on transient errors returns an error wrapping
// apperrors.ErrStoreUnavailable.
func (p Policy) Do(ctx context.Context, name string, op func(ctx context.Context) error) error {
	attempts := 0
	err := backoff.RetryNotify(func() error {
		attempts++
		if err := op(ctx); err != nil {
			if IsTransient(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}, p.backOff(ctx), func(err error, wait time.Duration) {
		slog.WarnContext(ctx, "Retrying after transient failure",
			slog.String("operation", name),
			slog.Int("attempt", attempts),
			slog.Duration("wait", wait),
			slog.String("error", err.Error()))
	})
	if err == nil {
		return nil
	}
	if IsTransient(err) {
		return fmt.Errorf("%s failed after %d attempts: %w", name, attempts, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return fmt.Errorf("%w: %w", apperrors.ErrCancelled, err)
	}
	return err
}
