// Package retry repeats calls whose outcome is a transport error. The call
// wrappers never retry on their own; callers opt in here.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/vectara-examples/pkg/vectara"
)

// Policy configures retries.
type Policy struct {
	// MaxRetries is the number of attempts after the first. Zero disables
	// retries.
	MaxRetries uint64

	// InitialInterval and MaxInterval bound the exponential backoff.
	// Defaults: 500ms and 10s.
	InitialInterval time.Duration
	MaxInterval     time.Duration

	Logger hclog.Logger
}

// Do runs call until it yields something other than a transport error, the
// policy is exhausted, or ctx is done, and returns the last outcome.
// Application errors are never retried: the platform answered.
func Do(ctx context.Context, p Policy, call func(context.Context) vectara.Outcome) vectara.Outcome {
	if p.MaxRetries == 0 {
		return call(ctx)
	}

	logger := p.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 0
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}

	var last vectara.Outcome
	attempt := 0
	op := func() error {
		attempt++
		last = call(ctx)
		if last.Kind == vectara.KindTransportError {
			return last.Err()
		}
		return backoff.Permanent(last.Err())
	}
	notify := func(err error, wait time.Duration) {
		logger.Warn("retrying after transport error",
			"endpoint", last.Endpoint,
			"attempt", attempt,
			"wait", wait,
			"error", err,
		)
	}

	_ = backoff.RetryNotify(op,
		backoff.WithContext(backoff.WithMaxRetries(b, p.MaxRetries), ctx),
		notify,
	)
	return last
}
