package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/abhisek/hotsquiz/internal/logger"
)

// retryClass says how many times a failure may be retried.
type retryClass int

const (
	retryNever retryClass = iota
	retryOnce
	retryUntilExhausted
)

// classify maps a provider error to its retry class. An empty or withheld
// reply gets a single second chance. A request the vendor rejected (bad
// key, unknown model) is never retried. Anything else is transient.
func classify(err error) retryClass {
	var unavailable *ErrProviderUnavailable
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return retryNever
	case errors.As(err, new(*ErrMaxTokensExceeded)):
		return retryNever
	case errors.As(err, &unavailable) && unavailable.Rejected():
		return retryNever
	case errors.As(err, new(*ErrInvalidResponse)):
		return retryOnce
	}
	return retryUntilExhausted
}

// RetryProvider retries transient failures with exponential backoff.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	log    *logger.Logger
}

// WithRetry wraps p with retries. log may be nil.
func WithRetry(p Provider, cfg RetryConfig, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &RetryProvider{inner: p, config: cfg, log: log}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	secondChanceUsed := false
	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		class := classify(err)
		if class == retryNever || attempt >= r.config.MaxAttempts {
			return nil, err
		}
		if class == retryOnce {
			if secondChanceUsed {
				return nil, err
			}
			secondChanceUsed = true
		}

		wait := r.delay(attempt, err)
		r.log.Warn("retrying LLM request",
			"purpose", PurposeFrom(ctx), "attempt", attempt, "wait_ms", wait.Milliseconds(), "error", err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// delay returns the wait before the next attempt. A provider supplied
// Retry-After wins; otherwise the wait grows by Multiplier per attempt up
// to MaxWait, with ±20% jitter.
func (r *RetryProvider) delay(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	d := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt-1))
	d = min(d, float64(r.config.MaxWait))
	d *= 0.8 + 0.4*rand.Float64()
	return time.Duration(d)
}
