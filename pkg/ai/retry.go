package ai

import (
	"context"
	"errors"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// RetryGenerator retries transient failures of another Generator with
// exponential backoff. A missing model is not retried.
type RetryGenerator struct {
	next            Generator
	maxRetries      uint64
	initialInterval time.Duration
	maxInterval     time.Duration
	logger          *zap.Logger
}

// NewRetryGenerator wraps next. With maxRetries <= 0 next is returned as is.
func NewRetryGenerator(next Generator, maxRetries int, logger *zap.Logger) Generator {
	if maxRetries <= 0 {
		return next
	}
	return &RetryGenerator{
		next:            next,
		maxRetries:      uint64(maxRetries),
		initialInterval: 2 * time.Second,
		maxInterval:     10 * time.Second,
		logger:          logger,
	}
}

func (r *RetryGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	var out string
	attempt := 0
	op := func() error {
		attempt++
		text, err := r.next.Generate(ctx, prompt)
		if err != nil {
			if errors.Is(err, ErrModelUnavailable) {
				return backoff.Permanent(err)
			}
			if r.logger != nil {
				r.logger.Warn("llm.generate_retry", zap.Int("attempt", attempt), zap.Error(err))
			}
			return err
		}
		out = text
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.initialInterval
	bo.MaxInterval = r.maxInterval
	bo.MaxElapsedTime = 0

	if err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, r.maxRetries), ctx)); err != nil {
		return "", err
	}
	return out, nil
}
