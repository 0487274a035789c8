package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func fastRetry(next Generator, retries int) *RetryGenerator {
	g := NewRetryGenerator(next, retries, nil).(*RetryGenerator)
	g.initialInterval = time.Millisecond
	g.maxInterval = 2 * time.Millisecond
	return g
}

func TestRetryGenerator_RecoversFromTransientErrors(t *testing.T) {
	calls := 0
	next := GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("connection reset")
		}
		return "ok", nil
	})

	got, err := fastRetry(next, 5).Generate(context.Background(), "p")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "ok" || calls != 3 {
		t.Fatalf("got %q after %d calls", got, calls)
	}
}

func TestRetryGenerator_GivesUp(t *testing.T) {
	calls := 0
	next := GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "", errors.New("timeout")
	})
	if _, err := fastRetry(next, 2).Generate(context.Background(), "p"); err == nil {
		t.Fatal("expected error")
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestRetryGenerator_DoesNotRetryMissingModel(t *testing.T) {
	calls := 0
	next := GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "", fmt.Errorf("%w: llama", ErrModelUnavailable)
	})
	_, err := fastRetry(next, 5).Generate(context.Background(), "p")
	if !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestNewRetryGenerator_ZeroRetriesIsPassthrough(t *testing.T) {
	next := GeneratorFunc(func(ctx context.Context, prompt string) (string, error) { return "", nil })
	if _, ok := NewRetryGenerator(next, 0, nil).(GeneratorFunc); !ok {
		t.Fatal("expected the wrapped generator to be returned unchanged")
	}
}
