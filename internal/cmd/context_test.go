package cmd

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNewSignalContext(t *testing.T) {
	ctx, cancel := NewSignalContext()
	if ctx.Err() != nil {
		t.Fatalf("fresh context already cancelled: %v", ctx.Err())
	}
	cancel()
	if !errors.Is(ctx.Err(), context.Canceled) {
		t.Errorf("after cancel, ctx.Err() = %v, want context.Canceled", ctx.Err())
	}
}

func TestHandleRunError(t *testing.T) {
	cause := errors.New("connection reset")

	t.Run("passes errors through on a live context", func(t *testing.T) {
		if got := handleRunError(context.Background(), cause); got != cause {
			t.Errorf("handleRunError() = %v, want original error", got)
		}
	})

	t.Run("marks errors on a cancelled context as interruptions", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		got := handleRunError(ctx, cause)
		if !strings.Contains(got.Error(), "interrupted") {
			t.Errorf("handleRunError() = %q, want an interruption message", got)
		}
		if !errors.Is(got, cause) {
			t.Error("handleRunError() should wrap the original error")
		}
	})
}
