package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// NewSignalContext creates a context that is cancelled when SIGINT or SIGTERM
// is received. The returned cancel function should be called to release resources.
func NewSignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// handleRunError rewrites errors produced under a cancelled signal context so
// the user sees an interruption message instead of a transport error.
func handleRunError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("analysis interrupted: %w", err)
	}
	return err
}
