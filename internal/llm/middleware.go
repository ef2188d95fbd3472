package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/firebase/genkit/go/ai"

	"github.com/b45t3rr/genai-triage/internal/logging"
)

// retryMiddleware retries failed model calls with exponential backoff,
// capped at 30s between attempts.
func retryMiddleware(maxAttempts int, initialDelay time.Duration) ai.ModelMiddleware {
	return func(next ai.ModelFunc) ai.ModelFunc {
		return func(ctx context.Context, req *ai.ModelRequest, cb ai.ModelStreamCallback) (*ai.ModelResponse, error) {
			var lastErr error

			for attempt := 1; attempt <= maxAttempts; attempt++ {
				resp, err := next(ctx, req, cb)
				if err == nil {
					if attempt > 1 {
						logging.L().Infow("model call recovered", "attempt", attempt)
					}
					return resp, nil
				}
				lastErr = err

				if attempt == maxAttempts {
					break
				}

				delay := initialDelay * time.Duration(1<<uint(attempt-1))
				if delay > 30*time.Second {
					delay = 30 * time.Second
				}
				logging.L().Warnw("model call failed, retrying",
					"attempt", attempt, "max_attempts", maxAttempts, "delay", delay, "error", err)

				select {
				case <-ctx.Done():
					return nil, fmt.Errorf("context cancelled during retry: %w", ctx.Err())
				case <-time.After(delay):
				}
			}

			return nil, fmt.Errorf("model call failed after %d attempts: %w", maxAttempts, lastErr)
		}
	}
}
