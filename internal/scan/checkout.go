package scan

import (
	"context"
	"fmt"
	"os"
	"strings"

	git "github.com/go-git/go-git/v5"

	"github.com/b45t3rr/genai-triage/internal/logging"
)

// Target is a resolved scan target. Cleanup removes any temporary checkout;
// it is a no-op for local paths.
type Target struct {
	Path    string
	Remote  bool
	cleanup func()
}

// Cleanup removes the temporary clone, if any.
func (t *Target) Cleanup() {
	if t.cleanup != nil {
		t.cleanup()
	}
}

// IsRemote reports whether the argument looks like a git URL rather than a
// local path.
func IsRemote(target string) bool {
	return strings.HasPrefix(target, "http://") ||
		strings.HasPrefix(target, "https://") ||
		strings.HasPrefix(target, "git@") ||
		strings.HasPrefix(target, "ssh://")
}

// ResolveTarget turns a CLI argument into a scannable directory. Remote
// repositories are shallow-cloned into a temporary directory.
func ResolveTarget(ctx context.Context, target string) (*Target, error) {
	if !IsRemote(target) {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("scan target %s: %w", target, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("scan target %s is not a directory", target)
		}
		return &Target{Path: target}, nil
	}

	dir, err := os.MkdirTemp("", "genai-triage-checkout-*")
	if err != nil {
		return nil, fmt.Errorf("creating checkout directory: %w", err)
	}

	logging.L().Infow("cloning repository", "url", target, "dir", dir)
	_, err = git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:   target,
		Depth: 1,
	})
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("cloning %s: %w", target, err)
	}

	return &Target{
		Path:    dir,
		Remote:  true,
		cleanup: func() { os.RemoveAll(dir) },
	}, nil
}
