// Package progress renders batch progress for interactive runs and stays
// silent in CI or piped output.
package progress

import (
	"os"

	"github.com/schollz/progressbar/v3"
)

func IsCI() bool {
	ciEnvVars := []string{
		"CI",
		"CONTINUOUS_INTEGRATION",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"CIRCLECI",
		"JENKINS_URL",
		"TRAVIS",
		"BITBUCKET_BUILD_NUMBER",
		"AZURE_PIPELINES",
	}

	for _, envVar := range ciEnvVars {
		if os.Getenv(envVar) != "" {
			return true
		}
	}
	return false
}

// Tracker advances a terminal progress bar as a batch of vulnerabilities is
// processed. A nil Tracker is safe to use and renders nothing.
type Tracker struct {
	bar *progressbar.ProgressBar
}

// NewTracker builds a tracker for a batch of the given size. Returns nil
// when disabled, in CI, or for empty batches.
func NewTracker(total int, description string, disabled bool) *Tracker {
	if disabled || total <= 0 || IsCI() {
		return nil
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetPredictTime(false),
	)
	return &Tracker{bar: bar}
}

// Step records one processed item, labeling the bar with its name.
func (t *Tracker) Step(name string) {
	if t == nil {
		return
	}
	if name != "" {
		t.bar.Describe(truncateLabel(name, 40))
	}
	_ = t.bar.Add(1)
}

// Finish clears the bar.
func (t *Tracker) Finish() {
	if t == nil {
		return
	}
	_ = t.bar.Finish()
}

func truncateLabel(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
