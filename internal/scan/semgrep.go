// Package scan runs static analysis over source trees and resolves scan
// targets, cloning remote repositories when needed.
package scan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/b45t3rr/genai-triage/internal/logging"
)

// SemgrepFinding is one result row of a semgrep run.
type SemgrepFinding struct {
	CheckID  string `json:"check_id"`
	Path     string `json:"path"`
	Line     int    `json:"line"`
	EndLine  int    `json:"end_line"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Snippet  string `json:"snippet"`
}

// semgrepOutput mirrors the fields of semgrep's JSON report we consume.
type semgrepOutput struct {
	Results []struct {
		CheckID string `json:"check_id"`
		Path    string `json:"path"`
		Start   struct {
			Line int `json:"line"`
		} `json:"start"`
		End struct {
			Line int `json:"line"`
		} `json:"end"`
		Extra struct {
			Message  string `json:"message"`
			Severity string `json:"severity"`
			Lines    string `json:"lines"`
		} `json:"extra"`
	} `json:"results"`
}

// Semgrep shells out to the semgrep binary with the auto ruleset.
type Semgrep struct {
	// Binary is the semgrep executable, "semgrep" by default.
	Binary string
}

// NewSemgrep returns a runner for the given binary path.
func NewSemgrep(binary string) *Semgrep {
	if binary == "" {
		binary = "semgrep"
	}
	return &Semgrep{Binary: binary}
}

// Run scans sourcePath and returns the parsed findings. Results matching the
// ignore patterns of the tree are dropped.
func (s *Semgrep) Run(ctx context.Context, sourcePath string) ([]SemgrepFinding, error) {
	outFile, err := os.CreateTemp("", "semgrep-*.json")
	if err != nil {
		return nil, fmt.Errorf("creating semgrep output file: %w", err)
	}
	outPath := outFile.Name()
	outFile.Close()
	defer os.Remove(outPath)

	args := []string{
		"scan",
		"--config=auto",
		"--json",
		"--output", outPath,
		sourcePath,
	}

	cmd := exec.CommandContext(ctx, s.Binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running semgrep: %w\nstderr: %s", err, stderr.String())
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("reading semgrep output: %w", err)
	}

	findings, err := parseSemgrepOutput(data)
	if err != nil {
		return nil, err
	}

	matcher, err := LoadIgnorePatterns(sourcePath)
	if err != nil {
		logging.L().Warnw("could not load ignore patterns", "path", sourcePath, "error", err)
		return findings, nil
	}
	return filterIgnored(findings, matcher), nil
}

func parseSemgrepOutput(data []byte) ([]SemgrepFinding, error) {
	var out semgrepOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing semgrep output: %w", err)
	}

	findings := make([]SemgrepFinding, 0, len(out.Results))
	for _, r := range out.Results {
		findings = append(findings, SemgrepFinding{
			CheckID:  r.CheckID,
			Path:     r.Path,
			Line:     r.Start.Line,
			EndLine:  r.End.Line,
			Message:  r.Extra.Message,
			Severity: r.Extra.Severity,
			Snippet:  r.Extra.Lines,
		})
	}
	return findings, nil
}

func filterIgnored(findings []SemgrepFinding, matcher *IgnoreMatcher) []SemgrepFinding {
	kept := findings[:0]
	for _, f := range findings {
		if !matcher.ShouldIgnore(filepath.ToSlash(f.Path), false) {
			kept = append(kept, f)
		}
	}
	return kept
}

// Location renders the finding position as path:line.
func (f SemgrepFinding) Location() string {
	return fmt.Sprintf("%s:%d", f.Path, f.Line)
}
