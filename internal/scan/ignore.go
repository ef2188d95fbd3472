package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// IgnoreMatcher matches scan findings against ignore patterns.
type IgnoreMatcher struct {
	patterns []gitignore.Pattern
}

// LoadIgnorePatterns collects patterns from .genaiignore files in the source
// tree. Patterns use gitignore syntax, scoped to the directory of the file
// that declares them.
func LoadIgnorePatterns(root string) (*IgnoreMatcher, error) {
	var all []gitignore.Pattern

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() && skipDir(info.Name()) {
			return filepath.SkipDir
		}
		if !info.IsDir() && info.Name() == ".genaiignore" {
			patterns, err := loadIgnoreFile(path, root)
			if err != nil {
				return err
			}
			all = append(all, patterns...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &IgnoreMatcher{patterns: all}, nil
}

func loadIgnoreFile(ignorePath, root string) ([]gitignore.Pattern, error) {
	data, err := os.ReadFile(ignorePath)
	if err != nil {
		return nil, err
	}

	relDir, err := filepath.Rel(root, filepath.Dir(ignorePath))
	if err != nil {
		return nil, err
	}
	var domain []string
	if relDir != "." {
		domain = strings.Split(relDir, string(filepath.Separator))
	}

	var patterns []gitignore.Pattern
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, domain))
	}
	return patterns, nil
}

// ShouldIgnore reports whether the path matches any ignore pattern. The path
// is interpreted relative to the scanned root.
func (m *IgnoreMatcher) ShouldIgnore(path string, isDir bool) bool {
	if m == nil || len(m.patterns) == 0 {
		return false
	}
	parts := strings.Split(filepath.FromSlash(path), string(filepath.Separator))
	return gitignore.NewMatcher(m.patterns).Match(parts, isDir)
}

func skipDir(name string) bool {
	switch name {
	case ".git", ".svn", ".hg", "node_modules", "vendor":
		return true
	}
	return false
}
