// Package store persists analysis artifacts as timestamped JSON documents.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/b45t3rr/genai-triage/internal/logging"
)

// Store persists one named document per call and returns where it landed.
type Store interface {
	SaveJSON(name string, doc any) (string, error)
}

// FileStore writes documents under a base directory, one file per save,
// suffixed with the save timestamp so repeated runs never overwrite each
// other.
type FileStore struct {
	dir string

	// now is swappable for tests.
	now func() time.Time
}

func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "."
	}
	return &FileStore{dir: dir, now: time.Now}
}

// SaveJSON writes doc as pretty-printed UTF-8 JSON to
// <dir>/<name>_<timestamp>.json and returns the full path. HTML escaping is
// off so payloads like "<script>" survive round-trips readably.
func (s *FileStore) SaveJSON(name string, doc any) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("encoding %s: %w", name, err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.json", name, s.now().Format("20060102_150405")))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	logging.L().Debugw("saved document", "path", path, "bytes", buf.Len())
	return path, nil
}
