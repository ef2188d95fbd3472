// Package pdf extracts text from PDF report files.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Reader-level failures the CLI maps to distinct exit messages.
var (
	ErrNotFound    = errors.New("pdf file not found")
	ErrInvalidFile = errors.New("file is not a pdf")
	ErrTooLarge    = errors.New("pdf file exceeds the size limit")
	ErrEmpty       = errors.New("pdf contains no extractable text")
)

// Document is an extracted PDF with its file metadata.
type Document struct {
	FilePath    string            `json:"file_path"`
	Content     string            `json:"content"`
	Metadata    map[string]string `json:"metadata"`
	PageCount   int               `json:"num_pages"`
	FileSize    int64             `json:"file_size"`
	ExtractedAt time.Time         `json:"extracted_at"`
}

// Reader extracts the text content of a document file.
type Reader interface {
	CanRead(path string) bool
	Read(ctx context.Context, path string) (*Document, error)
}

// PopplerReader shells out to pdftotext (poppler-utils). pdfinfo, when
// available, supplies the page count and document metadata.
type PopplerReader struct {
	// Binary is the pdftotext executable, "pdftotext" by default.
	Binary string
	// MaxSize caps the input file size in bytes. Zero means no limit.
	MaxSize int64
}

// NewPopplerReader returns a reader with the given size limit in bytes.
func NewPopplerReader(binary string, maxSize int64) *PopplerReader {
	if binary == "" {
		binary = "pdftotext"
	}
	return &PopplerReader{Binary: binary, MaxSize: maxSize}
}

// CanRead reports whether path is an existing .pdf file.
func (r *PopplerReader) CanRead(path string) bool {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Read extracts the document text. Layout is preserved so tabular findings
// stay readable for the model.
func (r *PopplerReader) Read(ctx context.Context, path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFile, path)
	}
	if r.MaxSize > 0 && info.Size() > r.MaxSize {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrTooLarge, info.Size(), r.MaxSize)
	}

	cmd := exec.CommandContext(ctx, r.Binary, "-layout", "-enc", "UTF-8", path, "-")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running %s: %w\nstderr: %s", r.Binary, err, stderr.String())
	}

	content := strings.TrimSpace(stdout.String())
	if content == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}

	doc := &Document{
		FilePath: path,
		Content:  content,
		Metadata: map[string]string{
			"file_name": filepath.Base(path),
		},
		FileSize:    info.Size(),
		ExtractedAt: time.Now(),
	}
	r.enrichMetadata(ctx, doc)
	return doc, nil
}

// enrichMetadata fills in page count, title and author from pdfinfo. Best
// effort: a missing pdfinfo binary leaves the document as is.
func (r *PopplerReader) enrichMetadata(ctx context.Context, doc *Document) {
	infoBinary := "pdfinfo"
	if dir := filepath.Dir(r.Binary); dir != "." {
		infoBinary = filepath.Join(dir, "pdfinfo")
	}

	out, err := exec.CommandContext(ctx, infoBinary, doc.FilePath).Output()
	if err != nil {
		return
	}

	for key, value := range parseInfoOutput(string(out)) {
		switch key {
		case "Pages":
			fmt.Sscanf(value, "%d", &doc.PageCount)
		case "Title":
			doc.Metadata["title"] = value
		case "Author":
			doc.Metadata["author"] = value
		case "CreationDate":
			doc.Metadata["creation_date"] = value
		case "Producer":
			doc.Metadata["producer"] = value
		}
	}
}

// parseInfoOutput splits pdfinfo's "Key: value" lines.
func parseInfoOutput(out string) map[string]string {
	fields := map[string]string{}
	for _, line := range strings.Split(out, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key != "" && value != "" {
			fields[key] = value
		}
	}
	return fields
}
