// Package storage writes scraper artifacts to the local filesystem: one
// JSON file per sitting day, per-topic branch files, rendered exports and
// optional raw HTML dumps.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/hansard"
)

// Writer persists JSON artifacts under a base directory. Directories are
// created on first write, so constructing a Writer never touches disk.
type Writer struct {
	dir    string
	logger *zap.Logger
}

// NewWriter returns a Writer rooted at dir. An empty dir selects
// "storage", matching where readers of these artifacts look first.
func NewWriter(dir string, logger *zap.Logger) *Writer {
	if dir == "" {
		dir = "storage"
	}
	return &Writer{dir: dir, logger: logger}
}

// Dir reports the base directory artifacts land in.
func (w *Writer) Dir() string { return w.dir }

// WriteDay writes the augmented day tree to <dir>/<pdfid>.json. The file
// holds a single-element array around the root, mirroring the API's own
// framing of the table of contents.
func (w *Writer) WriteDay(root *hansard.Root) (string, error) {
	path := filepath.Join(w.dir, root.PdfID+".json")
	if err := w.writeJSON(path, []*hansard.Root{root}); err != nil {
		return "", err
	}
	return path, nil
}

// WriteTopicBranch writes a single-topic tree to
// <dir>/<pdfid>-<docid>.json.
func (w *Writer) WriteTopicBranch(branch *hansard.Root, docID string) (string, error) {
	path := filepath.Join(w.dir, fmt.Sprintf("%s-%s.json", branch.PdfID, docID))
	if err := w.writeJSON(path, []*hansard.Root{branch}); err != nil {
		return "", err
	}
	return path, nil
}

// WriteExport writes rendered export bytes next to the JSON artifacts.
func (w *Writer) WriteExport(name string, data []byte) (string, error) {
	if err := os.MkdirAll(w.dir, 0o750); err != nil {
		return "", fmt.Errorf("create storage dir: %w", err)
	}
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	w.logger.Debug("artifact written", zap.String("path", path), zap.Int("bytes", len(data)))
	return path, nil
}

// writeJSON renders v with two-space indentation, HTML left unescaped and
// no trailing newline.
func (w *Writer) writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	data := bytes.TrimRight(buf.Bytes(), "\n")

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.logger.Debug("artifact written", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
