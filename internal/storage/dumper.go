package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// HTMLDumper writes raw fragment HTML beside the JSON artifacts, one file
// per document id.
type HTMLDumper struct {
	dir    string
	logger *zap.Logger
}

// NewHTMLDumper returns a dumper rooted at dir. The directory is created
// on first dump.
func NewHTMLDumper(dir string, logger *zap.Logger) *HTMLDumper {
	return &HTMLDumper{dir: dir, logger: logger}
}

// Dump writes html to <dir>/<docid>.html and returns the path.
func (d *HTMLDumper) Dump(docID, html string) (string, error) {
	if err := os.MkdirAll(d.dir, 0o750); err != nil {
		return "", fmt.Errorf("create html dump dir: %w", err)
	}
	path := filepath.Join(d.dir, docID+".html")
	if err := os.WriteFile(path, []byte(html), 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	d.logger.Debug("fragment html dumped", zap.String("path", path))
	return path, nil
}
