// Package output persists composed pages as PNG files with the
// timestamped naming scheme <folder>_<timestamp>_page<n>.png.
package output

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

const timestampLayout = "20060102_150405"

// Writer writes pages into a single output directory.
type Writer struct {
	Dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

// DefaultDir derives the default output directory for a source folder:
// the folder's base name suffixed with the run timestamp.
func DefaultDir(sourceDir string, ts time.Time) string {
	base := filepath.Base(filepath.Clean(sourceDir))
	return fmt.Sprintf("%s_%s", base, ts.Format(timestampLayout))
}

// PageName builds the file name for one page. Pages are numbered from 1.
func PageName(sourceDir string, ts time.Time, page int) string {
	base := filepath.Base(filepath.Clean(sourceDir))
	return fmt.Sprintf("%s_%s_page%d.png", base, ts.Format(timestampLayout), page)
}

// WritePage encodes img as PNG under the writer's directory, creating
// the directory if needed. Returns the written path.
func (w *Writer) WritePage(img image.Image, name string) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", w.Dir, err)
	}
	path := filepath.Join(w.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
