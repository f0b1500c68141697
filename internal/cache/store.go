package cache

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/blackwell-systems/shelflog/internal/util"
)

// StoreCover writes data as the cover for bookID. The file is written to a
// temp path first and renamed, so readers never see a partial image.
// Returns the final file path.
func (m *Manager) StoreCover(bookID int64, coverURL string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty cover for book %d", bookID)
	}
	if err := util.EnsureDir(m.coversDir()); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	destPath := m.CoverPath(bookID, coverURL)
	tmpPath := destPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("writing to cache: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	return destPath, nil
}
