package cache

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/blackwell-systems/shelflog/internal/util"
)

// Manager handles the local cover cache.
type Manager struct {
	baseDir string
}

// New creates a cache Manager rooted at baseDir.
func New(baseDir string) *Manager {
	return &Manager{baseDir: baseDir}
}

// Dir returns the cache root.
func (m *Manager) Dir() string { return m.baseDir }

func (m *Manager) coversDir() string {
	return filepath.Join(m.baseDir, "covers")
}

// CoverPath returns where the cover for bookID fetched from coverURL lives.
// Layout: <baseDir>/covers/<book-id>-<url-hash>.<ext>
// A changed URL maps to a different file, so stale covers are never served.
func (m *Manager) CoverPath(bookID int64, coverURL string) string {
	name := strconv.FormatInt(bookID, 10) + "-" + util.ShortHash(coverURL, 12) + coverExt(coverURL)
	return filepath.Join(m.coversDir(), name)
}

// HasCover reports whether the cover is already cached.
func (m *Manager) HasCover(bookID int64, coverURL string) bool {
	_, err := os.Stat(m.CoverPath(bookID, coverURL))
	return err == nil
}

// RemoveCover deletes a cached cover if it exists.
func (m *Manager) RemoveCover(bookID int64, coverURL string) error {
	err := os.Remove(m.CoverPath(bookID, coverURL))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func coverExt(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}
	switch ext := strings.ToLower(path.Ext(p)); ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	default:
		return ".jpg"
	}
}
