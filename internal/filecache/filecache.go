package filecache

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// Cache is an mtime-gated cache of raw file contents. A cached entry is
// served only while the file's modification time is unchanged; any
// mismatch forces a re-read and replaces the entry wholesale. The cache is
// owned by the top-level service and reset only on process restart.
type Cache struct {
	fs      afero.Fs
	mu      sync.Mutex
	entries map[string]entry
}

type entry struct {
	mtime time.Time
	data  []byte
}

func New(fs afero.Fs) *Cache {
	return &Cache{
		fs:      fs,
		entries: make(map[string]entry),
	}
}

// Get returns the file's contents, re-reading only when the on-disk mtime
// differs from the cached one. A missing or unreadable file is an error;
// callers decide whether absence is fatal.
func (c *Cache) Get(path string) ([]byte, error) {
	info, err := c.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[path]; ok && e.mtime.Equal(info.ModTime()) {
		return e.data, nil
	}

	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	c.entries[path] = entry{mtime: info.ModTime(), data: data}
	return data, nil
}

// Exists reports whether the path is present, without caching anything.
func (c *Cache) Exists(path string) bool {
	_, err := c.fs.Stat(path)
	return err == nil
}

// Reset discards every cached entry.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}
