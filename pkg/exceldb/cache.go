package exceldb

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Cache memoizes loaded workbooks by path. An entry is reused only while
// the file's modification time and size are unchanged.
type Cache struct {
	mu      sync.Mutex
	opts    Options
	entries map[string]cacheEntry
}

type cacheEntry struct {
	wb      *Workbook
	modTime time.Time
	size    int64
}

// NewCache creates an empty cache that loads with opts.
func NewCache(opts Options) *Cache {
	return &Cache{
		opts:    opts,
		entries: make(map[string]cacheEntry),
	}
}

// Load returns the cached workbook for path, reloading it when the file
// changed since it was cached.
func (c *Cache) Load(path string) (*Workbook, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = path
	}

	info, err := os.Stat(path)
	if err != nil {
		c.Forget(path)
		return nil, &SourceLoadError{Path: path, Err: classifyLoadError(err)}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok && e.modTime.Equal(info.ModTime()) && e.size == info.Size() {
		log.WithField("path", path).Trace("workbook cache hit")
		return e.wb, nil
	}

	wb, err := LoadWithOptions(path, c.opts)
	if err != nil {
		delete(c.entries, key)
		return nil, err
	}
	c.entries[key] = cacheEntry{wb: wb, modTime: info.ModTime(), size: info.Size()}
	return wb, nil
}

// Forget drops the entry for path.
func (c *Cache) Forget(path string) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = path
	}
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len returns the number of cached workbooks.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
