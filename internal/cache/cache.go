// Package cache stores compiled style bundles on disk so unchanged
// sources are not recompiled.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const indexVersion = "1.0"

// Cache represents an on-disk artifact cache
type Cache struct {
	mu     sync.RWMutex
	dir    string
	maxAge time.Duration
	index  *Index
	stats  Stats
}

// Index tracks all cached entries
type Index struct {
	Version string            `json:"version"`
	Entries map[string]*Entry `json:"entries"`
	Updated time.Time         `json:"updated"`
}

// Entry represents a single cached artifact
type Entry struct {
	Key     string    `json:"key"`
	Hash    string    `json:"hash"`
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	Created time.Time `json:"created"`
}

// Stats tracks cache performance
type Stats struct {
	Hits       int64 `json:"hits"`
	Misses     int64 `json:"misses"`
	TotalSize  int64 `json:"total_size"`
	EntryCount int   `json:"entry_count"`
}

// Config holds cache configuration
type Config struct {
	Dir    string        // Cache directory
	MaxAge time.Duration // Maximum age for entries, 0 keeps them forever
}

// New creates a cache in config.Dir, loading an existing index
func New(config Config) (*Cache, error) {
	if config.Dir == "" {
		return nil, fmt.Errorf("cache directory is required")
	}

	if err := os.MkdirAll(filepath.Join(config.Dir, "artifacts"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	c := &Cache{
		dir:    config.Dir,
		maxAge: config.MaxAge,
	}

	// Index doesn't exist or is corrupted, start fresh
	if err := c.loadIndex(); err != nil {
		c.index = newIndex()
	}
	c.stats.EntryCount = len(c.index.Entries)
	for _, e := range c.index.Entries {
		c.stats.TotalSize += e.Size
	}

	return c, nil
}

func newIndex() *Index {
	return &Index{
		Version: indexVersion,
		Entries: make(map[string]*Entry),
		Updated: time.Now(),
	}
}

// Get retrieves a cached artifact
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.index.Entries[key]
	c.mu.RUnlock()

	if !ok {
		c.recordMiss()
		return nil, false
	}

	if c.maxAge > 0 && time.Since(entry.Created) > c.maxAge {
		_ = c.Delete(key)
		c.recordMiss()
		return nil, false
	}

	data, err := os.ReadFile(entry.Path)
	if err != nil || hash(data) != entry.Hash {
		// Cache file is missing or corrupted
		_ = c.Delete(key)
		c.recordMiss()
		return nil, false
	}

	c.recordHit()
	return data, true
}

// Put stores an artifact in the cache
func (c *Cache) Put(key string, data []byte) error {
	sum := hash(data)

	c.mu.RLock()
	if existing, ok := c.index.Entries[key]; ok && existing.Hash == sum {
		c.mu.RUnlock()
		return nil
	}
	c.mu.RUnlock()

	path := filepath.Join(c.dir, "artifacts", fmt.Sprintf("%s_%s", sanitizeKey(key), sum[:8]))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	entry := &Entry{
		Key:     key,
		Hash:    sum,
		Path:    path,
		Size:    int64(len(data)),
		Created: time.Now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.index.Entries[key]; ok {
		if old.Path != path {
			os.Remove(old.Path)
		}
		c.stats.TotalSize -= old.Size
	}
	c.index.Entries[key] = entry
	c.index.Updated = time.Now()
	c.stats.TotalSize += entry.Size
	c.stats.EntryCount = len(c.index.Entries)

	return c.saveIndexNoLock()
}

// Delete removes an artifact from the cache
func (c *Cache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.index.Entries[key]
	if !ok {
		return nil
	}

	os.Remove(entry.Path)
	delete(c.index.Entries, key)
	c.stats.TotalSize -= entry.Size
	c.stats.EntryCount = len(c.index.Entries)

	return c.saveIndexNoLock()
}

// Clear removes every artifact
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, entry := range c.index.Entries {
		os.Remove(entry.Path)
	}
	c.index = newIndex()
	c.stats.TotalSize = 0
	c.stats.EntryCount = 0

	return c.saveIndexNoLock()
}

// GetStats returns cache statistics
func (c *Cache) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// Key generates a cache key from inputs
func Key(inputs ...string) string {
	h := sha256.New()
	for _, input := range inputs {
		h.Write([]byte(input))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) loadIndex() error {
	data, err := os.ReadFile(filepath.Join(c.dir, "index.json"))
	if err != nil {
		return err
	}

	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return err
	}
	if index.Version != indexVersion || index.Entries == nil {
		return fmt.Errorf("unsupported cache index version %q", index.Version)
	}

	c.index = &index
	return nil
}

func (c *Cache) saveIndexNoLock() error {
	data, err := json.MarshalIndent(c.index, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, "index.json"), data, 0644)
}

func (c *Cache) recordHit() {
	c.mu.Lock()
	c.stats.Hits++
	c.mu.Unlock()
}

func (c *Cache) recordMiss() {
	c.mu.Lock()
	c.stats.Misses++
	c.mu.Unlock()
}

func hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

func sanitizeKey(key string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
	)
	sanitized := replacer.Replace(key)
	if len(sanitized) > 100 {
		sanitized = sanitized[:100]
	}
	return sanitized
}
