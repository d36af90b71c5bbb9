// Package assets resolves, reads and caches OBJ model sources.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/objmesh/pkg/encoding"
	"github.com/Faultbox/objmesh/pkg/formats"
)

// ErrNotFound is returned when a model path matches no search path.
var ErrNotFound = errors.New("file not found")

// Manager loads model sources from a list of search directories.
type Manager struct {
	roots []string
	cache *Cache
	log   *zap.Logger
	mu    sync.RWMutex
}

// NewManager creates a new asset manager. A nil logger disables logging.
func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		cache: NewCache(),
		log:   log,
	}
}

// AddSearchPath adds a directory to search for relative model paths.
// Directories are searched in reverse order (last added = highest priority).
func (m *Manager) AddSearchPath(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding search path %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding search path %s: not a directory", dir)
	}

	m.mu.Lock()
	m.roots = append(m.roots, dir)
	m.mu.Unlock()

	m.log.Debug("search path added", zap.String("dir", dir))
	return nil
}

// Resolve returns the file path a model path refers to.
// Absolute paths are used as-is; relative ones are looked up in the search paths.
func (m *Manager) Resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return path, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.roots) - 1; i >= 0; i-- {
		candidate := filepath.Join(m.roots[i], path)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, path)
}

// Load returns the UTF-8 source text of a model file.
func (m *Manager) Load(path string) ([]byte, error) {
	resolved, err := m.Resolve(path)
	if err != nil {
		return nil, err
	}
	key := encoding.NormalizePath(resolved)

	if data, ok := m.cache.Get(key); ok {
		m.log.Debug("cache hit", zap.String("path", key))
		return data, nil
	}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", resolved, err)
	}
	if encoding.HasBOM(raw) {
		m.log.Debug("byte order mark found", zap.String("path", key))
	}

	data, err := encoding.DecodeSource(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", resolved, err)
	}

	m.cache.Set(key, data)
	m.log.Debug("source loaded", zap.String("path", key), zap.Int("bytes", len(data)))
	return data, nil
}

// LoadOBJ loads and parses a model file.
func (m *Manager) LoadOBJ(path string, opts formats.OBJOptions) (*formats.OBJ, error) {
	data, err := m.Load(path)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	obj, err := formats.ParseOBJ(data, opts)
	if err != nil {
		m.log.Warn("parse failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	m.log.Info("model loaded",
		zap.String("path", path),
		zap.Int("positions", obj.Positions().Len()),
		zap.Int("uvs", obj.UVs().Len()),
		zap.Int("normals", obj.Normals().Len()),
		zap.Int("triangles", obj.TriangleCount()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return obj, nil
}

// Stats returns cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close drops the search paths and cached sources.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	hits, misses := m.cache.Stats()
	m.log.Debug("asset cache closed", zap.Int("hits", hits), zap.Int("misses", misses))

	m.roots = nil
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded sources.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Len returns the number of cached items.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
