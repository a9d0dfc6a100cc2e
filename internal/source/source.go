// Package source reads OBJ files from disk and parses them into models.
package source

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/objmesh/internal/logger"
	"github.com/Faultbox/objmesh/pkg/encoding"
	"github.com/Faultbox/objmesh/pkg/obj"
)

// Options controls how source files are decoded.
type Options struct {
	// Encoding names the text encoding of the files ("" means UTF-8).
	Encoding string
}

// Read reads a file and converts it to UTF-8.
func Read(path string, opts Options) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	data, err := encoding.Decode(raw, opts.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Named("source").Debug("read file",
		zap.String("path", path),
		zap.Int("bytes", len(raw)),
		zap.String("encoding", opts.Encoding))
	return data, nil
}

// Load reads and parses a file into a model.
func Load(path string, opts Options) (*obj.Model, error) {
	data, err := Read(path, opts)
	if err != nil {
		return nil, err
	}
	model, err := obj.ParseModel(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Named("source").Debug("loaded model",
		zap.String("path", path),
		zap.String("name", model.Name),
		zap.Int("vertices", len(model.Vertices)),
		zap.Int("triangles", model.TriangleCount()))
	return model, nil
}

// Save writes m as OBJ text in the encoding named by opts.
func Save(path string, m *obj.Model, writeOpts obj.WriteOptions, opts Options) error {
	var buf bytes.Buffer
	if err := obj.WriteModel(&buf, m, writeOpts); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	data, err := encoding.Encode(buf.Bytes(), opts.Encoding)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Named("source").Debug("saved model",
		zap.String("path", path),
		zap.Int("bytes", len(data)),
		zap.String("encoding", opts.Encoding))
	return nil
}

// Loader loads models and caches them by path.
// Safe for concurrent use.
type Loader struct {
	opts  Options
	cache *Cache
}

// NewLoader creates a new loader.
func NewLoader(opts Options) *Loader {
	return &Loader{
		opts:  opts,
		cache: NewCache(),
	}
}

// Load returns the cached model for path, loading it on first use.
// Failed loads are not cached.
func (l *Loader) Load(path string) (*obj.Model, error) {
	if model, ok := l.cache.Get(path); ok {
		return model, nil
	}
	model, err := Load(path, l.opts)
	if err != nil {
		return nil, err
	}
	l.cache.Set(path, model)
	return model, nil
}

// Cache returns the loader's model cache.
func (l *Loader) Cache() *Cache {
	return l.cache
}

// Cache is an in-memory cache of parsed models.
type Cache struct {
	data map[string]*obj.Model
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*obj.Model),
	}
}

// Get retrieves a model from cache.
func (c *Cache) Get(key string) (*obj.Model, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	model, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return model, ok
}

// Set stores a model in cache.
func (c *Cache) Set(key string, model *obj.Model) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = model
}

// Len returns the number of cached models.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*obj.Model)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
