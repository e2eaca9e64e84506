package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"rcc/internal/cfg"
)

// Bump when the entry layout or the CFG IR encoding changes.
const cacheSchema uint16 = 2

// DiskCache maps a CacheKey digest to the CFG IR compiled from it. Safe for
// concurrent use.
type DiskCache struct {
	root string
	mu   sync.RWMutex
}

// cacheEntry is what one file under the cache root holds. CFG is the
// cfg.Encode form, the same bytes a build writes to its output directory.
type cacheEntry struct {
	Schema  uint16 `msgpack:"schema"`
	Created int64  `msgpack:"created"`
	CFG     []byte `msgpack:"cfg"`
}

// OpenDiskCache opens the per-user cache directory for app.
func OpenDiskCache(app string) (*DiskCache, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("locate cache dir: %w", err)
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir, creating it when missing.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{root: dir}, nil
}

func (c *DiskCache) entryPath(key Digest) string {
	return filepath.Join(c.root, "cfg", key.String()+".mp")
}

// Put stores cir under key. A nil cache ignores writes.
func (c *DiskCache) Put(key Digest, cir *cfg.CFGIR) error {
	if c == nil {
		return nil
	}
	var encoded bytes.Buffer
	if err := cfg.Encode(&encoded, cir); err != nil {
		return err
	}
	entry := cacheEntry{Schema: cacheSchema, Created: time.Now().Unix(), CFG: encoded.Bytes()}

	c.mu.Lock()
	defer c.mu.Unlock()
	return replaceFile(c.entryPath(key), func(w io.Writer) error {
		return msgpack.NewEncoder(w).Encode(&entry)
	})
}

// Get loads the entry for key. A missing entry or one written under another
// schema is a miss, not an error.
func (c *DiskCache) Get(key Digest) (*cfg.CFGIR, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	data, err := os.ReadFile(c.entryPath(key))
	c.mu.RUnlock()
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry cacheEntry
	if err := msgpack.Unmarshal(data, &entry); err != nil {
		return nil, false, fmt.Errorf("cache entry %s: %w", key, err)
	}
	if entry.Schema != cacheSchema {
		return nil, false, nil
	}
	cir, err := cfg.Decode(bytes.NewReader(entry.CFG))
	if err != nil {
		return nil, false, fmt.Errorf("cache entry %s: %w", key, err)
	}
	return cir, true, nil
}

// DropAll removes every entry; the cache stays usable afterwards.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.root, "cfg"))
}
