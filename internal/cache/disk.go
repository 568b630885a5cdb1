// Package cache memoizes compile results on disk, keyed by a content hash
// of the source text, so cmd/pseudogo can skip recompiling unchanged files.
// The compiler core itself remains cache-free and synchronous.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// schemaVersion guards against decoding a payload written by an
// incompatible version of pseudogo.
const schemaVersion uint16 = 1

// Digest is a SHA-256 content hash used as a cache key.
type Digest [sha256.Size]byte

// HashSource computes the cache key for a source file's raw bytes.
func HashSource(src []byte) Digest {
	return sha256.Sum256(src)
}

// Payload is what gets persisted for one cached compile.
type Payload struct {
	Schema      uint16
	Success     bool
	PythonCode  string
	Diagnostics []DiagnosticPayload
}

// DiagnosticPayload is the msgpack-friendly shape of a diag.Diagnostic,
// independent of diag.Code's Go type so old caches decode even if code
// numbering shifts.
type DiagnosticPayload struct {
	Severity  uint8
	Code      uint16
	Message   string
	StartLine uint32
	StartCol  uint32
	EndLine   uint32
	EndCol    uint32
	Hint      string
}

// Disk is a thread-safe, content-addressed cache rooted at a directory.
type Disk struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes a disk cache under $XDG_CACHE_HOME/pseudogo (falling
// back to ~/.cache/pseudogo), creating the directory if needed.
func Open() (*Disk, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, "pseudogo")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Disk{dir: dir}, nil
}

func (c *Disk) pathFor(key Digest) string {
	return filepath.Join(c.dir, "compiles", hex.EncodeToString(key[:])+".mp")
}

// Put writes payload for key, replacing any prior entry atomically.
func (c *Disk) Put(key Digest, payload *Payload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = schemaVersion
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		os.Remove(tmpName)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, p)
}

// Get reads and decodes the payload for key. ok is false (with a nil
// error) on a cache miss.
func (c *Disk) Get(key Digest) (payload *Payload, ok bool, err error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var out Payload
	if err := msgpack.NewDecoder(f).Decode(&out); err != nil {
		return nil, false, err
	}
	if out.Schema != schemaVersion {
		return nil, false, nil
	}
	return &out, true, nil
}
