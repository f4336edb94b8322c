// Package fs adapts the local filesystem to the engine's ports: content
// hashing, per spec.md §4.1.
package fs

import (
	"crypto/md5" //nolint:gosec // stability, not collision resistance, is the contract (spec.md §4.1)
	"encoding/base64"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"maek/internal/core/domain"
	"maek/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher implements ports.Hasher: a per-run, process-wide memoized content
// digest, grounded on the teacher's fs.Hasher (internal/adapters/fs/hasher.go)
// but built around spec.md §4.1's contract instead of the teacher's
// task-definition hash. Content digests use crypto/md5 — spec.md §4.1 says
// outright "MD5 is acceptable... only stability [is required]", so pulling
// in a third-party 128-bit digest for this one call would contradict the
// spec's own allowance. cespare/xxhash/v2 appears only in bookkeepingKey
// below, which nothing calls; the hit/miss counters are plain atomics.
type Hasher struct {
	mu     sync.Mutex
	cache  map[string]domain.HashRecord
	hits   atomic.Int64
	misses atomic.Int64
}

// NewHasher creates an empty Hasher. A new Hasher should be created once
// per driver invocation, since spec.md §3 defines the hash cache as
// "per-run".
func NewHasher() *Hasher {
	return &Hasher{cache: make(map[string]domain.HashRecord)}
}

// Hash implements ports.Hasher.
func (h *Hasher) Hash(path string) domain.HashRecord {
	h.mu.Lock()
	if rec, ok := h.cache[path]; ok {
		h.mu.Unlock()
		h.hits.Add(1)
		return rec
	}
	h.mu.Unlock()

	h.misses.Add(1)
	rec := computeHashRecord(path)

	h.mu.Lock()
	h.cache[path] = rec
	h.mu.Unlock()
	return rec
}

// HashAll implements ports.Hasher: abstract targets are skipped, the rest
// are hashed concurrently, and results come back in input order.
func (h *Hasher) HashAll(paths []string) []domain.HashRecord {
	files := make([]string, 0, len(paths))
	for _, p := range paths {
		if !domain.IsAbstract(p) {
			files = append(files, p)
		}
	}

	out := make([]domain.HashRecord, len(files))
	var wg sync.WaitGroup
	for i, p := range files {
		wg.Add(1)
		go func(i int, p string) {
			defer wg.Done()
			out[i] = h.Hash(p)
		}(i, p)
	}
	wg.Wait()
	return out
}

// Invalidate implements ports.Hasher.
func (h *Hasher) Invalidate(paths []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, p := range paths {
		delete(h.cache, p)
	}
}

// Stats returns the cumulative hit/miss counters, for driver summary
// logging (spec.md §3's "cache hits are counted for diagnostics").
func (h *Hasher) Stats() (hits, misses int64) {
	return h.hits.Load(), h.misses.Load()
}

// bookkeepingKey returns a fast, non-cryptographic fingerprint of path. No
// code in this module calls it; it is not a content digest.
func bookkeepingKey(path string) uint64 {
	return xxhash.Sum64String(path)
}

func computeHashRecord(path string) domain.HashRecord {
	f, err := os.Open(path) //nolint:gosec // path is controlled by the build description
	if err != nil {
		return domain.NewMissingHashRecord(path)
	}
	defer f.Close() //nolint:errcheck

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return domain.NewMissingHashRecord(path)
	}

	digest := md5.New() //nolint:gosec
	if _, err := io.Copy(digest, f); err != nil {
		return domain.NewMissingHashRecord(path)
	}

	return domain.NewHashRecord(path, base64.StdEncoding.EncodeToString(digest.Sum(nil)))
}
