package ports

import "maek/internal/core/domain"

// Hasher computes content digests for files on disk and renders them as
// hash records in the "<path>:<digest>" / "<path>:x" format of spec.md §4.1.
//
//go:generate mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type Hasher interface {
	// Hash returns the hash record for path. A missing file yields the "x"
	// sentinel rather than an error.
	Hash(path string) domain.HashRecord

	// HashAll returns one hash record per path, in the same order. Abstract
	// targets are skipped (they name no file), per spec.md §4.1.
	HashAll(paths []string) []domain.HashRecord

	// Invalidate drops any cached records for paths. Callers MUST invalidate
	// a file immediately before rewriting it and again once the rewriting
	// command has finished, so a stale digest is never observed mid-run.
	Invalidate(paths []string)
}
