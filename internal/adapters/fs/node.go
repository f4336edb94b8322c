package fs

import (
	"context"

	"github.com/grindlemire/graft"

	"maek/internal/core/ports"
)

// HasherNodeID is the unique identifier for the content hasher Graft node.
// Cacheable here means "one per graft.ExecuteFor call", which is one per
// CLI process invocation — consistent with the hash cache being per-run
// (spec.md §3).
const HasherNodeID graft.ID = "adapter.fs.hasher"

func init() {
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})
}
