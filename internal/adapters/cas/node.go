package cas

import (
	"context"

	"github.com/grindlemire/graft"

	"maek/internal/core/ports"
)

// NodeID is the unique identifier for the persisted cache store Graft node.
const NodeID graft.ID = "adapter.store"

// DefaultPath is the cache file path used by the CLI wiring graph. The
// embeddable maek package instead reads this from maek.yaml (spec.md §6).
var DefaultPath = "maek-cache.json"

func init() {
	graft.Register(graft.Node[ports.Store]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Store, error) {
			return NewStore(DefaultPath), nil
		},
	})
}
