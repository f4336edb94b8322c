package shell

import (
	"context"
	"runtime"

	"github.com/grindlemire/graft"

	"maek/internal/adapters/logger"
	"maek/internal/core/ports"
	"maek/internal/engine/limiter"
)

const NodeID graft.ID = "adapter.runner"

func init() {
	graft.Register(graft.Node[ports.Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Runner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			// JOBS = CPU_COUNT + 1, per spec.md §5.
			return New(log, limiter.New(runtime.NumCPU()+1)), nil
		},
	})
}
