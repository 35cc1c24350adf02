package generator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/same-cargo/internal/adapters/logger"
	"go.trai.ch/same-cargo/internal/core/ports"
)

// NodeID is the unique identifier for the project generator Graft node.
const NodeID graft.ID = "adapter.generator"

func init() {
	graft.Register(graft.Node[ports.ProjectGenerator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ProjectGenerator, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(log), nil
		},
	})
}
