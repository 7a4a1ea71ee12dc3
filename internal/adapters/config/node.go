package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/itinerary/internal/adapters/logger"
	"go.trai.ch/itinerary/internal/core/ports"
)

// NodeID is the unique identifier for the site loader Graft node.
const NodeID graft.ID = "adapter.site_loader"

func init() {
	graft.Register(graft.Node[ports.SiteLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.SiteLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
