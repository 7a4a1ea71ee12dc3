package httpclient

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/itinerary/internal/core/ports"
)

// NodeID is the unique identifier for the HTTP client Graft node.
const NodeID graft.ID = "adapter.http_client"

func init() {
	graft.Register(graft.Node[ports.HTTPDoer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.HTTPDoer, error) {
			return New(), nil
		},
	})
}
