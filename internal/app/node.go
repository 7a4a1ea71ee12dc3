package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/itinerary/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"go.trai.ch/itinerary/internal/adapters/httpclient" //nolint:depguard // Wired in app layer
	"go.trai.ch/itinerary/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"go.trai.ch/itinerary/internal/adapters/telemetry"  //nolint:depguard // Wired in app layer
	"go.trai.ch/itinerary/internal/adapters/watcher"    //nolint:depguard // Wired in app layer
	"go.trai.ch/itinerary/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			httpclient.NodeID,
			telemetry.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.SiteLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	client, err := graft.Dep[ports.HTTPDoer](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.FileWatcher](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, client, tel, w), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    a,
		Logger: log,
	}, nil
}
