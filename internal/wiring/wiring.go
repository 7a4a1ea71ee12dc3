// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/itinerary/internal/adapters/config"
	_ "go.trai.ch/itinerary/internal/adapters/httpclient"
	_ "go.trai.ch/itinerary/internal/adapters/logger"
	_ "go.trai.ch/itinerary/internal/adapters/telemetry"
	_ "go.trai.ch/itinerary/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/itinerary/internal/app"
)
