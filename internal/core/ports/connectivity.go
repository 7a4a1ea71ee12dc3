package ports

import "context"

// ConnectivityProbe reads the host's connectivity.
//
//go:generate go run go.uber.org/mock/mockgen -source=connectivity.go -destination=mocks/mock_connectivity.go -package=mocks
type ConnectivityProbe interface {
	// Online reports whether the network is reachable right now.
	Online(ctx context.Context) bool
}

// Connectivity is a read-only view over the current connectivity state.
type Connectivity interface {
	// IsConnected returns the last observed state without performing I/O.
	IsConnected() bool
	// Subscribe registers fn for every state transition and returns its de-registration.
	Subscribe(fn func(online bool)) (unsubscribe func())
}
