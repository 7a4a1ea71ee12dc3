package netmon

import (
	"context"
	"time"

	"go.trai.ch/itinerary/internal/core/domain"
	"go.trai.ch/itinerary/internal/core/ports"
)

// Poll reads the connectivity through probe immediately and then every interval, feeding
// the readings into m. It returns the context error once ctx is done.
func Poll(ctx context.Context, probe ports.ConnectivityProbe, m *Monitor, interval time.Duration) error {
	if interval <= 0 {
		interval = domain.DefaultConnectivityInterval
	}

	read := func() error {
		online := probe.Online(ctx)
		if err := ctx.Err(); err != nil {
			return err
		}
		m.SetOnline(online)
		return nil
	}

	if err := read(); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := read(); err != nil {
				return err
			}
		}
	}
}
