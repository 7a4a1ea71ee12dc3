package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.trai.ch/itinerary/internal/engine/netmon"
)

// WatchOptions overrides the connectivity settings of the site.
type WatchOptions struct {
	Address  string
	Interval time.Duration
}

// Watch reports the connectivity of the host to onChange: once with the first reading and
// then on every transition. It blocks until ctx is done.
func (a *App) Watch(ctx context.Context, path string, opts WatchOptions, onChange func(online bool)) error {
	site, err := a.loadSite(path)
	if err != nil {
		return err
	}
	settings := site.Settings

	address := opts.Address
	if address == "" {
		address = settings.ConnectivityAddress
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = settings.ConnectivityInterval
	}

	probe := a.connectivityProbe(address)
	monitor := netmon.New(probe.Online(ctx))
	if ctx.Err() != nil {
		return nil
	}
	onChange(monitor.IsConnected())

	unsubscribe := monitor.Subscribe(onChange)
	defer unsubscribe()

	a.logger.Info(fmt.Sprintf("watching connectivity via %s every %s", address, interval))
	err = netmon.Poll(ctx, probe, monitor, interval)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
