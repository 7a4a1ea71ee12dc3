package app

import (
	"context"
	"fmt"

	"go.trai.ch/itinerary/internal/adapters/config"
	"go.trai.ch/itinerary/internal/core/domain"
)

// Summary describes a loaded site.
type Summary struct {
	Itinerary   *domain.Itinerary
	Fingerprint string
	Days        int
	Images      int
	Documents   int
	Flights     int
}

// Validate loads the site at path and summarises it.
func (a *App) Validate(_ context.Context, path string) (*Summary, error) {
	site, err := a.loadSite(path)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		Itinerary:   site.Itinerary,
		Fingerprint: site.Fingerprint,
		Days:        len(site.Itinerary.Days),
		Images:      len(site.Itinerary.ImageURLs()),
		Documents:   len(site.Itinerary.Documents),
	}
	for _, d := range site.Itinerary.Days {
		s.Flights += len(d.Flights)
	}
	return s, nil
}

// WatchSite validates the site at path now and after every change to the file, passing each
// outcome to fn. It blocks until ctx is done.
func (a *App) WatchSite(ctx context.Context, path string, fn func(*Summary, error)) error {
	fn(a.Validate(ctx, path))

	file := config.ResolvePath(path)
	a.logger.Info(fmt.Sprintf("watching %s for changes", file))

	return a.watcher.Watch(ctx, file, func() {
		fn(a.Validate(ctx, path))
	})
}
