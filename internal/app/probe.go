package app

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"
	"go.trai.ch/itinerary/internal/core/domain"
	"go.trai.ch/itinerary/internal/core/ports"
	"go.trai.ch/itinerary/internal/engine/display"
	"go.trai.ch/itinerary/internal/engine/imageload"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// ProbeOptions configures a probe run.
type ProbeOptions struct {
	// Display runs every image through the delayed retry and fallback of a displayed image.
	Display bool
	// Concurrency overrides the number of images resolved in parallel.
	Concurrency int
}

// ProbeReport is the outcome of a probe run.
type ProbeReport struct {
	RunID       string
	Fingerprint string
	Results     []domain.Resolution
}

// Fallbacks returns the number of images that resolved to a placeholder.
func (r *ProbeReport) Fallbacks() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == domain.StatusFallback {
			n++
		}
	}
	return n
}

// Probe resolves every image referenced by the site at path. Results keep the order of
// domain.Itinerary.ImageURLs. An image that cannot be loaded is reported with the fallback
// placeholder rather than failing the run.
func (a *App) Probe(ctx context.Context, path string, opts ProbeOptions) (*ProbeReport, error) {
	site, err := a.loadSite(path)
	if err != nil {
		return nil, err
	}
	settings := site.Settings

	prober, err := a.imageProber(settings)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create image prober")
	}
	loader := imageload.New(prober, settings.ImageRetries, settings.ImageTimeout)
	cache := a.imageCache(settings)

	limit := opts.Concurrency
	if limit < 1 {
		limit = settings.Concurrency
	}
	if limit < 1 {
		limit = domain.DefaultConcurrency
	}

	urls := site.Itinerary.ImageURLs()
	results := make([]domain.Resolution, len(urls))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, src := range urls {
		g.Go(func() error {
			r := resolver{loader: loader, cache: cache, settings: settings, telemetry: a.telemetry}
			if opts.Display {
				results[i] = r.display(ctx, src)
			} else {
				results[i] = r.load(ctx, src)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &ProbeReport{
		RunID:       ulid.Make().String(),
		Fingerprint: site.Fingerprint,
		Results:     results,
	}
	if n := report.Fallbacks(); n > 0 {
		a.logger.Warn(fmt.Sprintf("%d of %d images fell back to the placeholder", n, len(results)))
	}
	return report, nil
}

type resolver struct {
	loader    *imageload.Loader
	cache     ports.ImageCache
	settings  domain.Settings
	telemetry ports.Telemetry
}

func (r resolver) cached(src string, vertex ports.Vertex) (domain.Resolution, bool) {
	resolved, ok := r.cache.Get(src)
	if !ok {
		return domain.Resolution{}, false
	}
	vertex.Cached()
	vertex.Complete(nil)
	return domain.Resolution{Source: src, Resolved: resolved, Status: domain.StatusCached}, true
}

func (r resolver) load(ctx context.Context, src string) domain.Resolution {
	ctx, vertex := r.telemetry.Record(ctx, "resolve "+src)
	if res, ok := r.cached(src, vertex); ok {
		return res
	}

	resolved, err := r.loader.Load(ctx, src)
	if err != nil {
		vertex.Log(domain.LogLevelWarn, err.Error())
		vertex.Complete(err)
		return domain.Resolution{
			Source:   src,
			Resolved: domain.FallbackImage(r.settings.Fallback),
			Status:   domain.StatusFallback,
			Err:      err,
		}
	}

	r.cache.Set(src, resolved)
	vertex.Log(domain.LogLevelInfo, "loaded")
	vertex.Complete(nil)
	return domain.Resolution{Source: src, Resolved: resolved, Status: domain.StatusLoaded}
}

func (r resolver) display(ctx context.Context, src string) domain.Resolution {
	ctx, vertex := r.telemetry.Record(ctx, "display "+src)
	if res, ok := r.cached(src, vertex); ok {
		return res
	}

	img := display.New(src, r.cache, display.Options{
		MaxRetries: r.settings.DisplayRetries,
		RetryDelay: r.settings.DisplayRetryDelay,
		Fallback:   r.settings.Fallback,
		OnError: func(src string) {
			vertex.Log(domain.LogLevelWarn, "showing placeholder for "+src)
		},
	})

	resolved, err := display.Settle(ctx, img, r.loader)
	if err == nil && img.Status() == display.Failed {
		err = zerr.With(zerr.With(domain.ErrImageLoadFailed, "src", src), "retries", img.Retries())
	}
	vertex.Complete(err)
	if err != nil {
		return domain.Resolution{
			Source:   src,
			Resolved: resolved,
			Status:   domain.StatusFallback,
			Err:      err,
		}
	}
	return domain.Resolution{Source: src, Resolved: resolved, Status: domain.StatusLoaded}
}
