// Package app implements the application layer for itinerary.
package app

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/itinerary/internal/adapters/cache"
	"go.trai.ch/itinerary/internal/adapters/netprobe"
	"go.trai.ch/itinerary/internal/adapters/probe"
	"go.trai.ch/itinerary/internal/core/domain"
	"go.trai.ch/itinerary/internal/core/ports"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	siteLoader ports.SiteLoader
	logger     ports.Logger
	client     ports.HTTPDoer
	telemetry  ports.Telemetry
	watcher    ports.FileWatcher

	mu    sync.Mutex
	cache ports.ImageCache

	prober       ports.ImageProber
	connectivity ports.ConnectivityProbe
	teaOptions   []tea.ProgramOption
}

// New creates a new App instance.
func New(
	loader ports.SiteLoader,
	log ports.Logger,
	client ports.HTTPDoer,
	telemetry ports.Telemetry,
	watcher ports.FileWatcher,
) *App {
	return &App{
		siteLoader: loader,
		logger:     log,
		client:     client,
		telemetry:  telemetry,
		watcher:    watcher,
	}
}

// WithProber replaces the prober built from the site settings.
// This is primarily used for testing.
func (a *App) WithProber(p ports.ImageProber) *App {
	a.prober = p
	return a
}

// WithConnectivityProbe replaces the TCP dial probe.
// This is primarily used for testing.
func (a *App) WithConnectivityProbe(p ports.ConnectivityProbe) *App {
	a.connectivity = p
	return a
}

// WithTeaOptions configures the options passed to the interactive carousel program.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithImageCache replaces the lazily built image cache.
func (a *App) WithImageCache(c ports.ImageCache) *App {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cache = c
	return a
}

// Close flushes the telemetry recording.
func (a *App) Close() error {
	return a.telemetry.Close()
}

func (a *App) loadSite(path string) (*domain.Site, error) {
	site, err := a.siteLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load site")
	}
	return site, nil
}

// imageCache returns the shared cache, creating it with the capacity of the first loaded
// site.
func (a *App) imageCache(settings domain.Settings) ports.ImageCache {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cache == nil {
		a.cache = cache.New(settings.CacheCapacity)
	}
	return a.cache
}

func (a *App) imageProber(settings domain.Settings) (ports.ImageProber, error) {
	if a.prober != nil {
		return a.prober, nil
	}
	return probe.New(a.client, settings.BaseURL, settings.StaticRoot)
}

func (a *App) connectivityProbe(address string) ports.ConnectivityProbe {
	if a.connectivity != nil {
		return a.connectivity
	}
	return netprobe.New(address)
}
