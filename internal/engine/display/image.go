// Package display implements the display-level retry policy of a rendered image: delayed
// cache-busting retries followed by a static fallback.
package display

import (
	"sync"
	"time"

	"go.trai.ch/itinerary/internal/core/domain"
	"go.trai.ch/itinerary/internal/core/ports"
)

// Status is the display state of an Image.
type Status int

const (
	// Loading means the current source has not reported yet.
	Loading Status = iota
	// Loaded means the current source rendered.
	Loaded
	// Failed means the fallback image is shown.
	Failed
)

// String returns a lower-case label for the status.
func (s Status) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "loading"
	}
}

// Options configures an Image.
type Options struct {
	// MaxRetries is the number of delayed retries before falling back.
	MaxRetries int
	// RetryDelay is multiplied by the retry number to get the wait before each retry.
	RetryDelay time.Duration
	// Fallback selects the placeholder shown after the last retry.
	Fallback domain.FallbackKind
	// OnError is called once, with the original source, when the fallback is shown.
	OnError func(src string)
}

// DefaultOptions returns the options used by the site when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxRetries: domain.DefaultDisplayRetries,
		RetryDelay: domain.DefaultDisplayRetryDelay,
		Fallback:   domain.FallbackPlaceholder,
	}
}

// Image tracks the source shown for one image and reacts to its load and error events.
type Image struct {
	mu      sync.Mutex
	src     string
	current string
	status  Status
	retries int
	pending *time.Timer
	stopped bool

	cache   ports.ImageCache
	opts    Options
	changed chan struct{}
}

// New creates an Image for src. A cached resolution starts the image in the Loaded state.
func New(src string, cache ports.ImageCache, opts Options) *Image {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = domain.DefaultDisplayRetryDelay
	}
	if opts.Fallback == "" {
		opts.Fallback = domain.FallbackPlaceholder
	}

	img := &Image{
		src:     src,
		current: src,
		cache:   cache,
		opts:    opts,
		changed: make(chan struct{}, 1),
	}
	if cache != nil {
		if resolved, ok := cache.Get(src); ok {
			img.current = resolved
			img.status = Loaded
		}
	}
	return img
}

// HandleLoad records a successful render of the current source.
func (i *Image) HandleLoad() {
	i.mu.Lock()
	if i.status != Loading || i.pending != nil || i.stopped {
		i.mu.Unlock()
		return
	}
	i.status = Loaded
	i.mu.Unlock()

	if i.cache != nil {
		i.cache.Set(i.src, i.src)
	}
	i.notify()
}

// HandleError records a failed render. Below the retry ceiling a cache-busting retry is
// scheduled; at the ceiling the fallback is shown and OnError runs.
func (i *Image) HandleError() {
	i.mu.Lock()
	if i.status != Loading || i.pending != nil || i.stopped {
		i.mu.Unlock()
		return
	}

	if i.retries < i.opts.MaxRetries {
		delay := i.opts.RetryDelay * time.Duration(i.retries+1)
		i.pending = time.AfterFunc(delay, i.retry)
		i.mu.Unlock()
		return
	}

	i.current = domain.FallbackImage(i.opts.Fallback)
	i.status = Failed
	onError := i.opts.OnError
	i.mu.Unlock()

	i.notify()
	if onError != nil {
		onError(i.src)
	}
}

func (i *Image) retry() {
	i.mu.Lock()
	if i.stopped || i.pending == nil {
		i.mu.Unlock()
		return
	}
	i.pending = nil
	i.retries++
	i.current = domain.CacheBustURL(i.src, i.retries)
	i.mu.Unlock()

	i.notify()
}

// Stop cancels a pending retry. Events after Stop are ignored.
func (i *Image) Stop() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.stopped = true
	if i.pending != nil {
		i.pending.Stop()
		i.pending = nil
	}
}

// Changed is signalled after every source swap and terminal transition.
func (i *Image) Changed() <-chan struct{} {
	return i.changed
}

// Source returns the original source.
func (i *Image) Source() string {
	return i.src
}

// Current returns the source that should be rendered now.
func (i *Image) Current() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.current
}

// Status returns the display state.
func (i *Image) Status() Status {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.status
}

// Retries returns the number of retries performed so far.
func (i *Image) Retries() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.retries
}

// Pending reports whether a retry is scheduled.
func (i *Image) Pending() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.pending != nil
}

func (i *Image) notify() {
	select {
	case i.changed <- struct{}{}:
	default:
	}
}
