// Package carousel implements the slide navigation state machine of an image gallery.
package carousel

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.trai.ch/itinerary/internal/core/domain"
	"go.trai.ch/itinerary/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options configures a Carousel.
type Options struct {
	// AutoPlay advances to the next slide every Interval until the first manual action.
	AutoPlay bool
	// Interval is the auto-advance period. Non-positive values use domain.DefaultAutoPlayInterval.
	Interval time.Duration
}

// State is a snapshot of a Carousel.
type State struct {
	Index     int
	Direction domain.Direction
	Length    int
	// Loaded lists the slides confirmed loaded, in ascending order.
	Loaded []int
}

// Carousel tracks the current slide, the direction of the last transition and the slides
// whose images are loaded. It is safe for concurrent use.
type Carousel struct {
	mu        sync.Mutex
	images    []string
	index     int
	direction domain.Direction
	loaded    map[int]struct{}
	inflight  map[int]struct{}
	autoPlay  bool
	interval  time.Duration
	timer     *time.Timer
	observers []func(State)
	closed    bool

	prober ports.ImageProber
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Carousel over images. The image list must not be empty.
func New(images []string, prober ports.ImageProber, opts Options) (*Carousel, error) {
	if len(images) == 0 {
		return nil, domain.ErrNoImages
	}
	if opts.Interval <= 0 {
		opts.Interval = domain.DefaultAutoPlayInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Carousel{
		images:   slices.Clone(images),
		loaded:   map[int]struct{}{0: {}},
		inflight: make(map[int]struct{}),
		interval: opts.Interval,
		prober:   prober,
		ctx:      ctx,
		cancel:   cancel,
	}

	if !c.Navigable() {
		return c, nil
	}

	c.mu.Lock()
	c.preloadLocked()
	if opts.AutoPlay {
		c.autoPlay = true
		c.timer = time.AfterFunc(c.interval, c.tick)
	}
	c.mu.Unlock()
	return c, nil
}

// Navigable reports whether the carousel has more than one slide.
func (c *Carousel) Navigable() bool {
	return len(c.images) > 1
}

// Len returns the number of slides.
func (c *Carousel) Len() int {
	return len(c.images)
}

// Image returns the source of slide i.
func (c *Carousel) Image(i int) string {
	return c.images[i]
}

// Next moves to the following slide, wrapping after the last one.
func (c *Carousel) Next() {
	c.stopAutoPlay()
	c.move(1, domain.Forward)
}

// Previous moves to the preceding slide, wrapping before the first one.
func (c *Carousel) Previous() {
	c.stopAutoPlay()
	c.move(-1, domain.Backward)
}

// JumpTo moves to slide j. The direction is forward when j is after the current slide and
// backward otherwise.
func (c *Carousel) JumpTo(j int) error {
	if j < 0 || j >= len(c.images) {
		return zerr.With(zerr.With(domain.ErrIndexOutOfRange, "index", j), "length", len(c.images))
	}
	c.stopAutoPlay()

	c.mu.Lock()
	if c.closed || !c.Navigable() {
		c.mu.Unlock()
		return nil
	}
	if j > c.index {
		c.direction = domain.Forward
	} else {
		c.direction = domain.Backward
	}
	c.index = j
	c.commitLocked()
	return nil
}

// AutoPlaying reports whether the auto-advance timer is still active.
func (c *Carousel) AutoPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autoPlay
}

// OnChange registers fn to be called with the new state after every transition.
func (c *Carousel) OnChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// State returns a snapshot of the carousel.
func (c *Carousel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Close stops auto-advance, cancels in-flight preloads and waits for them to return.
// Navigation after Close is a no-op.
func (c *Carousel) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.autoPlay = false
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
}

func (c *Carousel) tick() {
	c.mu.Lock()
	if !c.autoPlay || c.closed {
		c.mu.Unlock()
		return
	}
	c.timer = time.AfterFunc(c.interval, c.tick)
	c.moveLocked(1, domain.Forward)
}

func (c *Carousel) stopAutoPlay() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoPlay = false
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Carousel) move(delta int, dir domain.Direction) {
	c.mu.Lock()
	if c.closed || !c.Navigable() {
		c.mu.Unlock()
		return
	}
	c.moveLocked(delta, dir)
}

// moveLocked must be called with c.mu held; it releases the lock.
func (c *Carousel) moveLocked(delta int, dir domain.Direction) {
	n := len(c.images)
	c.index = (c.index + delta + n) % n
	c.direction = dir
	c.commitLocked()
}

// commitLocked must be called with c.mu held; it releases the lock before notifying
// observers.
func (c *Carousel) commitLocked() {
	c.preloadLocked()
	state := c.stateLocked()
	observers := slices.Clone(c.observers)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(state)
	}
}

func (c *Carousel) preloadLocked() {
	n := len(c.images)
	for _, i := range []int{(c.index + 1) % n, (c.index - 1 + n) % n} {
		if _, ok := c.loaded[i]; ok {
			continue
		}
		if _, ok := c.inflight[i]; ok {
			continue
		}
		if c.prober == nil {
			continue
		}
		c.inflight[i] = struct{}{}
		c.wg.Add(1)
		go c.preload(i)
	}
}

func (c *Carousel) preload(i int) {
	defer c.wg.Done()
	err := c.prober.Probe(c.ctx, c.images[i])

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, i)
	if err == nil {
		c.loaded[i] = struct{}{}
	}
}

func (c *Carousel) stateLocked() State {
	loaded := make([]int, 0, len(c.loaded))
	for i := range c.loaded {
		loaded = append(loaded, i)
	}
	slices.Sort(loaded)
	return State{
		Index:     c.index,
		Direction: c.direction,
		Length:    len(c.images),
		Loaded:    loaded,
	}
}
