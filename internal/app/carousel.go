package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/itinerary/internal/adapters/tui" //nolint:depguard // Wired in app layer
	"go.trai.ch/itinerary/internal/core/domain"
	"go.trai.ch/itinerary/internal/engine/carousel"
	"go.trai.ch/itinerary/internal/engine/imageload"
	"go.trai.ch/zerr"
)

// CarouselOptions configures a carousel session.
type CarouselOptions struct {
	AutoPlay bool
	// Interval overrides the auto-advance period of the site settings.
	Interval time.Duration
	// Steps is the number of transitions to play. With AutoPlay a non-positive value plays
	// until the context is done; without it every slide is shown once.
	Steps int
	// Activity selects the gallery of one activity of the day, by 1-based position or name.
	// The day gallery is used when empty.
	Activity string
}

// Slide is a single frame of a carousel session.
type Slide struct {
	Day   int
	Title string
	Image string
	State carousel.State
}

// OpenCarousel builds a carousel over the gallery of the given day, or of one of its
// activities when opts.Activity is set. The returned title names the gallery. The caller
// owns the returned carousel and must Close it.
func (a *App) OpenCarousel(
	path string, day int, opts CarouselOptions,
) (*carousel.Carousel, *domain.Day, string, error) {
	site, err := a.loadSite(path)
	if err != nil {
		return nil, nil, "", err
	}
	settings := site.Settings

	d, err := site.Itinerary.Day(day)
	if err != nil {
		return nil, nil, "", err
	}

	title, images := d.Title, d.Gallery()
	if opts.Activity != "" {
		act, err := d.Activity(opts.Activity)
		if err != nil {
			return nil, nil, "", err
		}
		title, images = act.Name, act.AllImages()
	}

	prober, err := a.imageProber(settings)
	if err != nil {
		return nil, nil, "", zerr.Wrap(err, "failed to create image prober")
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = settings.AutoPlayInterval
	}

	c, err := carousel.New(images, imageload.New(prober, settings.ImageRetries, settings.ImageTimeout), carousel.Options{
		AutoPlay: opts.AutoPlay,
		Interval: interval,
	})
	if err != nil {
		return nil, nil, "", zerr.With(zerr.With(err, "day", day), "activity", opts.Activity)
	}
	return c, d, title, nil
}

// PlayCarousel opens the carousel of a day and reports every slide to fn, starting with the
// first one.
func (a *App) PlayCarousel(ctx context.Context, path string, day int, opts CarouselOptions, fn func(Slide)) error {
	c, d, title, err := a.OpenCarousel(path, day, opts)
	if err != nil {
		return err
	}
	defer c.Close()

	emit := func(s carousel.State) {
		fn(Slide{Day: d.Number, Title: title, Image: c.Image(s.Index), State: s})
	}
	emit(c.State())

	if !c.Navigable() {
		return nil
	}

	if !opts.AutoPlay {
		steps := opts.Steps
		if steps <= 0 {
			steps = c.Len() - 1
		}
		for range steps {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.Next()
			emit(c.State())
		}
		return nil
	}

	states := make(chan carousel.State, 1)
	done := make(chan struct{})
	defer close(done)
	c.OnChange(func(s carousel.State) {
		select {
		case states <- s:
		case <-done:
		}
	})

	for played := 0; opts.Steps <= 0 || played < opts.Steps; played++ {
		select {
		case <-ctx.Done():
			return nil
		case s := <-states:
			emit(s)
		}
	}
	return nil
}

// BrowseCarousel opens the carousel of a day in an interactive terminal view. It returns
// when the user quits or ctx is done.
func (a *App) BrowseCarousel(ctx context.Context, path string, day int, opts CarouselOptions) error {
	c, d, title, err := a.OpenCarousel(path, day, opts)
	if err != nil {
		return err
	}
	defer c.Close()

	model := tui.NewModel(fmt.Sprintf("Day %d", d.Number), title, c)
	programOpts := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.teaOptions...)
	p := tea.NewProgram(model, programOpts...)

	// Auto-advance happens on the timer goroutine; Send blocks until the program reads it.
	c.OnChange(func(carousel.State) {
		go p.Send(tui.MsgSlideChanged{})
	})

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return zerr.Wrap(err, "carousel view failed")
	}
	return nil
}
