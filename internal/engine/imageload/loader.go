// Package imageload loads an image with a per-attempt timeout and a bounded number of attempts.
package imageload

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/itinerary/internal/core/domain"
	"go.trai.ch/itinerary/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ImageProber = (*Loader)(nil)

// Loader retries an image probe until it succeeds or the attempt ceiling is reached.
type Loader struct {
	prober     ports.ImageProber
	maxRetries int
	timeout    time.Duration
}

// New creates a Loader. maxRetries below one is treated as a single attempt and a
// non-positive timeout falls back to domain.DefaultImageTimeout.
func New(prober ports.ImageProber, maxRetries int, timeout time.Duration) *Loader {
	if maxRetries < 1 {
		maxRetries = 1
	}
	if timeout <= 0 {
		timeout = domain.DefaultImageTimeout
	}
	return &Loader{prober: prober, maxRetries: maxRetries, timeout: timeout}
}

// Load returns src once an attempt succeeds. Attempts run strictly one after another; an
// attempt that outlives the timeout is abandoned and its late result discarded.
func (l *Loader) Load(ctx context.Context, src string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= l.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		err := l.attempt(ctx, src)
		if err == nil {
			return src, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		lastErr = err
	}

	msg := fmt.Sprintf("failed to load image after %d attempts: %s", l.maxRetries, src)
	err := zerr.Wrap(lastErr, msg)
	err = zerr.With(err, "src", src)
	return "", zerr.With(err, "attempts", l.maxRetries)
}

func (l *Loader) attempt(ctx context.Context, src string) error {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- l.prober.Probe(ctx, src)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return zerr.With(zerr.Wrap(ctx.Err(), "image load attempt timed out"), "timeout", l.timeout.String())
	}
}

// Probe runs Load and discards the resolved source, so a Loader can stand in for a single
// probe wherever one attempt should itself be retried.
func (l *Loader) Probe(ctx context.Context, src string) error {
	_, err := l.Load(ctx, src)
	return err
}
