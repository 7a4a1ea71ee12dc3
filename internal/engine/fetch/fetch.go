// Package fetch issues HTTP requests with a per-attempt timeout and exponential backoff.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.trai.ch/itinerary/internal/core/domain"
	"go.trai.ch/itinerary/internal/core/ports"
	"go.trai.ch/zerr"
)

// drainLimit caps how much of an error body is read before closing it.
const drainLimit = 4 << 10

// RequestFunc builds the request of one attempt. It is called again for every retry.
type RequestFunc func(ctx context.Context) (*http.Request, error)

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	Code int
	URL  string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP Error: %d", e.Code)
}

// Retryable reports whether the status is worth another attempt. Client errors are final.
func (e *StatusError) Retryable() bool {
	return e.Code < http.StatusBadRequest || e.Code >= http.StatusInternalServerError
}

// Fetcher retries failed requests with exponential backoff.
type Fetcher struct {
	client     ports.HTTPDoer
	maxRetries int
	timeout    time.Duration
	baseDelay  time.Duration
}

// New creates a Fetcher. maxRetries below one is treated as a single attempt; non-positive
// durations fall back to the domain defaults.
func New(client ports.HTTPDoer, maxRetries int, timeout, baseDelay time.Duration) *Fetcher {
	if maxRetries < 1 {
		maxRetries = 1
	}
	if timeout <= 0 {
		timeout = domain.DefaultFetchTimeout
	}
	if baseDelay <= 0 {
		baseDelay = domain.DefaultFetchBaseDelay
	}
	return &Fetcher{
		client:     client,
		maxRetries: maxRetries,
		timeout:    timeout,
		baseDelay:  baseDelay,
	}
}

// Get fetches url with retries.
func (f *Fetcher) Get(ctx context.Context, url string) (*http.Response, error) {
	return f.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	})
}

// Do runs build and sends the request until a 2xx response arrives, a client error is
// returned or the attempt ceiling is reached. Closing the returned body releases the attempt.
func (f *Fetcher) Do(ctx context.Context, build RequestFunc) (*http.Response, error) {
	var lastErr error
	for i := range f.maxRetries {
		resp, err := f.attempt(ctx, build)
		if err == nil {
			return resp, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		lastErr = err

		var statusErr *StatusError
		if errors.As(err, &statusErr) && !statusErr.Retryable() {
			return nil, err
		}

		if i == f.maxRetries-1 {
			break
		}
		if err := sleep(ctx, f.backoff(i)); err != nil {
			return nil, err
		}
	}

	if lastErr == nil {
		return nil, domain.ErrFetchExhausted
	}
	return nil, lastErr
}

// Download copies the body of url into w and returns the number of bytes written.
func (f *Fetcher) Download(ctx context.Context, url string, w io.Writer) (int64, error) {
	resp, err := f.Get(ctx, url)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrDocumentDownloadFailed.Error()), "url", url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, zerr.With(zerr.Wrap(err, domain.ErrDocumentDownloadFailed.Error()), "url", url)
	}
	return n, nil
}

func (f *Fetcher) backoff(attempt int) time.Duration {
	return f.baseDelay * time.Duration(1<<attempt)
}

func (f *Fetcher) attempt(parent context.Context, build RequestFunc) (*http.Response, error) {
	ctx, cancel := context.WithCancel(parent)
	timer := time.AfterFunc(f.timeout, cancel)

	req, err := build(ctx)
	if err != nil {
		timer.Stop()
		cancel()
		return nil, err
	}

	resp, err := f.client.Do(req)
	stopped := timer.Stop()
	if err != nil {
		cancel()
		if !stopped && parent.Err() == nil {
			return nil, f.timeoutError(req, err)
		}
		return nil, zerr.With(err, "url", req.URL.String())
	}
	if !stopped && parent.Err() == nil {
		_ = resp.Body.Close()
		cancel()
		return nil, f.timeoutError(req, context.Canceled)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, drainLimit))
		_ = resp.Body.Close()
		cancel()
		return nil, &StatusError{Code: resp.StatusCode, URL: req.URL.String()}
	}

	resp.Body = &cancelBody{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

func (f *Fetcher) timeoutError(req *http.Request, cause error) error {
	err := zerr.Wrap(cause, "fetch attempt timed out")
	err = zerr.With(err, "url", req.URL.String())
	return zerr.With(err, "timeout", f.timeout.String())
}

type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
