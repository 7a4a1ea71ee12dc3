// Package probe implements ports.ImageProber for remote, embedded and local images.
package probe

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/itinerary/internal/core/domain"
	"go.trai.ch/itinerary/internal/core/ports"
	"go.trai.ch/zerr"
)

// maxSniff is the number of body bytes read to confirm an image actually streams.
const maxSniff = 512

var _ ports.ImageProber = (*Prober)(nil)

// Prober loads an image once. Sources are resolved in this order:
// data: URIs are decoded in memory, root-relative paths are looked up under StaticRoot when
// set and must stay inside it, otherwise they are joined to BaseURL and fetched over HTTP.
// Protocol-relative sources are always fetched.
type Prober struct {
	client     ports.HTTPDoer
	baseURL    *url.URL
	staticRoot string
}

// New creates a Prober. baseURL and staticRoot may be empty.
func New(client ports.HTTPDoer, baseURL, staticRoot string) (*Prober, error) {
	p := &Prober{client: client, staticRoot: staticRoot}
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidSettings.Error()), "baseURL", baseURL)
		}
		p.baseURL = u
	}
	return p, nil
}

// Probe performs a single load attempt of src.
func (p *Prober) Probe(ctx context.Context, src string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch {
	case strings.HasPrefix(src, "data:"):
		return probeDataURI(src)
	case strings.HasPrefix(src, "/") && !strings.HasPrefix(src, "//") && p.staticRoot != "":
		return p.probeFile(ctx, src)
	}

	target, err := p.resolve(src)
	if err != nil {
		return err
	}
	return p.probeHTTP(ctx, target)
}

func (p *Prober) resolve(src string) (string, error) {
	u, err := url.Parse(src)
	if err != nil {
		return "", unavailable(src, "reason", err.Error())
	}
	if u.IsAbs() {
		return u.String(), nil
	}
	if p.baseURL == nil {
		return "", unavailable(src, "reason", "relative source without base url")
	}
	return p.baseURL.ResolveReference(u).String(), nil
}

func (p *Prober) probeHTTP(ctx context.Context, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return unavailable(target, "reason", err.Error())
	}
	req.Header.Set("Accept", "image/*")

	resp, err := p.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return zerr.With(zerr.Wrap(err, domain.ErrImageUnavailable.Error()), "src", target)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return unavailable(target, "status", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || !strings.HasPrefix(mediaType, "image/") {
			return unavailable(target, "contentType", ct)
		}
	}

	if _, err := io.CopyN(io.Discard, resp.Body, maxSniff); err != nil && !errors.Is(err, io.EOF) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return zerr.With(zerr.Wrap(err, domain.ErrImageUnavailable.Error()), "src", target)
	}
	return nil
}

func (p *Prober) probeFile(ctx context.Context, src string) error {
	// Cache-busting queries are not part of the file name.
	path, _, _ := strings.Cut(src, "?")
	full := filepath.Join(p.staticRoot, filepath.FromSlash(path))
	if rel, err := filepath.Rel(p.staticRoot, full); err != nil ||
		rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return unavailable(src, "reason", "outside static root")
	}

	info, err := os.Stat(full)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrImageUnavailable.Error()), "src", src)
	}
	if !info.Mode().IsRegular() || info.Size() == 0 {
		return unavailable(src, "path", full)
	}
	return ctx.Err()
}

func probeDataURI(src string) error {
	header, payload, ok := strings.Cut(strings.TrimPrefix(src, "data:"), ",")
	if !ok || payload == "" {
		return unavailable("data:", "reason", "malformed data uri")
	}
	mediaType := strings.Split(header, ";")[0]
	if !strings.HasPrefix(mediaType, "image/") {
		return unavailable("data:", "mediaType", mediaType)
	}
	return nil
}

func unavailable(src, key string, value any) error {
	return zerr.With(zerr.With(domain.ErrImageUnavailable, "src", src), key, value)
}
