package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/itinerary/internal/core/domain"
	"go.trai.ch/itinerary/internal/engine/fetch"
	"go.trai.ch/zerr"
)

// DocumentResult is the outcome of downloading one travel document.
type DocumentResult struct {
	Document domain.Document
	Path     string
	Bytes    int64
	Err      error
}

// Documents downloads every document of the site at path into outDir. Every document is
// attempted; the returned error joins the individual failures.
func (a *App) Documents(ctx context.Context, sitePath, outDir string) ([]DocumentResult, error) {
	site, err := a.loadSite(sitePath)
	if err != nil {
		return nil, err
	}
	settings := site.Settings

	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create output directory"), "dir", outDir)
	}

	fetcher := fetch.New(a.client, settings.FetchRetries, settings.FetchTimeout, settings.FetchBaseDelay)

	results := make([]DocumentResult, 0, len(site.Itinerary.Documents))
	names := make(fileNames)
	var errs []error
	for _, doc := range site.Itinerary.Documents {
		res := a.download(ctx, fetcher, settings.BaseURL, outDir, names, doc)
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
		results = append(results, res)

		if ctx.Err() != nil {
			break
		}
	}

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, errors.Join(errs...)
}

func (a *App) download(
	ctx context.Context,
	fetcher *fetch.Fetcher,
	baseURL, outDir string,
	names fileNames,
	doc domain.Document,
) (res DocumentResult) {
	res.Document = doc
	ctx, vertex := a.telemetry.Record(ctx, "download "+doc.Title)
	defer func() {
		vertex.Complete(res.Err)
	}()

	target, err := documentURL(baseURL, doc.URL)
	if err != nil {
		res.Err = err
		return res
	}
	res.Path = filepath.Join(outDir, names.claim(documentFileName(doc, target)))

	f, err := os.Create(res.Path)
	if err != nil {
		res.Err = zerr.With(zerr.Wrap(err, domain.ErrDocumentDownloadFailed.Error()), "path", res.Path)
		return res
	}

	res.Bytes, res.Err = fetcher.Download(ctx, target.String(), f)
	if closeErr := f.Close(); res.Err == nil && closeErr != nil {
		res.Err = zerr.With(zerr.Wrap(closeErr, domain.ErrDocumentDownloadFailed.Error()), "path", res.Path)
	}
	if res.Err != nil {
		_ = os.Remove(res.Path)
		return res
	}

	vertex.Log(domain.LogLevelInfo, "stored "+res.Path)
	return res
}

// documentURL resolves raw against baseURL. Relative references need a base URL.
func documentURL(baseURL, raw string) (*url.URL, error) {
	ref, err := url.Parse(raw)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid document url"), "url", raw)
	}
	if ref.IsAbs() {
		return ref, nil
	}
	if baseURL == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidSettings, "relative document url needs a base url"), "url", raw)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidSettings.Error()), "base_url", baseURL)
	}
	return base.ResolveReference(ref), nil
}

func documentFileName(doc domain.Document, target *url.URL) string {
	name := path.Base(target.Path)
	if name == "." || name == "/" || name == "" {
		name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(doc.Title)), " ", "-") + ".pdf"
	}
	return name
}

// fileNames tracks the file names used by one Documents run.
type fileNames map[string]struct{}

// claim returns name, or name with a numeric suffix before the extension when an earlier
// document of the run already took it.
func (n fileNames) claim(name string) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	candidate := name
	for i := 2; ; i++ {
		if _, taken := n[candidate]; !taken {
			n[candidate] = struct{}{}
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d%s", stem, i, ext)
	}
}
