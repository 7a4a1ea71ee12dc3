package probe_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/itinerary/internal/adapters/probe"
	"go.trai.ch/itinerary/internal/core/domain"
	"go.trai.ch/zerr"
)

func newImageServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/images/ok.jpg", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("\xff\xd8\xff\xe0 not really a jpeg"))
	})
	mux.HandleFunc("/images/page.jpg", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html></html>"))
	})
	mux.HandleFunc("/images/gone.jpg", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestProber_HTTP(t *testing.T) {
	t.Parallel()

	srv := newImageServer(t)
	p, err := probe.New(srv.Client(), srv.URL, "")
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, p.Probe(ctx, srv.URL+"/images/ok.jpg"))
	require.NoError(t, p.Probe(ctx, "/images/ok.jpg"), "root-relative paths resolve against the base url")
	require.NoError(t, p.Probe(ctx, "/images/ok.jpg?retry=1"))

	err = p.Probe(ctx, "/images/gone.jpg")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrImageUnavailable.Error())
	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, http.StatusNotFound, zErr.Metadata()["status"])

	err = p.Probe(ctx, "/images/page.jpg")
	assert.ErrorContains(t, err, domain.ErrImageUnavailable.Error())
}

func TestProber_RelativeWithoutBase(t *testing.T) {
	t.Parallel()

	p, err := probe.New(http.DefaultClient, "", "")
	require.NoError(t, err)

	err = p.Probe(context.Background(), "/images/a.jpg")
	assert.ErrorContains(t, err, domain.ErrImageUnavailable.Error())
}

func TestProber_DataURI(t *testing.T) {
	t.Parallel()

	p, err := probe.New(http.DefaultClient, "", "")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, p.Probe(ctx, domain.FallbackImage(domain.FallbackPlaceholder)))
	require.NoError(t, p.Probe(ctx, "data:image/png;base64,iVBORw0KGgo="))
	require.Error(t, p.Probe(ctx, "data:text/plain,hello"))
	require.Error(t, p.Probe(ctx, "data:image/png"))
}

func TestProber_StaticRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "images"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "images", "a.jpg"), []byte("jpeg"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "images", "empty.jpg"), nil, 0o600))

	p, err := probe.New(http.DefaultClient, "", root)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, p.Probe(ctx, "/images/a.jpg"))
	require.NoError(t, p.Probe(ctx, "/images/a.jpg?retry=2"))
	assert.Error(t, p.Probe(ctx, "/images/empty.jpg"))
	assert.Error(t, p.Probe(ctx, "/images/missing.jpg"))
	assert.Error(t, p.Probe(ctx, "/images"))
}

func TestProber_CanceledContext(t *testing.T) {
	t.Parallel()

	srv := newImageServer(t)
	p, err := probe.New(srv.Client(), srv.URL, "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, p.Probe(ctx, "/images/ok.jpg"), context.Canceled)
}

func TestNew_InvalidBaseURL(t *testing.T) {
	t.Parallel()

	_, err := probe.New(http.DefaultClient, "://bad", "")
	assert.ErrorContains(t, err, domain.ErrInvalidSettings.Error())
}

func TestProber_StaticRootContainment(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	root := filepath.Join(dir, "public")
	require.NoError(t, os.MkdirAll(root, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "secret.jpg"), []byte("jpeg"), 0o600))

	srv := newImageServer(t)
	p, err := probe.New(srv.Client(), srv.URL, root)
	require.NoError(t, err)
	ctx := context.Background()

	err = p.Probe(ctx, "/../secret.jpg")
	require.Error(t, err)
	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "outside static root", zErr.Metadata()["reason"])

	// Protocol-relative sources are fetched, not looked up under the root.
	host := strings.TrimPrefix(srv.URL, "http://")
	require.NoError(t, p.Probe(ctx, "//"+host+"/images/ok.jpg"))
}
