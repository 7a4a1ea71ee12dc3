package app_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/itinerary/internal/app"
	"go.trai.ch/itinerary/internal/core/domain"
	"go.trai.ch/itinerary/internal/core/ports"
	"go.trai.ch/itinerary/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const sitePath = "itinerary.yaml"

type fixture struct {
	loader    *mocks.MockSiteLoader
	logger    *mocks.MockLogger
	client    *mocks.MockHTTPDoer
	telemetry *mocks.MockTelemetry
	vertex    *mocks.MockVertex
	watcher   *mocks.MockFileWatcher
	app       *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader:    mocks.NewMockSiteLoader(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		client:    mocks.NewMockHTTPDoer(ctrl),
		telemetry: mocks.NewMockTelemetry(ctrl),
		vertex:    mocks.NewMockVertex(ctrl),
		watcher:   mocks.NewMockFileWatcher(ctrl),
	}

	f.telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, f.vertex
		}).AnyTimes()
	f.vertex.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()
	f.vertex.EXPECT().Complete(gomock.Any()).AnyTimes()
	f.vertex.EXPECT().Cached().AnyTimes()

	f.app = app.New(f.loader, f.logger, f.client, f.telemetry, f.watcher)
	return f
}

func newSite(settings domain.Settings) *domain.Site {
	return &domain.Site{
		Itinerary: &domain.Itinerary{
			Title: "Egypt",
			Days: []domain.Day{
				{
					Number: 1,
					Title:  "Cairo",
					Images: []string{"/images/a.jpg", "/images/b.jpg", "/images/c.jpg"},
					Flights: []domain.Flight{
						{Number: "EK 924"},
					},
				},
				{
					Number: 2,
					Title:  "Giza",
					Images: []string{"/images/giza.jpg"},
				},
			},
			Documents: []domain.Document{
				{Title: "Guide", URL: "/pdfs/guide.pdf"},
			},
		},
		Settings:    settings,
		Fingerprint: "0123456789abcdef",
	}
}

func fastSettings() domain.Settings {
	s := domain.DefaultSettings()
	s.ImageRetries = 1
	s.FetchRetries = 1
	s.FetchBaseDelay = time.Millisecond
	s.DisplayRetries = 1
	s.DisplayRetryDelay = time.Second
	return s
}

func TestApp_Validate(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(sitePath).Return(newSite(fastSettings()), nil)

	summary, err := f.app.Validate(context.Background(), sitePath)
	require.NoError(t, err)

	assert.Equal(t, "Egypt", summary.Itinerary.Title)
	assert.Equal(t, "0123456789abcdef", summary.Fingerprint)
	assert.Equal(t, 2, summary.Days)
	assert.Equal(t, 4, summary.Images)
	assert.Equal(t, 1, summary.Documents)
	assert.Equal(t, 1, summary.Flights)
}

func TestApp_Validate_LoadError(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(sitePath).Return(nil, domain.ErrConfigReadFailed)

	_, err := f.app.Validate(context.Background(), sitePath)
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to load site")
	assert.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}

func TestApp_WatchSite(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(sitePath).Return(newSite(fastSettings()), nil).Times(3)
	f.logger.EXPECT().Info(gomock.Any())
	f.watcher.EXPECT().Watch(gomock.Any(), sitePath, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, onChange func()) error {
			onChange()
			onChange()
			return nil
		})

	var summaries []*app.Summary
	err := f.app.WatchSite(context.Background(), sitePath, func(s *app.Summary, err error) {
		require.NoError(t, err)
		summaries = append(summaries, s)
	})
	require.NoError(t, err)
	assert.Len(t, summaries, 3)
}

func TestApp_Probe(t *testing.T) {
	f := newFixture(t)
	prober := mocks.NewMockImageProber(gomock.NewController(t))
	f.app.WithProber(prober)

	f.loader.EXPECT().Load(sitePath).Return(newSite(fastSettings()), nil).Times(2)
	prober.EXPECT().Probe(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, src string) error {
		if src == "/images/b.jpg" {
			return domain.ErrImageUnavailable
		}
		return nil
	}).AnyTimes()
	f.logger.EXPECT().Warn("1 of 4 images fell back to the placeholder").Times(2)

	report, err := f.app.Probe(context.Background(), sitePath, app.ProbeOptions{Concurrency: 2})
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "0123456789abcdef", report.Fingerprint)
	require.Len(t, report.Results, 4)
	assert.Equal(t, "/images/a.jpg", report.Results[0].Source)
	assert.Equal(t, domain.StatusLoaded, report.Results[0].Status)
	assert.Equal(t, "/images/a.jpg", report.Results[0].Resolved)

	assert.Equal(t, domain.StatusFallback, report.Results[1].Status)
	assert.Equal(t, domain.FallbackImage(domain.FallbackPlaceholder), report.Results[1].Resolved)
	require.Error(t, report.Results[1].Err)
	assert.ErrorContains(t, report.Results[1].Err, "failed to load image after 1 attempts")
	assert.Equal(t, 1, report.Fallbacks())

	// The cache is shared for the lifetime of the App.
	again, err := f.app.Probe(context.Background(), sitePath, app.ProbeOptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCached, again.Results[0].Status)
	assert.Equal(t, domain.StatusFallback, again.Results[1].Status)
	assert.NotEqual(t, report.RunID, again.RunID)
}

func TestApp_Probe_Display(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		prober := mocks.NewMockImageProber(gomock.NewController(t))
		f.app.WithProber(prober)

		site := newSite(fastSettings())
		site.Itinerary.Days = site.Itinerary.Days[1:]
		f.loader.EXPECT().Load(sitePath).Return(site, nil)

		gomock.InOrder(
			prober.EXPECT().Probe(gomock.Any(), "/images/giza.jpg").Return(errors.New("boom")),
			prober.EXPECT().Probe(gomock.Any(), "/images/giza.jpg?retry=1").Return(errors.New("boom")),
		)
		f.logger.EXPECT().Warn(gomock.Any())

		start := time.Now()
		report, err := f.app.Probe(context.Background(), sitePath, app.ProbeOptions{Display: true})
		require.NoError(t, err)

		require.Len(t, report.Results, 1)
		res := report.Results[0]
		assert.Equal(t, domain.StatusFallback, res.Status)
		assert.True(t, domain.IsFallbackImage(res.Resolved))
		assert.ErrorContains(t, res.Err, domain.ErrImageLoadFailed.Error())
		assert.Equal(t, time.Second, time.Since(start))
	})
}

func TestApp_Probe_FallbackKind(t *testing.T) {
	f := newFixture(t)
	prober := mocks.NewMockImageProber(gomock.NewController(t))
	f.app.WithProber(prober)

	settings := fastSettings()
	settings.Fallback = domain.FallbackPyramid
	f.loader.EXPECT().Load(sitePath).Return(newSite(settings), nil)
	prober.EXPECT().Probe(gomock.Any(), gomock.Any()).Return(domain.ErrImageUnavailable).AnyTimes()
	f.logger.EXPECT().Warn(gomock.Any())

	report, err := f.app.Probe(context.Background(), sitePath, app.ProbeOptions{})
	require.NoError(t, err)
	require.Len(t, report.Results, 4)
	for _, res := range report.Results {
		assert.Equal(t, domain.StatusFallback, res.Status)
		assert.Equal(t, domain.FallbackImage(domain.FallbackPyramid), res.Resolved)
	}
}

func TestApp_Probe_Canceled(t *testing.T) {
	f := newFixture(t)
	prober := mocks.NewMockImageProber(gomock.NewController(t))
	f.app.WithProber(prober)
	f.loader.EXPECT().Load(sitePath).Return(newSite(fastSettings()), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.app.Probe(ctx, sitePath, app.ProbeOptions{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestApp_Documents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pdfs/guide.pdf" {
			_, _ = w.Write([]byte("%PDF-1.4 guide"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	ctrl := gomock.NewController(t)
	telemetry := mocks.NewMockTelemetry(ctrl)
	vertex := mocks.NewMockVertex(ctrl)
	telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, vertex
		}).AnyTimes()
	vertex.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()
	vertex.EXPECT().Complete(gomock.Any()).AnyTimes()

	loader := mocks.NewMockSiteLoader(ctrl)
	settings := fastSettings()
	settings.BaseURL = srv.URL
	site := newSite(settings)
	site.Itinerary.Documents = append(site.Itinerary.Documents, domain.Document{
		Title: "Visa", URL: "/pdfs/visa.pdf",
	})
	loader.EXPECT().Load(sitePath).Return(site, nil)

	a := app.New(loader, mocks.NewMockLogger(ctrl), srv.Client(), telemetry, mocks.NewMockFileWatcher(ctrl))

	outDir := filepath.Join(t.TempDir(), "docs")
	results, err := a.Documents(context.Background(), sitePath, outDir)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrDocumentDownloadFailed.Error())

	require.Len(t, results, 2)
	require.NoError(t, results[0].Err)
	assert.Equal(t, filepath.Join(outDir, "guide.pdf"), results[0].Path)
	assert.Equal(t, int64(len("%PDF-1.4 guide")), results[0].Bytes)
	data, err := os.ReadFile(results[0].Path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 guide", string(data))

	require.Error(t, results[1].Err)
	assert.NoFileExists(t, results[1].Path)
}

func TestApp_Documents_SameFileName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/en/guide.pdf", "/fr/guide.pdf":
			_, _ = w.Write([]byte("%PDF " + r.URL.Path))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctrl := gomock.NewController(t)
	telemetry := mocks.NewMockTelemetry(ctrl)
	vertex := mocks.NewMockVertex(ctrl)
	telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, vertex
		}).AnyTimes()
	vertex.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()
	vertex.EXPECT().Complete(gomock.Any()).AnyTimes()

	loader := mocks.NewMockSiteLoader(ctrl)
	settings := fastSettings()
	settings.BaseURL = srv.URL
	site := newSite(settings)
	site.Itinerary.Documents = []domain.Document{
		{Title: "Guide", URL: "/en/guide.pdf"},
		{Title: "Guide (zh)", URL: "/zh/guide.pdf"},
		{Title: "Guide (fr)", URL: "/fr/guide.pdf"},
	}
	loader.EXPECT().Load(sitePath).Return(site, nil)

	a := app.New(loader, mocks.NewMockLogger(ctrl), srv.Client(), telemetry, mocks.NewMockFileWatcher(ctrl))

	outDir := t.TempDir()
	results, err := a.Documents(context.Background(), sitePath, outDir)
	require.Error(t, err)
	require.Len(t, results, 3)

	require.NoError(t, results[0].Err)
	assert.Equal(t, filepath.Join(outDir, "guide.pdf"), results[0].Path)
	data, err := os.ReadFile(results[0].Path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF /en/guide.pdf", string(data), "a failed download must not remove an earlier file")

	require.Error(t, results[1].Err)
	assert.Equal(t, filepath.Join(outDir, "guide-2.pdf"), results[1].Path)
	assert.NoFileExists(t, results[1].Path)

	require.NoError(t, results[2].Err)
	assert.Equal(t, filepath.Join(outDir, "guide-3.pdf"), results[2].Path)
	data, err = os.ReadFile(results[2].Path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF /fr/guide.pdf", string(data))
}

func TestApp_Documents_RelativeWithoutBaseURL(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(sitePath).Return(newSite(fastSettings()), nil)

	results, err := f.app.Documents(context.Background(), sitePath, t.TempDir())
	require.Error(t, err)
	assert.ErrorContains(t, err, "relative document url needs a base url")
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Path)
}

func TestApp_PlayCarousel_Manual(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		prober := mocks.NewMockImageProber(gomock.NewController(t))
		prober.EXPECT().Probe(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		f.app.WithProber(prober)
		f.loader.EXPECT().Load(sitePath).Return(newSite(fastSettings()), nil)

		var slides []app.Slide
		err := f.app.PlayCarousel(context.Background(), sitePath, 1, app.CarouselOptions{}, func(s app.Slide) {
			slides = append(slides, s)
		})
		require.NoError(t, err)

		require.Len(t, slides, 3)
		for i, s := range slides {
			assert.Equal(t, 1, s.Day)
			assert.Equal(t, "Cairo", s.Title)
			assert.Equal(t, i, s.State.Index)
		}
		assert.Equal(t, "/images/c.jpg", slides[2].Image)
		assert.Equal(t, domain.Neutral, slides[0].State.Direction)
		assert.Equal(t, domain.Forward, slides[1].State.Direction)
	})
}

func TestApp_PlayCarousel_AutoPlay(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		prober := mocks.NewMockImageProber(gomock.NewController(t))
		prober.EXPECT().Probe(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		f.app.WithProber(prober)
		f.loader.EXPECT().Load(sitePath).Return(newSite(fastSettings()), nil)

		start := time.Now()
		var indexes []int
		err := f.app.PlayCarousel(context.Background(), sitePath, 1, app.CarouselOptions{
			AutoPlay: true,
			Interval: 2 * time.Second,
			Steps:    4,
		}, func(s app.Slide) {
			indexes = append(indexes, s.State.Index)
		})
		require.NoError(t, err)

		assert.Equal(t, []int{0, 1, 2, 0, 1}, indexes)
		assert.Equal(t, 8*time.Second, time.Since(start))
	})
}

func TestApp_PlayCarousel_SingleImage(t *testing.T) {
	f := newFixture(t)
	prober := mocks.NewMockImageProber(gomock.NewController(t))
	f.app.WithProber(prober)
	f.loader.EXPECT().Load(sitePath).Return(newSite(fastSettings()), nil)

	var slides []app.Slide
	err := f.app.PlayCarousel(context.Background(), sitePath, 2, app.CarouselOptions{AutoPlay: true}, func(s app.Slide) {
		slides = append(slides, s)
	})
	require.NoError(t, err)
	require.Len(t, slides, 1)
	assert.Equal(t, "/images/giza.jpg", slides[0].Image)
}

func TestApp_BrowseCarousel(t *testing.T) {
	f := newFixture(t)
	prober := mocks.NewMockImageProber(gomock.NewController(t))
	prober.EXPECT().Probe(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.app.WithProber(prober).
		WithTeaOptions(
			tea.WithInput(strings.NewReader("q")),
			tea.WithOutput(io.Discard),
			tea.WithoutSignalHandler(),
			tea.WithoutRenderer(),
		)
	f.loader.EXPECT().Load(sitePath).Return(newSite(fastSettings()), nil)

	err := f.app.BrowseCarousel(context.Background(), sitePath, 1, app.CarouselOptions{})
	require.NoError(t, err)
}

func TestApp_OpenCarousel_UnknownDay(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(sitePath).Return(newSite(fastSettings()), nil)

	_, _, _, err := f.app.OpenCarousel(sitePath, 7, app.CarouselOptions{})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrDayNotFound.Error())
}

func TestApp_PlayCarousel_Activity(t *testing.T) {
	site := newSite(fastSettings())
	site.Itinerary.Days[0].Activities = []domain.Activity{
		{Name: "Egyptian Museum", Image: "/images/museum.jpg", Images: []string{"/images/mask.jpg"}},
		{Name: "Khan el-Khalili", Image: "/images/bazaar.jpg"},
	}

	play := func(t *testing.T, activity string) ([]app.Slide, error) {
		t.Helper()
		f := newFixture(t)
		prober := mocks.NewMockImageProber(gomock.NewController(t))
		prober.EXPECT().Probe(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		f.app.WithProber(prober)
		f.loader.EXPECT().Load(sitePath).Return(site, nil)

		var slides []app.Slide
		err := f.app.PlayCarousel(context.Background(), sitePath, 1, app.CarouselOptions{Activity: activity},
			func(s app.Slide) {
				slides = append(slides, s)
			})
		return slides, err
	}

	t.Run("by position", func(t *testing.T) {
		slides, err := play(t, "1")
		require.NoError(t, err)
		require.Len(t, slides, 2)
		assert.Equal(t, "Egyptian Museum", slides[0].Title)
		assert.Equal(t, "/images/museum.jpg", slides[0].Image)
		assert.Equal(t, "/images/mask.jpg", slides[1].Image)
		assert.Equal(t, 2, slides[1].State.Length)
	})

	t.Run("single image by name", func(t *testing.T) {
		slides, err := play(t, "khan el-khalili")
		require.NoError(t, err)
		require.Len(t, slides, 1)
		assert.Equal(t, "Khan el-Khalili", slides[0].Title)
		assert.Equal(t, "/images/bazaar.jpg", slides[0].Image)
	})

	t.Run("unknown activity", func(t *testing.T) {
		_, err := play(t, "Sphinx")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrActivityNotFound.Error())
	})
}

func TestApp_Watch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		probe := mocks.NewMockConnectivityProbe(gomock.NewController(t))
		f.app.WithConnectivityProbe(probe)

		settings := fastSettings()
		settings.ConnectivityInterval = 5 * time.Second
		f.loader.EXPECT().Load(sitePath).Return(newSite(settings), nil)
		f.logger.EXPECT().Info(gomock.Any())

		var mu sync.Mutex
		readings := []bool{true, true, false, true}
		probe.EXPECT().Online(gomock.Any()).DoAndReturn(func(context.Context) bool {
			mu.Lock()
			defer mu.Unlock()
			if len(readings) == 0 {
				return true
			}
			online := readings[0]
			readings = readings[1:]
			return online
		}).AnyTimes()

		ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
		defer cancel()

		var changes []bool
		err := f.app.Watch(ctx, sitePath, app.WatchOptions{}, func(online bool) {
			changes = append(changes, online)
		})
		require.NoError(t, err)
		assert.Equal(t, []bool{true, false, true}, changes)
	})
}

func TestApp_Close(t *testing.T) {
	f := newFixture(t)
	f.telemetry.EXPECT().Close().Return(nil)
	require.NoError(t, f.app.Close())
}
