// Package config provides the site file loader.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/itinerary/internal/core/domain"
	"go.trai.ch/itinerary/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the site file looked up when no path is given.
const DefaultFileName = "itinerary.yaml"

var _ ports.SiteLoader = (*Loader)(nil)

// Loader implements ports.SiteLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// ResolvePath returns the site file path for path. An empty path is DefaultFileName and a
// directory resolves to DefaultFileName inside it.
func ResolvePath(path string) string {
	if path == "" {
		return DefaultFileName
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, DefaultFileName)
	}
	return path
}

// Load reads the site file at path, resolved with ResolvePath.
func (l *Loader) Load(path string) (*domain.Site, error) {
	path = ResolvePath(path)

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	site, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	if l.Logger != nil && len(site.Itinerary.Documents) == 0 {
		l.Logger.Warn("site file declares no documents: " + path)
	}
	return site, nil
}

// Parse decodes and validates a site file.
func Parse(data []byte) (*domain.Site, error) {
	var file SiteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	settings, err := file.Settings.toDomain()
	if err != nil {
		return nil, err
	}

	itinerary := file.toDomain()
	if err := itinerary.Validate(); err != nil {
		return nil, err
	}

	return &domain.Site{
		Itinerary:   itinerary,
		Settings:    settings,
		Fingerprint: Fingerprint(data),
	}, nil
}

// Fingerprint returns the XXHash of the raw site file as 16 hex characters.
func Fingerprint(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

func (f *SiteFile) toDomain() *domain.Itinerary {
	it := &domain.Itinerary{
		Title:    strings.TrimSpace(f.Title),
		Subtitle: f.Subtitle,
		Days:     make([]domain.Day, 0, len(f.Days)),
	}

	for _, d := range f.Days {
		day := domain.Day{
			Number:      d.Day,
			Date:        d.Date,
			Title:       strings.TrimSpace(d.Title),
			Description: d.Description,
			Transport:   d.Transport,
			Images:      d.Images,
		}
		for _, a := range d.Activities {
			day.Activities = append(day.Activities, domain.Activity(a))
		}
		if d.Hotel != nil {
			hotel := domain.Hotel(*d.Hotel)
			day.Hotel = &hotel
		}
		for _, fl := range d.Flights {
			day.Flights = append(day.Flights, domain.Flight{
				Number:    fl.Number,
				Airline:   fl.Airline,
				Departure: domain.Endpoint(fl.Departure),
				Arrival:   domain.Endpoint(fl.Arrival),
				Duration:  fl.Duration,
				Aircraft:  fl.Aircraft,
			})
		}
		it.Days = append(it.Days, day)
	}

	if f.Vehicle != nil {
		vehicle := domain.Vehicle(*f.Vehicle)
		it.Vehicle = &vehicle
	}
	for _, p := range f.Packing {
		it.Packing = append(it.Packing, domain.PackingCategory{Name: p.Category, Items: p.Items})
	}
	for _, doc := range f.Documents {
		it.Documents = append(it.Documents, domain.Document(doc))
	}
	return it
}

func (s SettingsDTO) toDomain() (domain.Settings, error) {
	out := domain.DefaultSettings()

	ints := []struct {
		name string
		src  *int
		dst  *int
	}{
		{"imageRetries", s.ImageRetries, &out.ImageRetries},
		{"displayRetries", s.DisplayRetries, &out.DisplayRetries},
		{"fetchRetries", s.FetchRetries, &out.FetchRetries},
		{"cacheCapacity", s.CacheCapacity, &out.CacheCapacity},
		{"concurrency", s.Concurrency, &out.Concurrency},
	}
	for _, field := range ints {
		if field.src == nil {
			continue
		}
		if *field.src < 1 {
			return out, zerr.With(zerr.With(domain.ErrInvalidSettings, "field", field.name), "value", *field.src)
		}
		*field.dst = *field.src
	}

	durations := []struct {
		name string
		src  string
		dst  *time.Duration
	}{
		{"imageTimeout", s.ImageTimeout, &out.ImageTimeout},
		{"displayRetryDelay", s.DisplayRetryDelay, &out.DisplayRetryDelay},
		{"fetchTimeout", s.FetchTimeout, &out.FetchTimeout},
		{"fetchBaseDelay", s.FetchBaseDelay, &out.FetchBaseDelay},
		{"autoPlayInterval", s.AutoPlayInterval, &out.AutoPlayInterval},
		{"connectivityInterval", s.ConnectivityInterval, &out.ConnectivityInterval},
	}
	for _, field := range durations {
		if field.src == "" {
			continue
		}
		d, err := time.ParseDuration(field.src)
		if err != nil || d <= 0 {
			return out, zerr.With(zerr.With(domain.ErrInvalidSettings, "field", field.name), "value", field.src)
		}
		*field.dst = d
	}

	if s.BaseURL != "" {
		out.BaseURL = s.BaseURL
	}
	if s.StaticRoot != "" {
		out.StaticRoot = s.StaticRoot
	}
	if s.ConnectivityAddress != "" {
		out.ConnectivityAddress = s.ConnectivityAddress
	}
	if s.Fallback != "" {
		kind := domain.FallbackKind(s.Fallback)
		if !kind.Known() {
			return out, zerr.With(zerr.With(domain.ErrInvalidSettings, "field", "fallback"), "value", s.Fallback)
		}
		out.Fallback = kind
	}
	return out, nil
}
