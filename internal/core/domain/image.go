package domain

import (
	"strconv"
	"strings"
)

// FallbackKind selects one of the static placeholder images.
type FallbackKind string

const (
	// FallbackPlaceholder is the generic "image failed to load" placeholder.
	FallbackPlaceholder FallbackKind = "placeholder"
	// FallbackPyramid is a decorative placeholder used for landmark imagery.
	FallbackPyramid FallbackKind = "pyramid"
)

var fallbackImages = map[FallbackKind]string{
	FallbackPlaceholder: `data:image/svg+xml,%3Csvg xmlns="http://www.w3.org/2000/svg" width="400" height="300"%3E` +
		`%3Crect fill="%23333" width="400" height="300"/%3E` +
		`%3Ctext x="50%25" y="50%25" font-size="18" fill="%23999" text-anchor="middle" dy=".3em"%3E` +
		`Image unavailable%3C/text%3E%3C/svg%3E`,
	FallbackPyramid: `data:image/svg+xml,%3Csvg xmlns="http://www.w3.org/2000/svg" width="400" height="300"%3E` +
		`%3Crect fill="%23d4a574" width="400" height="300"/%3E` +
		`%3Cpolygon points="200,50 350,250 50,250" fill="%23a0826d"/%3E%3C/svg%3E`,
}

// Known reports whether k names one of the static placeholders.
func (k FallbackKind) Known() bool {
	_, ok := fallbackImages[k]
	return ok
}

// FallbackImage returns the data URI of the requested placeholder.
// Unknown kinds resolve to FallbackPlaceholder.
func FallbackImage(kind FallbackKind) string {
	if img, ok := fallbackImages[kind]; ok {
		return img
	}
	return fallbackImages[FallbackPlaceholder]
}

// IsFallbackImage reports whether src is one of the static placeholders.
func IsFallbackImage(src string) bool {
	for _, img := range fallbackImages {
		if src == img {
			return true
		}
	}
	return false
}

// CacheBustURL returns a variant of src that bypasses intermediate caches for the given retry.
func CacheBustURL(src string, retry int) string {
	sep := "?"
	if strings.Contains(src, "?") {
		sep = "&"
	}
	return src + sep + "retry=" + strconv.Itoa(retry)
}

// Direction is the travel direction of the last carousel transition.
type Direction int

const (
	// Backward means the previous slide came into view.
	Backward Direction = -1
	// Neutral is the direction before any transition happened.
	Neutral Direction = 0
	// Forward means the next slide came into view.
	Forward Direction = 1
)

// String returns a short label for the direction.
func (d Direction) String() string {
	switch d {
	case Backward:
		return "backward"
	case Forward:
		return "forward"
	default:
		return "neutral"
	}
}

// ResolutionStatus is the outcome of resolving an image for display.
type ResolutionStatus string

const (
	// StatusLoaded means the original URL loaded.
	StatusLoaded ResolutionStatus = "loaded"
	// StatusCached means the URL was already resolved earlier in the process.
	StatusCached ResolutionStatus = "cached"
	// StatusFallback means the placeholder is shown instead of the original.
	StatusFallback ResolutionStatus = "fallback"
)

// Resolution is the display outcome for a single image.
type Resolution struct {
	Source   string
	Resolved string
	Status   ResolutionStatus
	Err      error
}
