package ports

// ImageCache maps a source image URL to the URL that should be displayed for it.
//
// Implementations are bounded; eviction is driven by insertion order only, so Get and Has
// must not have side effects.
//
//go:generate go run go.uber.org/mock/mockgen -source=image_cache.go -destination=mocks/mock_image_cache.go -package=mocks
type ImageCache interface {
	// Get returns the resolved URL for key and whether it was present.
	Get(key string) (string, bool)
	// Set stores the resolved URL for key, evicting the oldest entry when full.
	Set(key, value string)
	// Has reports whether key is present.
	Has(key string) bool
	// Clear removes every entry.
	Clear()
	// Len returns the number of entries.
	Len() int
}
