package domain

import "time"

const (
	// DefaultImageCacheCapacity is the number of resolved image URLs kept in memory.
	DefaultImageCacheCapacity = 50
	// DefaultImageRetries is the attempt ceiling of the image loader.
	DefaultImageRetries = 3
	// DefaultImageTimeout bounds a single image load attempt.
	DefaultImageTimeout = 5 * time.Second
	// DefaultDisplayRetries is the retry ceiling of a displayed image before it falls back.
	DefaultDisplayRetries = 2
	// DefaultDisplayRetryDelay is multiplied by the retry number to get the display retry delay.
	DefaultDisplayRetryDelay = time.Second
	// DefaultFetchRetries is the attempt ceiling of the fetch helper.
	DefaultFetchRetries = 3
	// DefaultFetchTimeout bounds a single fetch attempt.
	DefaultFetchTimeout = 10 * time.Second
	// DefaultFetchBaseDelay is the first backoff delay of the fetch helper.
	DefaultFetchBaseDelay = time.Second
	// DefaultAutoPlayInterval is the carousel auto-advance period.
	DefaultAutoPlayInterval = 5 * time.Second
	// DefaultConcurrency is the number of images resolved in parallel by the probe command.
	DefaultConcurrency = 4
	// DefaultConnectivityAddress is dialed to decide whether the host is online.
	DefaultConnectivityAddress = "1.1.1.1:443"
	// DefaultConnectivityInterval is the period between connectivity checks.
	DefaultConnectivityInterval = 5 * time.Second
)

// Settings holds the tunables of the resilience layer and the carousel.
type Settings struct {
	ImageRetries         int
	ImageTimeout         time.Duration
	DisplayRetries       int
	DisplayRetryDelay    time.Duration
	FetchRetries         int
	FetchTimeout         time.Duration
	FetchBaseDelay       time.Duration
	CacheCapacity        int
	AutoPlayInterval     time.Duration
	Concurrency          int
	BaseURL              string
	StaticRoot           string
	ConnectivityAddress  string
	ConnectivityInterval time.Duration
	// Fallback is the placeholder shown for images that cannot be loaded.
	Fallback FallbackKind
}

// DefaultSettings returns the settings used when a site file does not override them.
func DefaultSettings() Settings {
	return Settings{
		ImageRetries:         DefaultImageRetries,
		ImageTimeout:         DefaultImageTimeout,
		DisplayRetries:       DefaultDisplayRetries,
		DisplayRetryDelay:    DefaultDisplayRetryDelay,
		FetchRetries:         DefaultFetchRetries,
		FetchTimeout:         DefaultFetchTimeout,
		FetchBaseDelay:       DefaultFetchBaseDelay,
		CacheCapacity:        DefaultImageCacheCapacity,
		AutoPlayInterval:     DefaultAutoPlayInterval,
		Concurrency:          DefaultConcurrency,
		ConnectivityAddress:  DefaultConnectivityAddress,
		ConnectivityInterval: DefaultConnectivityInterval,
		Fallback:             FallbackPlaceholder,
	}
}
