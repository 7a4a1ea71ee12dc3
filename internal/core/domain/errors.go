package domain

import "go.trai.ch/zerr"

var (
	// ErrNoDays is returned when an itinerary does not contain any day.
	ErrNoDays = zerr.New("itinerary has no days")

	// ErrInvalidDayNumber is returned when a day number is zero or negative.
	ErrInvalidDayNumber = zerr.New("day number must be positive")

	// ErrDuplicateDay is returned when two days share the same number.
	ErrDuplicateDay = zerr.New("duplicate day number")

	// ErrMissingTitle is returned when a day or the itinerary itself has no title.
	ErrMissingTitle = zerr.New("missing title")

	// ErrMissingDocumentURL is returned when a document has no URL to open.
	ErrMissingDocumentURL = zerr.New("document has no url")

	// ErrDayNotFound is returned when a requested day is not part of the itinerary.
	ErrDayNotFound = zerr.New("day not found")

	// ErrActivityNotFound is returned when a requested activity is not part of a day.
	ErrActivityNotFound = zerr.New("activity not found")

	// ErrConfigReadFailed is returned when the site file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read site file")

	// ErrConfigParseFailed is returned when the site file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse site file")

	// ErrInvalidSettings is returned when a settings value cannot be interpreted.
	ErrInvalidSettings = zerr.New("invalid settings")

	// ErrImageLoadFailed is returned when an image could not be loaded within the retry ceiling.
	ErrImageLoadFailed = zerr.New("failed to load image")

	// ErrImageUnavailable is returned by probes when an image resource is not loadable.
	ErrImageUnavailable = zerr.New("image unavailable")

	// ErrFetchExhausted is returned when every fetch attempt failed without a captured cause.
	ErrFetchExhausted = zerr.New("failed to fetch after retries")

	// ErrNoImages is returned when a carousel is built from an empty image list.
	ErrNoImages = zerr.New("carousel has no images")

	// ErrIndexOutOfRange is returned when jumping to a slide that does not exist.
	ErrIndexOutOfRange = zerr.New("slide index out of range")

	// ErrDocumentDownloadFailed is returned when a document could not be stored locally.
	ErrDocumentDownloadFailed = zerr.New("failed to download document")

	// ErrImagesFellBack is returned by a strict probe when at least one image fell back to
	// a placeholder.
	ErrImagesFellBack = zerr.New("images fell back to the placeholder")

	// ErrNotATerminal is returned when an interactive view is requested without a terminal.
	ErrNotATerminal = zerr.New("interactive mode requires a terminal")
)
