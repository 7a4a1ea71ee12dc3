// Package domain contains the itinerary records and the value types shared by the image and
// carousel components.
package domain

import (
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Site is the result of loading a site file: the itinerary content, the runtime settings and a
// fingerprint of the raw file.
type Site struct {
	Itinerary   *Itinerary
	Settings    Settings
	Fingerprint string
}

// Itinerary is the authored content of the page.
type Itinerary struct {
	Title     string
	Subtitle  string
	Days      []Day
	Vehicle   *Vehicle
	Packing   []PackingCategory
	Documents []Document
}

// Day is a single day of the trip.
type Day struct {
	Number      int
	Date        string
	Title       string
	Description string
	Activities  []Activity
	Hotel       *Hotel
	Flights     []Flight
	Transport   string
	Images      []string
}

// Activity is a named stop within a day.
type Activity struct {
	Name        string
	Description string
	Image       string
	Images      []string
}

// Hotel is the accommodation for a night.
type Hotel struct {
	Name        string
	Description string
	Image       string
}

// Endpoint is one side of a flight. All fields are free text.
type Endpoint struct {
	City string
	Code string
	Time string
	Date string
}

// Flight is a single flight leg. No time arithmetic is performed on its fields.
type Flight struct {
	Number    string
	Airline   string
	Departure Endpoint
	Arrival   Endpoint
	Duration  string
	Aircraft  string
}

// Vehicle describes the ground transport used for the trip.
type Vehicle struct {
	Name        string
	Description string
	Features    []string
	Image       string
}

// PackingCategory groups checklist items.
type PackingCategory struct {
	Name  string
	Items []string
}

// Document is a downloadable guide linked from the page.
type Document struct {
	Title       string
	Description string
	URL         string
}

// AllImages returns the single image followed by the image list, without duplicates.
func (a Activity) AllImages() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(a.Images)+1)
	out = appendUnique(out, seen, a.Image)
	for _, img := range a.Images {
		out = appendUnique(out, seen, img)
	}
	return out
}

// Gallery returns the images shown in the day's carousel: the day images first, then every
// activity image.
func (d Day) Gallery() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(d.Images))
	for _, img := range d.Images {
		out = appendUnique(out, seen, img)
	}
	for _, a := range d.Activities {
		for _, img := range a.AllImages() {
			out = appendUnique(out, seen, img)
		}
	}
	return out
}

// Activity returns the activity selected by sel: a 1-based position within the day, or
// otherwise a name compared case-insensitively.
func (d Day) Activity(sel string) (*Activity, error) {
	if n, err := strconv.Atoi(sel); err == nil {
		if n >= 1 && n <= len(d.Activities) {
			return &d.Activities[n-1], nil
		}
	} else {
		for i := range d.Activities {
			if strings.EqualFold(strings.TrimSpace(d.Activities[i].Name), strings.TrimSpace(sel)) {
				return &d.Activities[i], nil
			}
		}
	}
	return nil, zerr.With(zerr.With(ErrActivityNotFound, "day", d.Number), "activity", sel)
}

// ImageURLs returns every image referenced by the itinerary in first-seen order.
func (it *Itinerary) ImageURLs() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, d := range it.Days {
		for _, img := range d.Gallery() {
			out = appendUnique(out, seen, img)
		}
		if d.Hotel != nil {
			out = appendUnique(out, seen, d.Hotel.Image)
		}
	}
	if it.Vehicle != nil {
		out = appendUnique(out, seen, it.Vehicle.Image)
	}
	return out
}

// Day returns the day with the given number.
func (it *Itinerary) Day(number int) (*Day, error) {
	for i := range it.Days {
		if it.Days[i].Number == number {
			return &it.Days[i], nil
		}
	}
	return nil, zerr.With(ErrDayNotFound, "day", number)
}

// Validate checks the presence of the fields the page cannot render without.
func (it *Itinerary) Validate() error {
	if it.Title == "" {
		return zerr.With(ErrMissingTitle, "field", "title")
	}
	if len(it.Days) == 0 {
		return ErrNoDays
	}

	seen := make(map[int]struct{}, len(it.Days))
	for _, d := range it.Days {
		if d.Number <= 0 {
			return zerr.With(ErrInvalidDayNumber, "day", d.Number)
		}
		if _, dup := seen[d.Number]; dup {
			return zerr.With(ErrDuplicateDay, "day", d.Number)
		}
		seen[d.Number] = struct{}{}
		if d.Title == "" {
			return zerr.With(ErrMissingTitle, "field", "days["+strconv.Itoa(d.Number)+"].title")
		}
	}

	for _, doc := range it.Documents {
		if doc.URL == "" {
			return zerr.With(ErrMissingDocumentURL, "document", doc.Title)
		}
	}
	return nil
}

func appendUnique(out []string, seen map[string]struct{}, s string) []string {
	if s == "" {
		return out
	}
	if _, ok := seen[s]; ok {
		return out
	}
	seen[s] = struct{}{}
	return append(out, s)
}
