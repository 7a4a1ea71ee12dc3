package config

// SiteFile represents the structure of the itinerary.yaml site file.
type SiteFile struct {
	Title     string        `yaml:"title"`
	Subtitle  string        `yaml:"subtitle"`
	Days      []DayDTO      `yaml:"days"`
	Vehicle   *VehicleDTO   `yaml:"vehicle"`
	Packing   []PackingDTO  `yaml:"packing"`
	Documents []DocumentDTO `yaml:"documents"`
	Settings  SettingsDTO   `yaml:"settings"`
}

// DayDTO represents a day of the trip.
type DayDTO struct {
	Day         int           `yaml:"day"`
	Date        string        `yaml:"date"`
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Activities  []ActivityDTO `yaml:"activities"`
	Hotel       *HotelDTO     `yaml:"hotel"`
	Flights     []FlightDTO   `yaml:"flights"`
	Transport   string        `yaml:"transport"`
	Images      []string      `yaml:"images"`
}

// ActivityDTO represents an activity within a day.
type ActivityDTO struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Image       string   `yaml:"image"`
	Images      []string `yaml:"images"`
}

// HotelDTO represents the hotel of a day.
type HotelDTO struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

// EndpointDTO represents a flight departure or arrival.
type EndpointDTO struct {
	City string `yaml:"city"`
	Code string `yaml:"code"`
	Time string `yaml:"time"`
	Date string `yaml:"date"`
}

// FlightDTO represents a flight leg.
type FlightDTO struct {
	Number    string      `yaml:"number"`
	Airline   string      `yaml:"airline"`
	Departure EndpointDTO `yaml:"departure"`
	Arrival   EndpointDTO `yaml:"arrival"`
	Duration  string      `yaml:"duration"`
	Aircraft  string      `yaml:"aircraft"`
}

// VehicleDTO represents the ground transport section.
type VehicleDTO struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Features    []string `yaml:"features"`
	Image       string   `yaml:"image"`
}

// PackingDTO represents a packing checklist category.
type PackingDTO struct {
	Category string   `yaml:"category"`
	Items    []string `yaml:"items"`
}

// DocumentDTO represents a downloadable guide.
type DocumentDTO struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
}

// SettingsDTO holds optional overrides of the runtime settings.
// Durations use Go syntax ("5s", "250ms").
type SettingsDTO struct {
	ImageRetries         *int   `yaml:"imageRetries"`
	ImageTimeout         string `yaml:"imageTimeout"`
	DisplayRetries       *int   `yaml:"displayRetries"`
	DisplayRetryDelay    string `yaml:"displayRetryDelay"`
	FetchRetries         *int   `yaml:"fetchRetries"`
	FetchTimeout         string `yaml:"fetchTimeout"`
	FetchBaseDelay       string `yaml:"fetchBaseDelay"`
	CacheCapacity        *int   `yaml:"cacheCapacity"`
	AutoPlayInterval     string `yaml:"autoPlayInterval"`
	Concurrency          *int   `yaml:"concurrency"`
	BaseURL              string `yaml:"baseURL"`
	StaticRoot           string `yaml:"staticRoot"`
	ConnectivityAddress  string `yaml:"connectivityAddress"`
	ConnectivityInterval string `yaml:"connectivityInterval"`
	Fallback             string `yaml:"fallback"`
}
