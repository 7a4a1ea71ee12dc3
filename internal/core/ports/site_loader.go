package ports

import "go.trai.ch/itinerary/internal/core/domain"

// SiteLoader defines the interface for loading the site file.
//
//go:generate go run go.uber.org/mock/mockgen -source=site_loader.go -destination=mocks/mock_site_loader.go -package=mocks
type SiteLoader interface {
	// Load reads the site file at path and returns the itinerary with its settings.
	Load(path string) (*domain.Site, error)
}
