package ports

import "context"

// ImageProber performs a single attempt at loading an image resource.
//
// A nil error is the equivalent of a load event; any error is an error event. Implementations
// must abandon the attempt when ctx is done.
//
//go:generate go run go.uber.org/mock/mockgen -source=image_prober.go -destination=mocks/mock_image_prober.go -package=mocks
type ImageProber interface {
	Probe(ctx context.Context, src string) error
}
