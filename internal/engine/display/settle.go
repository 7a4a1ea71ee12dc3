package display

import (
	"context"

	"go.trai.ch/itinerary/internal/core/ports"
)

// Settle renders img with prober until it reaches a terminal state and returns the source
// to show. Cancelling ctx stops any pending retry.
func Settle(ctx context.Context, img *Image, prober ports.ImageProber) (string, error) {
	for {
		if img.Status() != Loading {
			return img.Current(), nil
		}

		if err := prober.Probe(ctx, img.Current()); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				img.Stop()
				return img.Current(), ctxErr
			}
			img.HandleError()
		} else {
			img.HandleLoad()
		}

		select {
		case <-img.Changed():
		case <-ctx.Done():
			img.Stop()
			return img.Current(), ctx.Err()
		}
	}
}
