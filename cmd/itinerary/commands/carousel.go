package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/itinerary/internal/app"
	"go.trai.ch/itinerary/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newCarouselCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "carousel DAY",
		Short: "Step through the photo gallery of a day or one of its activities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := strconv.Atoi(args[0])
			if err != nil {
				return zerr.With(zerr.Wrap(err, "invalid day"), "day", args[0])
			}

			autoPlay, _ := cmd.Flags().GetBool("autoplay")
			interval, _ := cmd.Flags().GetDuration("interval")
			steps, _ := cmd.Flags().GetInt("steps")
			interactive, _ := cmd.Flags().GetBool("interactive")
			activity, _ := cmd.Flags().GetString("activity")

			opts := app.CarouselOptions{
				AutoPlay: autoPlay,
				Interval: interval,
				Steps:    steps,
				Activity: activity,
			}

			if interactive {
				if !c.isTerminal() {
					return domain.ErrNotATerminal
				}
				return c.app.BrowseCarousel(cmd.Context(), configPath(cmd), day, opts)
			}

			out := cmd.OutOrStdout()
			return c.app.PlayCarousel(cmd.Context(), configPath(cmd), day, opts, func(s app.Slide) {
				_, _ = fmt.Fprintf(out, "[%d/%d] %-8s %s\n",
					s.State.Index+1, s.State.Length, s.State.Direction, s.Image)
			})
		},
	}
	cmd.Flags().BoolP("autoplay", "a", false, "Advance to the next slide automatically")
	cmd.Flags().Duration("interval", 0, "Auto-advance period (defaults to the site setting)")
	cmd.Flags().IntP("steps", "n", 0, "Number of transitions to play")
	cmd.Flags().String("activity", "", "Play the gallery of one activity, by position or name")
	cmd.Flags().BoolP("interactive", "i", false, "Browse the gallery with the keyboard")
	return cmd
}
