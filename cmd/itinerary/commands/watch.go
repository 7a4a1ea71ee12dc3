package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/itinerary/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Report connectivity changes until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			address, _ := cmd.Flags().GetString("address")
			interval, _ := cmd.Flags().GetDuration("interval")

			out := cmd.OutOrStdout()
			return c.app.Watch(cmd.Context(), configPath(cmd), app.WatchOptions{
				Address:  address,
				Interval: interval,
			}, func(online bool) {
				state := "offline"
				if online {
					state = "online"
				}
				_, _ = fmt.Fprintf(out, "%s %s\n", time.Now().Format(time.TimeOnly), state)
			})
		},
	}
	cmd.Flags().String("address", "", "TCP address dialed to detect connectivity")
	cmd.Flags().Duration("interval", 0, "Period between connectivity checks")
	return cmd
}
