package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/itinerary/internal/app"
)

func (c *CLI) newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the site file and summarise its contents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			watch, _ := cmd.Flags().GetBool("watch")
			out := cmd.OutOrStdout()

			if watch {
				return c.app.WatchSite(cmd.Context(), configPath(cmd), func(s *app.Summary, err error) {
					if err != nil {
						_, _ = fmt.Fprintf(out, "invalid: %v\n", err)
						return
					}
					printSummary(out, s, verbose)
				})
			}

			s, err := c.app.Validate(cmd.Context(), configPath(cmd))
			if err != nil {
				return err
			}
			printSummary(out, s, verbose)
			return nil
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "List every day of the itinerary")
	cmd.Flags().BoolP("watch", "w", false, "Validate again whenever the site file changes")
	return cmd
}

func printSummary(out io.Writer, s *app.Summary, verbose bool) {
	_, _ = fmt.Fprintf(out, "%s: %d days, %d images, %d documents, %d flights (%s)\n",
		s.Itinerary.Title, s.Days, s.Images, s.Documents, s.Flights, s.Fingerprint)
	if !verbose {
		return
	}
	for _, d := range s.Itinerary.Days {
		_, _ = fmt.Fprintf(out, "  day %d  %s  %s\n", d.Number, d.Date, d.Title)
	}
}
