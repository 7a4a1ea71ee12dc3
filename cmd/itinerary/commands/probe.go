package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.trai.ch/itinerary/internal/app"
	"go.trai.ch/itinerary/internal/core/domain"
)

const maxCellWidth = 60

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	fallbackStyle = cellStyle.Foreground(lipgloss.Color("196"))
)

func (c *CLI) newProbeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Resolve every image of the site and report placeholders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			displayMode, _ := cmd.Flags().GetBool("display")
			concurrency, _ := cmd.Flags().GetInt("concurrency")
			strict, _ := cmd.Flags().GetBool("strict")

			report, err := c.app.Probe(cmd.Context(), configPath(cmd), app.ProbeOptions{
				Display:     displayMode,
				Concurrency: concurrency,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, renderReport(report))
			_, _ = fmt.Fprintf(out, "run %s: %d images, %d placeholders\n",
				report.RunID, len(report.Results), report.Fallbacks())

			if strict && report.Fallbacks() > 0 {
				return domain.ErrImagesFellBack
			}
			return nil
		},
	}
	cmd.Flags().BoolP("display", "d", false, "Apply the delayed retries of a displayed image")
	cmd.Flags().IntP("concurrency", "j", 0, "Number of images resolved in parallel")
	cmd.Flags().Bool("strict", false, "Exit with an error when an image fell back to a placeholder")
	return cmd
}

func renderReport(report *app.ProbeReport) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("STATUS", "SOURCE", "RESOLVED").
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case report.Results[row].Status == domain.StatusFallback:
				return fallbackStyle
			default:
				return cellStyle
			}
		})

	for _, res := range report.Results {
		resolved := res.Resolved
		if domain.IsFallbackImage(resolved) {
			resolved = "placeholder"
		}
		t.Row(string(res.Status), truncate(res.Source), truncate(resolved))
	}
	return t.String()
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxCellWidth {
		return s
	}
	return string(r[:maxCellWidth-1]) + "…"
}
