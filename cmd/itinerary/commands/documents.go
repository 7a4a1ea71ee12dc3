package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newDocumentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "documents",
		Short: "Download the travel documents of the site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outDir, _ := cmd.Flags().GetString("out")

			results, err := c.app.Documents(cmd.Context(), configPath(cmd), outDir)
			out := cmd.OutOrStdout()
			for _, res := range results {
				if res.Err != nil {
					_, _ = fmt.Fprintf(out, "✗ %s\n", res.Document.Title)
					continue
				}
				_, _ = fmt.Fprintf(out, "✓ %s -> %s (%d bytes)\n", res.Document.Title, res.Path, res.Bytes)
			}
			return err
		},
	}
	cmd.Flags().StringP("out", "o", "documents", "Directory the documents are stored in")
	return cmd
}
