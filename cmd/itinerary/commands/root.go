// Package commands implements the CLI commands for the itinerary tool.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/itinerary/internal/app"
	"go.trai.ch/itinerary/internal/build"
	"go.trai.ch/itinerary/internal/core/ports"
)

// App is the application surface used by the commands.
type App interface {
	Validate(ctx context.Context, path string) (*app.Summary, error)
	WatchSite(ctx context.Context, path string, fn func(*app.Summary, error)) error
	Probe(ctx context.Context, path string, opts app.ProbeOptions) (*app.ProbeReport, error)
	Documents(ctx context.Context, path, outDir string) ([]app.DocumentResult, error)
	PlayCarousel(ctx context.Context, path string, day int, opts app.CarouselOptions, fn func(app.Slide)) error
	BrowseCarousel(ctx context.Context, path string, day int, opts app.CarouselOptions) error
	Watch(ctx context.Context, path string, opts app.WatchOptions, onChange func(online bool)) error
}

type jsonSwitch interface {
	SetJSON(enable bool)
}

// CLI represents the command line interface for itinerary.
type CLI struct {
	app     App
	logger  ports.Logger
	rootCmd *cobra.Command

	// isTerminal reports whether interactive views can be shown.
	isTerminal func() bool
}

// New creates a new CLI instance with the given app. log may be nil.
func New(a App, log ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "itinerary",
		Short:         "Resilient image and document tooling for travel itinerary sites",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the site file or its directory")
	rootCmd.PersistentFlags().Bool("json", false, "Emit logs as JSON")

	c := &CLI{
		app:        a,
		logger:     log,
		rootCmd:    rootCmd,
		isTerminal: stdoutIsTerminal,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		asJSON, _ := cmd.Flags().GetBool("json")
		if sw, ok := c.logger.(jsonSwitch); ok {
			sw.SetJSON(asJSON)
		}
	}

	rootCmd.AddCommand(c.newValidateCmd())
	rootCmd.AddCommand(c.newProbeCmd())
	rootCmd.AddCommand(c.newDocumentsCmd())
	rootCmd.AddCommand(c.newCarouselCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the standard and error output of the commands. Used for testing.
func (c *CLI) SetOutput(out, errOut io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(errOut)
}

// SetTerminal overrides terminal detection. Used for testing.
func (c *CLI) SetTerminal(isTerminal bool) {
	c.isTerminal = func() bool { return isTerminal }
}

func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}
