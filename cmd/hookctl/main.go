package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// build-time override (e.g. -ldflags "-X main.version=1.2.3")
var version = "dev"

func main() {
	a := newApp()
	defer a.Close()

	root := newRootCmd(a)
	root.SilenceUsage = true
	root.SilenceErrors = true

	if err := root.Execute(); err != nil {
		// If Execute() returns an error, logging may or may not be initialized yet.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd creates the root Cobra command.
func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hookctl",
		Short: "Admin CLI for the YouTube webhook ingestion backend",
		Long: strings.TrimSpace(`
hookctl - Administration tool for a YouTube webhook ingestion backend

Browse and manage the backend's resources (webhook events, channels, videos,
subscriptions, blocked videos, enrichment jobs, sponsors) over its REST API.
Credentials are stored per user with "hookctl configure"; list output is
cached briefly on disk so repeated queries do not hammer the server.`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.initLogging()
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "Enable verbose (info) logging")
	cmd.PersistentFlags().BoolVar(&a.flags.debug, "debug", false, "Enable debug logging (overrides --verbose)")
	cmd.PersistentFlags().BoolVar(&a.flags.noColor, "no-color", false, "Disable ANSI colors")
	cmd.PersistentFlags().StringVarP(&a.flags.output, "output", "o", "table", "Output format: table|json|yaml")
	cmd.PersistentFlags().BoolVar(&a.flags.noCache, "no-cache", false, "Bypass cached reads (fresh responses are still stored)")
	cmd.Version = version

	// Connection management
	cmd.AddCommand(newConfigureCmd(a))
	cmd.AddCommand(newStatusCmd(a))
	cmd.AddCommand(newDisconnectCmd(a))

	// Resource pages
	cmd.AddCommand(newEventsCmd(a))
	cmd.AddCommand(newChannelsCmd(a))
	cmd.AddCommand(newVideosCmd(a))
	cmd.AddCommand(newVideoUpdatesCmd(a))
	cmd.AddCommand(newSubscriptionsCmd(a))
	cmd.AddCommand(newBlockedVideosCmd(a))
	cmd.AddCommand(newJobsCmd(a))
	cmd.AddCommand(newSponsorsCmd(a))
	cmd.AddCommand(newDetectionCmd(a))

	// Local state
	cmd.AddCommand(newColumnsCmd(a))
	cmd.AddCommand(newCacheCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// newVersionCmd prints version info (simple helper).
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("hookctl version: %s\n", version)
		},
	}
}
