// Package cli implements the command-line interface for eventscope.
// Commands are thin: they validate flags, call the driving ports and
// format output. Service wiring happens in cmd/eventscope.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/veldt-labs/eventscope/internal/connectors/ics"
	"github.com/veldt-labs/eventscope/internal/core/ports/driven"
	"github.com/veldt-labs/eventscope/internal/core/ports/driving"
	"github.com/veldt-labs/eventscope/internal/logger"
)

// version is the build version, overridden at link time.
var version = "dev"

// Services that commands depend on. Set once at startup via Wire.
var (
	eventService driving.EventService
	harvester    *ics.Harvester
	configStore  driven.ConfigStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "eventscope",
	Short: "Browse and filter harvested event feeds",
	Long: `Eventscope loads a harvested event feed artifact, normalises its
records and presents upcoming events grouped by month, with live
text filtering in the terminal.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Wire injects the services the commands call. It must run before
// Execute.
func Wire(events driving.EventService, harv *ics.Harvester, cfg driven.ConfigStore) {
	eventService = events
	harvester = harv
	configStore = cfg
}

// SetVersion overrides the reported build version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
