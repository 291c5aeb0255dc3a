package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	settings, err := configStore.Load()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	cmd.Printf("Config file:    %s\n", configStore.Path())
	cmd.Printf("Artifact path:  %s\n", orUnset(settings.ArtifactPath))
	cmd.Printf("Feed URLs:      %s\n", orUnset(strings.Join(settings.FeedURLs, ", ")))
	cmd.Printf("ICS feeds:      %s\n", orUnset(strings.Join(settings.ICSFeeds, ", ")))
	cmd.Printf("Keywords:       %s\n", orUnset(strings.Join(settings.Keywords, ", ")))
	cmd.Printf("Location:       %s\n", orUnset(joinLocation(settings.City, settings.State, settings.Country)))
	cmd.Printf("Window:         %d days\n", settings.WindowDays)
	cmd.Printf("Data directory: %s\n", orUnset(settings.DataDir))

	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func joinLocation(parts ...string) string {
	present := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			present = append(present, p)
		}
	}
	return strings.Join(present, ", ")
}
