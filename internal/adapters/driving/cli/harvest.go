package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/veldt-labs/eventscope/internal/connectors/ics"
)

var (
	harvestFeeds  []string
	harvestWindow int
	harvestOut    string
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Harvest calendar feeds into an artifact file",
	Long: `Pulls the configured ICS calendar feeds, merges and deduplicates
their events and writes the result as a JSON artifact that the
events and tui commands consume.`,
	Args: cobra.NoArgs,
	RunE: runHarvest,
}

func init() {
	harvestCmd.Flags().StringSliceVar(&harvestFeeds, "feed", nil, "ICS feed URL (repeatable, overrides configured feeds)")
	harvestCmd.Flags().IntVar(&harvestWindow, "window", 0, "lookahead window in days (overrides configured window)")
	harvestCmd.Flags().StringVarP(&harvestOut, "out", "o", "", "artifact output path (overrides configured path)")
	rootCmd.AddCommand(harvestCmd)
}

func runHarvest(cmd *cobra.Command, _ []string) error {
	if harvester == nil || configStore == nil {
		return errors.New("harvester not configured")
	}

	settings, err := configStore.Load()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	opts := ics.Options{
		Feeds:      settings.ICSFeeds,
		Keywords:   settings.Keywords,
		City:       settings.City,
		State:      settings.State,
		Country:    settings.Country,
		WindowDays: settings.WindowDays,
	}
	if len(harvestFeeds) > 0 {
		opts.Feeds = harvestFeeds
	}
	if harvestWindow > 0 {
		opts.WindowDays = harvestWindow
	}
	if len(opts.Feeds) == 0 {
		return errors.New("no ICS feeds configured; set ics_feeds in the config file or pass --feed")
	}

	out := harvestOut
	if out == "" {
		out = settings.ArtifactPath
	}
	if out == "" {
		return errors.New("no artifact path configured; set artifact_path in the config file or pass --out")
	}

	doc := harvester.Harvest(cmd.Context(), opts)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create artifact directory: %w", err)
		}
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}

	cmd.Printf("Harvested %d events from %d feeds.\n", doc.Meta.Count, len(opts.Feeds))
	for _, note := range doc.Notes {
		cmd.Printf("  note: %s\n", note)
	}
	cmd.Printf("Artifact written to %s\n", out)

	return nil
}
