package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/veldt-labs/eventscope/internal/core/domain"
)

var (
	eventsQuery string
	eventsJSON  bool
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List upcoming events grouped by month",
	Long: `Loads the harvested artifact and prints upcoming events grouped
by month. Past events are dropped; an optional query narrows the
list to events whose text matches it.`,
	Args: cobra.NoArgs,
	RunE: runEvents,
}

func init() {
	eventsCmd.Flags().StringVarP(&eventsQuery, "query", "q", "", "filter events by text match")
	eventsCmd.Flags().BoolVar(&eventsJSON, "json", false, "output the view as JSON")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, _ []string) error {
	if eventService == nil {
		return errors.New("event service not configured")
	}

	if err := eventService.Load(cmd.Context()); err != nil {
		return fmt.Errorf("load events: %w", err)
	}

	view := eventService.View(eventsQuery, time.Now())

	if eventsJSON {
		return outputViewJSON(cmd, view)
	}
	return outputViewText(cmd, view)
}

func outputViewJSON(cmd *cobra.Command, view *domain.View) error {
	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal view: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputViewText(cmd *cobra.Command, view *domain.View) error {
	switch view.Empty {
	case domain.EmptyNoData:
		cmd.Println("No harvested event data yet.")
		for _, note := range view.Notes {
			cmd.Printf("  note: %s\n", note)
		}
		return nil
	case domain.EmptyNoMatches:
		if view.Query != "" {
			cmd.Printf("No upcoming events match %q.\n", view.Query)
		} else {
			cmd.Println("No upcoming events.")
		}
		return nil
	}

	for _, group := range view.Groups {
		cmd.Printf("%s\n", group.Key)
		for i := range group.Events {
			e := &group.Events[i]
			cmd.Printf("  %s  %s\n", e.Start.Local().Format("Mon 02 Jan 15:04"), e.Title)
			if loc := e.Location(); loc != "" {
				cmd.Printf("                        %s\n", loc)
			}
		}
		cmd.Println()
	}
	cmd.Printf("%d of %d events shown.\n", view.MatchedEvents, view.TotalEvents)

	return nil
}
