// Package messages defines Bubbletea message types for the TUI.
// Messages represent events that flow through the Elm architecture.
package messages

// QueryChanged is sent when the filter input changes.
type QueryChanged struct {
	Query string
}

// DocumentLoaded is sent when the artifact load finishes.
type DocumentLoaded struct {
	Err error
}

// ArtifactChanged is sent when the watched artifact file changes on
// disk, prompting a reload.
type ArtifactChanged struct{}
