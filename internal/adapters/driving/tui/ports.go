// Package tui provides the interactive terminal interface for eventscope.
// It implements a driving adapter following hexagonal architecture
// principles.
package tui

import (
	"github.com/veldt-labs/eventscope/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI requires, providing a
// single injection point.
type Ports struct {
	// Events is the normalisation, filtering and grouping pipeline.
	Events driving.EventService

	// Changes, when non-nil, signals that the artifact file changed on
	// disk and should be reloaded.
	Changes <-chan struct{}
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(events driving.EventService) *Ports {
	return &Ports{Events: events}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Events == nil {
		return ErrMissingEventService
	}
	return nil
}
