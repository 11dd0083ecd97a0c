// Package tui provides the terminal outline editor for listing studio.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
)

// Ports aggregates the driving ports the outline editor needs.
type Ports struct {
	// Properties lists the properties to choose from.
	Properties driving.PropertyService

	// Workspace opens the editor session of the chosen property. Sessions
	// are shared with the web editor when both run in one process.
	Workspace driving.Workspace
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(properties driving.PropertyService, workspace driving.Workspace) *Ports {
	return &Ports{Properties: properties, Workspace: workspace}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Properties == nil {
		return ErrMissingPropertyService
	}
	if p.Workspace == nil {
		return ErrMissingWorkspace
	}
	return nil
}
