package mcp

import (
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Properties reads listings.
	Properties driving.PropertyService

	// Workspace opens edit sessions. Edits made through MCP share the
	// session with any browser editing the same property.
	Workspace driving.Workspace
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
