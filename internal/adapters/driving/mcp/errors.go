// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Listing Studio. It lets AI assistants read listings and edit their sections.
package mcp

import "errors"

// ErrMissingPropertyService is returned when the property service is not provided.
var ErrMissingPropertyService = errors.New("mcp: property service is required")

// ErrMissingWorkspace is returned when the workspace is not provided.
var ErrMissingWorkspace = errors.New("mcp: workspace is required")
