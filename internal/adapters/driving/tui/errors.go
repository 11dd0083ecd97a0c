package tui

import "errors"

// ErrMissingPropertyService is returned when the property service is not provided.
var ErrMissingPropertyService = errors.New("tui: property service is required")

// ErrMissingWorkspace is returned when the editor workspace is not provided.
var ErrMissingWorkspace = errors.New("tui: workspace is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
