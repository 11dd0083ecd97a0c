package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for studio resources.
	uriScheme = "studio://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "properties",
		Name:        "properties",
		Description: "List of all property listings",
		MIMEType:    "application/json",
	}, s.handlePropertiesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "properties/{propertyId}",
		Name:        "property-document",
		Description: "Full document of a property listing",
		MIMEType:    "application/json",
	}, s.handlePropertyResource)
}

func (s *Server) handlePropertiesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	_, list, err := s.handleListProperties(ctx, nil, ListPropertiesInput{})
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}

	data, err := json.MarshalIndent(list.Properties, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling properties: %w", err)
	}
	return jsonResult(req.Params.URI, data), nil
}

// handlePropertyResource returns the full property document.
func (s *Server) handlePropertyResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractPropertyID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	p, err := s.ports.Properties.Load(ctx, id)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling property: %w", err)
	}
	return jsonResult(req.Params.URI, data), nil
}

func jsonResult(uri string, data []byte) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}
}

// extractPropertyID extracts the property ID from a URI like studio://properties/{propertyId}.
func extractPropertyID(uri string) string {
	const prefix = uriScheme + "properties/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
