package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/listing-studio/internal/core/document"
	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
)

// ListPropertiesInput is the input schema for the list_properties tool.
type ListPropertiesInput struct{}

// ListPropertiesOutput is the output schema for the list_properties tool.
type ListPropertiesOutput struct {
	Properties []PropertySummaryOutput `json:"properties"`
	Count      int                     `json:"count"`
}

// PropertySummaryOutput is one listing in list_properties.
type PropertySummaryOutput struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Sections int    `json:"sections"`
	Updated  string `json:"updated"`
}

// PropertyInput identifies a property.
type PropertyInput struct {
	PropertyID string `json:"property_id" jsonschema:"the property id"`
}

// PropertyOutput is the outline returned by get_property.
type PropertyOutput struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Address  string          `json:"address,omitempty"`
	Price    float64         `json:"price"`
	Version  int             `json:"version"`
	Sections []SectionOutput `json:"sections"`
}

// SectionOutput is one section of a property outline.
type SectionOutput struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Title   string   `json:"title,omitempty"`
	ItemIDs []string `json:"item_ids,omitempty"`
}

// AddSectionInput is the input schema for the add_section tool.
type AddSectionInput struct {
	PropertyID string `json:"property_id" jsonschema:"the property id"`
	Type       string `json:"type" jsonschema:"section type: hero, banner, imageWithFeatures, gallery, amenities, pricing, location, contact or button"`
	Index      *int   `json:"index,omitempty" jsonschema:"zero-based position to insert at (default: end)"`
	Title      string `json:"title,omitempty" jsonschema:"title of the new section"`
}

// SectionInput identifies a section.
type SectionInput struct {
	PropertyID string `json:"property_id" jsonschema:"the property id"`
	SectionID  string `json:"section_id" jsonschema:"the section id"`
}

// ReorderSectionsInput is the input schema for the reorder_sections tool.
type ReorderSectionsInput struct {
	PropertyID string   `json:"property_id" jsonschema:"the property id"`
	SectionIDs []string `json:"section_ids" jsonschema:"section ids in the new order; unlisted sections keep their order at the end"`
}

// SetFieldInput is the input schema for the set_field tool.
type SetFieldInput struct {
	PropertyID string `json:"property_id" jsonschema:"the property id"`
	SectionID  string `json:"section_id" jsonschema:"the section id"`
	Path       string `json:"path" jsonschema:"dotted field path such as title.text or style.backgroundColor"`
	Value      any    `json:"value" jsonschema:"the new value"`
}

// AddItemInput is the input schema for the add_item tool.
type AddItemInput struct {
	PropertyID string         `json:"property_id" jsonschema:"the property id"`
	SectionID  string         `json:"section_id" jsonschema:"the section id"`
	Fields     map[string]any `json:"fields,omitempty" jsonschema:"fields overriding the default item"`
}

// ItemInput identifies a collection item.
type ItemInput struct {
	PropertyID string `json:"property_id" jsonschema:"the property id"`
	SectionID  string `json:"section_id" jsonschema:"the section id"`
	ItemID     string `json:"item_id" jsonschema:"the item id"`
}

// EditOutput reports the result of an editing tool.
type EditOutput struct {
	Changed   bool   `json:"changed"`
	Version   int    `json:"version"`
	CreatedID string `json:"created_id,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_properties",
		Description: "List all property listings",
	}, s.handleListProperties)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_property",
		Description: "Get a property's headline fields and section outline",
	}, s.handleGetProperty)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_section",
		Description: "Add a section with placeholder content to a property",
	}, s.handleAddSection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_section",
		Description: "Remove a section from a property",
	}, s.handleRemoveSection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reorder_sections",
		Description: "Reorder the sections of a property",
	}, s.handleReorderSections)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_field",
		Description: "Set a section field by dotted path",
	}, s.handleSetField)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_item",
		Description: "Add an item to a section's collection (features, images, amenities, tiers, places, texts)",
	}, s.handleAddItem)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_item",
		Description: "Remove an item from a section's collection",
	}, s.handleRemoveItem)
}

func (s *Server) handleListProperties(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListPropertiesInput,
) (*mcp.CallToolResult, ListPropertiesOutput, error) {
	list, err := s.ports.Properties.List(ctx)
	if err != nil {
		return nil, ListPropertiesOutput{}, err
	}

	output := ListPropertiesOutput{
		Properties: make([]PropertySummaryOutput, len(list)),
		Count:      len(list),
	}
	for i, p := range list {
		output.Properties[i] = PropertySummaryOutput{
			ID:       p.ID,
			Name:     p.Name,
			Address:  p.Address,
			Sections: p.SectionCount,
			Updated:  p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}
	return nil, output, nil
}

func (s *Server) handleGetProperty(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PropertyInput,
) (*mcp.CallToolResult, PropertyOutput, error) {
	p, err := s.ports.Properties.Load(ctx, input.PropertyID)
	if err != nil {
		return nil, PropertyOutput{}, err
	}
	return nil, outline(p), nil
}

func outline(p domain.Property) PropertyOutput {
	out := PropertyOutput{
		ID:       p.ID,
		Name:     p.Name,
		Address:  p.Address,
		Price:    p.Price,
		Version:  p.Version,
		Sections: make([]SectionOutput, len(p.Sections)),
	}
	for i, sec := range p.Sections {
		out.Sections[i] = SectionOutput{
			ID:      sec.SectionID(),
			Type:    string(sec.Type()),
			Title:   document.Headline(sec),
			ItemIDs: document.ItemIDs(sec),
		}
	}
	return out
}

func (s *Server) handleAddSection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddSectionInput,
) (*mcp.CallToolResult, EditOutput, error) {
	t := domain.SectionType(input.Type)
	if !t.IsValid() {
		return nil, EditOutput{}, fmt.Errorf("%w: unknown section type %q", domain.ErrInvalidInput, input.Type)
	}
	index := -1
	if input.Index != nil {
		index = *input.Index
	}
	return s.apply(ctx, input.PropertyID, driving.AddSection{Type: t, Index: index, Title: input.Title})
}

func (s *Server) handleRemoveSection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SectionInput,
) (*mcp.CallToolResult, EditOutput, error) {
	return s.apply(ctx, input.PropertyID, driving.RemoveSection{SectionID: input.SectionID})
}

func (s *Server) handleReorderSections(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReorderSectionsInput,
) (*mcp.CallToolResult, EditOutput, error) {
	return s.apply(ctx, input.PropertyID, driving.ReorderSections{IDs: input.SectionIDs})
}

func (s *Server) handleSetField(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SetFieldInput,
) (*mcp.CallToolResult, EditOutput, error) {
	return s.apply(ctx, input.PropertyID, driving.SetField{
		SectionID: input.SectionID,
		Path:      input.Path,
		Value:     input.Value,
	})
}

func (s *Server) handleAddItem(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddItemInput,
) (*mcp.CallToolResult, EditOutput, error) {
	return s.apply(ctx, input.PropertyID, driving.AddItem{SectionID: input.SectionID, Seed: input.Fields})
}

func (s *Server) handleRemoveItem(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ItemInput,
) (*mcp.CallToolResult, EditOutput, error) {
	return s.apply(ctx, input.PropertyID, driving.RemoveItem{SectionID: input.SectionID, ItemID: input.ItemID})
}

// apply runs one intent as admin and waits for it to be saved.
func (s *Server) apply(ctx context.Context, propertyID string, intent driving.Intent) (*mcp.CallToolResult, EditOutput, error) {
	session, err := s.ports.Workspace.Open(ctx, propertyID)
	if err != nil {
		return nil, EditOutput{}, err
	}
	session.SetAdmin(true)

	out, err := session.Apply(ctx, intent)
	if err != nil {
		return nil, EditOutput{}, err
	}
	if err := session.Flush(ctx); err != nil {
		return nil, EditOutput{}, fmt.Errorf("saving: %w", err)
	}
	return nil, EditOutput{Changed: out.Changed, Version: out.Version, CreatedID: out.CreatedID}, nil
}
