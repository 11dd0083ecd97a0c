package web

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
)

// Envelope is one frame of the edit protocol.
type Envelope struct {
	Type string          `json:"type"`
	ID   string          `json:"id,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Frame types sent by the server.
const (
	FrameProperty = "property"
	FrameOutcome  = "outcome"
	FrameError    = "error"
	FrameLocation = "location"
)

// Request types that are not intents.
const (
	requestFlush           = "flush"
	requestSuggestLocation = "suggestLocation"
)

// outcomeFrame is the payload of an outcome frame.
type outcomeFrame struct {
	Version   int                `json:"version"`
	Changed   bool               `json:"changed"`
	CreatedID string             `json:"createdId,omitempty"`
	Selected  *domain.ElementRef `json:"selected,omitempty"`
}

// errorFrame is the payload of an error frame.
type errorFrame struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// locationFrame is the payload of a location frame.
type locationFrame struct {
	Coordinates domain.GeoPoint          `json:"coordinates"`
	Places      []domain.PlaceSuggestion `json:"places"`
	Warnings    []string                 `json:"warnings,omitempty"`
}

var errUnknownRequest = errors.New("unknown request type")

// decodeIntent maps a request envelope to an intent. Field names follow
// the intent structs in camel case.
func decodeIntent(env Envelope) (driving.Intent, error) {
	switch env.Type {
	case "select":
		return decodeAs[driving.Select](env.Data)
	case "deselect":
		return driving.Deselect{}, nil
	case "backgroundClick":
		return driving.BackgroundClick{}, nil
	case "bufferField":
		return decodeAs[driving.BufferField](env.Data)
	case "setField":
		return decodeAs[driving.SetField](env.Data)
	case "replaceSection":
		return decodeAs[driving.ReplaceSection](env.Data)
	case "addSection":
		in := driving.AddSection{Index: -1}
		if err := unmarshal(env.Data, &in); err != nil {
			return nil, err
		}
		return in, nil
	case "removeSection":
		return decodeAs[driving.RemoveSection](env.Data)
	case "reorderSections":
		return decodeAs[driving.ReorderSections](env.Data)
	case "moveSection":
		return decodeAs[driving.MoveSection](env.Data)
	case "addItem":
		return decodeAs[driving.AddItem](env.Data)
	case "updateItem":
		return decodeAs[driving.UpdateItem](env.Data)
	case "removeItem":
		return decodeAs[driving.RemoveItem](env.Data)
	case "reorderItems":
		return decodeAs[driving.ReorderItems](env.Data)
	case "updateProperty":
		return decodeAs[driving.UpdateProperty](env.Data)
	case "applyLocation":
		var plan locationFrame
		if err := unmarshal(env.Data, &plan); err != nil {
			return nil, err
		}
		return driving.ApplyLocation{Plan: domain.LocationPlan{
			Coordinates: plan.Coordinates,
			Places:      plan.Places,
		}}, nil
	case "pointerDown":
		return decodeAs[driving.PointerDown](env.Data)
	case "pointerMove":
		return decodeAs[driving.PointerMove](env.Data)
	case "pointerUp":
		return decodeAs[driving.PointerUp](env.Data)
	case "blur":
		return driving.Blur{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownRequest, env.Type)
	}
}

func decodeAs[T driving.Intent](data json.RawMessage) (driving.Intent, error) {
	var v T
	if err := unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func unmarshal(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// errorCode classifies err for clients.
func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrAdminRequired):
		return "admin_required"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrSessionClosed):
		return "session_closed"
	case errors.Is(err, domain.ErrPermission):
		return "permission"
	case errors.Is(err, domain.ErrNetwork):
		return "network"
	case errors.Is(err, domain.ErrParse), errors.Is(err, errUnknownRequest):
		return "bad_request"
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnknownSectionType):
		return "invalid_input"
	case errors.Is(err, domain.ErrExternalService), errors.Is(err, domain.ErrLLMUnavailable):
		return "external_service"
	case errors.Is(err, domain.ErrNotImplemented):
		return "not_implemented"
	default:
		return "internal"
	}
}

func encodeFrame(frameType, id string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s frame: %w", frameType, err)
	}
	return json.Marshal(Envelope{Type: frameType, ID: id, Data: data})
}
