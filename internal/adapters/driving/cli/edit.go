package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
)

// edit opens an admin session on a property, applies one intent and saves.
func edit(ctx context.Context, propertyID string, intent driving.Intent) (driving.Outcome, error) {
	if workspace == nil {
		return driving.Outcome{}, errors.New("workspace not configured")
	}

	session, err := workspace.Open(ctx, propertyID)
	if err != nil {
		return driving.Outcome{}, fmt.Errorf("failed to open property: %w", err)
	}
	session.SetAdmin(true)

	out, err := session.Apply(ctx, intent)
	closeErr := workspace.Close(ctx)
	if err != nil {
		return out, err
	}
	if closeErr != nil {
		return out, fmt.Errorf("failed to save property: %w", closeErr)
	}
	return out, nil
}

// parseValue reads a command-line value as JSON, or as a plain string
// when it is not valid JSON.
func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

// parseAssignments turns key=value pairs into a patch.
func parseAssignments(pairs []string) (map[string]any, error) {
	patch := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q, expected key=value", pair)
		}
		patch[key] = parseValue(value)
	}
	return patch, nil
}

func reportOutcome(printf func(string, ...any), out driving.Outcome, what string) {
	if !out.Changed {
		printf("No change: %s.\n", what)
		return
	}
	printf("Done: %s (version %d).\n", what, out.Version)
}
