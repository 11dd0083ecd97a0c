package driven

import (
	"context"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

// PropertyStore persists property documents, one document per property.
type PropertyStore interface {
	// Save creates or replaces a property.
	Save(ctx context.Context, p domain.Property) error

	// SaveAll creates or replaces several properties atomically:
	// either every property is stored or none is.
	SaveAll(ctx context.Context, ps []domain.Property) error

	// Get retrieves a property by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (domain.Property, error)

	// Delete removes a property and its submissions.
	Delete(ctx context.Context, id string) error

	// List returns every property, most recently updated first.
	List(ctx context.Context) ([]domain.Property, error)
}

// SubmissionStore holds contact form submissions per property.
// Submissions are append-only.
type SubmissionStore interface {
	// AppendSubmission stores a new submission.
	AppendSubmission(ctx context.Context, s domain.ContactSubmission) error

	// ListSubmissions returns a property's submissions, oldest first.
	ListSubmissions(ctx context.Context, propertyID string) ([]domain.ContactSubmission, error)
}
