package driving

import (
	"context"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

// NewProperty describes a property to create.
type NewProperty struct {
	Name    string
	Address string
	Price   float64

	// Geocode asks the location assistant for coordinates and nearby
	// places. Failures are reported as warnings, not errors.
	Geocode bool
}

// PropertyService loads and saves property documents.
type PropertyService interface {
	// Create builds a property with the default layout and saves it.
	Create(ctx context.Context, req NewProperty) (domain.Property, []string, error)

	// Load retrieves a property. Returns domain.ErrNotFound if unknown.
	Load(ctx context.Context, id string) (domain.Property, error)

	// Save validates and stores a property. Failures are *domain.StoreError.
	Save(ctx context.Context, p domain.Property) error

	// List returns summaries of every property.
	List(ctx context.Context) ([]domain.PropertySummary, error)

	// Delete removes a property and everything it owns.
	Delete(ctx context.Context, id string) error
}

// BackupFormat selects the encoding of a backup file.
type BackupFormat string

// Backup encodings. Import detects the encoding itself.
const (
	BackupJSON BackupFormat = "json"
	BackupYAML BackupFormat = "yaml"
)

// ImportReport describes the outcome of an import.
type ImportReport struct {
	// Properties are the imported documents, as stored.
	Properties []domain.Property

	// Submissions is the number of contact submissions imported.
	Submissions int

	// Renamed maps colliding ids to the ids that replaced them.
	Renamed map[string]string
}

// BackupService exports and imports portable backup files.
type BackupService interface {
	// ExportBackup serialises the given properties (all when ids is empty)
	// with their submissions.
	ExportBackup(ctx context.Context, ids []string, format BackupFormat) ([]byte, error)

	// ImportBackup parses a backup file and stores its contents. A file
	// that cannot be parsed fails with domain.ErrParse and stores nothing.
	ImportBackup(ctx context.Context, data []byte) (*ImportReport, error)
}

// SubmissionService accepts and lists contact form submissions.
type SubmissionService interface {
	// Submit validates and appends a submission.
	Submit(ctx context.Context, s domain.ContactSubmission) (domain.ContactSubmission, error)

	// Submissions lists a property's submissions, oldest first.
	Submissions(ctx context.Context, propertyID string) ([]domain.ContactSubmission, error)
}

// LocationService asks the AI collaborator about a property's surroundings.
type LocationService interface {
	// SuggestLocation geocodes address and suggests nearby places.
	// It never modifies a document.
	SuggestLocation(ctx context.Context, address string) (domain.LocationPlan, error)
}

// SiteService manages site-wide settings.
type SiteService interface {
	// GetSite returns the site settings, or defaults if none are stored.
	GetSite(ctx context.Context) (domain.SiteSettings, error)

	// SaveSite stores the site settings.
	SaveSite(ctx context.Context, s domain.SiteSettings) error
}
