package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/listing-studio/internal/core/document"
	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driven"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
	"github.com/custodia-labs/listing-studio/internal/logger"
)

// Ensure PersistenceService implements the interfaces.
var (
	_ driving.PropertyService   = (*PersistenceService)(nil)
	_ driving.BackupService     = (*PersistenceService)(nil)
	_ driving.SubmissionService = (*PersistenceService)(nil)
	_ driving.LocationService   = (*PersistenceService)(nil)
	_ driving.SiteService       = (*PersistenceService)(nil)
)

const keySite = "site"

// PersistenceService is the only place that talks to storage and to the
// AI collaborator. It never edits a document on its own: results come
// back to the caller, which applies them through an editor session.
type PersistenceService struct {
	properties  driven.PropertyStore
	submissions driven.SubmissionStore
	values      driven.KeyValueStore
	assistant   driven.LocationAssistant
	now         func() time.Time
	newID       document.IDFunc
}

// NewPersistenceService creates a persistence service. assistant may be
// nil, in which case location suggestions are unavailable.
func NewPersistenceService(
	properties driven.PropertyStore,
	submissions driven.SubmissionStore,
	values driven.KeyValueStore,
	assistant driven.LocationAssistant,
) *PersistenceService {
	return &PersistenceService{
		properties:  properties,
		submissions: submissions,
		values:      values,
		assistant:   assistant,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       document.NewID,
	}
}

// Create builds a property with the default layout and saves it. When
// asked, the address is geocoded first; AI failures become warnings.
func (s *PersistenceService) Create(ctx context.Context, req driving.NewProperty) (domain.Property, []string, error) {
	if strings.TrimSpace(req.Name) == "" {
		return domain.Property{}, nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if req.Price < 0 {
		return domain.Property{}, nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}

	p := document.NewProperty(document.PropertySeed{
		Name:    req.Name,
		Address: req.Address,
		Price:   req.Price,
		Now:     s.now(),
		NewID:   s.newID,
	})

	var warnings []string
	if req.Geocode && strings.TrimSpace(req.Address) != "" {
		plan, err := s.SuggestLocation(ctx, req.Address)
		if err != nil {
			warnings = append(warnings, err.Error())
		} else {
			warnings = append(warnings, plan.Warnings...)
			next, err := document.ApplyLocationPlan(p, plan, s.newID)
			if err != nil {
				return domain.Property{}, warnings, err
			}
			p = next
		}
	}

	if err := s.Save(ctx, p); err != nil {
		return domain.Property{}, warnings, err
	}
	logger.Info("created property %s (%s)", p.ID, p.Name)
	return p, warnings, nil
}

// Load retrieves a property.
func (s *PersistenceService) Load(ctx context.Context, id string) (domain.Property, error) {
	p, err := s.properties.Get(ctx, id)
	if err != nil {
		return domain.Property{}, fmt.Errorf("load property %s: %w", id, err)
	}
	return p, nil
}

// Save validates and stores p. Every failure is a *domain.StoreError.
func (s *PersistenceService) Save(ctx context.Context, p domain.Property) error {
	if err := document.Validate(p); err != nil {
		return domain.NewStoreError(domain.KindValidation, "save", err)
	}
	logger.Debug("saving property %s version %d", p.ID, p.Version)
	if err := s.properties.Save(ctx, p); err != nil {
		return asStoreError("save", err)
	}
	return nil
}

// asStoreError keeps store errors as they are and classifies anything else
// as a network failure.
func asStoreError(op string, err error) error {
	var se *domain.StoreError
	if errors.As(err, &se) {
		return err
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return domain.NewStoreError(domain.KindValidation, op, err)
	}
	return domain.NewStoreError(domain.KindNetwork, op, err)
}

// List returns summaries of every property.
func (s *PersistenceService) List(ctx context.Context) ([]domain.PropertySummary, error) {
	ps, err := s.properties.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	out := make([]domain.PropertySummary, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Summary())
	}
	return out, nil
}

// Delete removes a property and its submissions.
func (s *PersistenceService) Delete(ctx context.Context, id string) error {
	if _, err := s.properties.Get(ctx, id); err != nil {
		return fmt.Errorf("delete property %s: %w", id, err)
	}
	if err := s.properties.Delete(ctx, id); err != nil {
		return asStoreError("delete", err)
	}
	logger.Info("deleted property %s", id)
	return nil
}

// Submit validates and appends a contact submission.
func (s *PersistenceService) Submit(ctx context.Context, sub domain.ContactSubmission) (domain.ContactSubmission, error) {
	if err := sub.Validate(); err != nil {
		return domain.ContactSubmission{}, err
	}
	if _, err := s.properties.Get(ctx, sub.PropertyID); err != nil {
		return domain.ContactSubmission{}, fmt.Errorf("submit to %s: %w", sub.PropertyID, err)
	}
	sub.ID = s.newID()
	sub.CreatedAt = s.now()
	if err := s.submissions.AppendSubmission(ctx, sub); err != nil {
		return domain.ContactSubmission{}, asStoreError("submit", err)
	}
	return sub, nil
}

// Submissions lists a property's submissions.
func (s *PersistenceService) Submissions(ctx context.Context, propertyID string) ([]domain.ContactSubmission, error) {
	subs, err := s.submissions.ListSubmissions(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}

// SuggestLocation geocodes address and asks for nearby places. A failed
// geocode is an error; a failed place lookup is a warning on the plan.
func (s *PersistenceService) SuggestLocation(ctx context.Context, address string) (domain.LocationPlan, error) {
	if s.assistant == nil {
		return domain.LocationPlan{}, domain.ErrLLMUnavailable
	}
	if strings.TrimSpace(address) == "" {
		return domain.LocationPlan{}, fmt.Errorf("%w: address is required", domain.ErrInvalidInput)
	}

	at, err := s.assistant.Geocode(ctx, address)
	if err != nil {
		logger.Warn("geocode %q failed: %v", address, err)
		return domain.LocationPlan{}, fmt.Errorf("%w: geocode: %w", domain.ErrExternalService, err)
	}
	plan := domain.LocationPlan{Coordinates: at}
	if at.IsZero() {
		plan.Warnings = append(plan.Warnings, "address could not be located")
		return plan, nil
	}

	places, err := s.assistant.SuggestNearbyPlaces(ctx, at)
	if err != nil {
		logger.Warn("nearby places for %v failed: %v", at, err)
		plan.Warnings = append(plan.Warnings, fmt.Sprintf("nearby places unavailable: %v", err))
		return plan, nil
	}
	plan.Places = places
	return plan, nil
}

// GetSite returns the site settings, or zero values if none are stored.
func (s *PersistenceService) GetSite(ctx context.Context) (domain.SiteSettings, error) {
	var site domain.SiteSettings
	data, err := s.values.GetValue(ctx, keySite)
	if errors.Is(err, domain.ErrNotFound) {
		return site, nil
	}
	if err != nil {
		return site, fmt.Errorf("get site settings: %w", err)
	}
	if err := json.Unmarshal(data, &site); err != nil {
		return site, fmt.Errorf("%w: site settings: %v", domain.ErrParse, err)
	}
	return site, nil
}

// SaveSite stores the site settings.
func (s *PersistenceService) SaveSite(ctx context.Context, site domain.SiteSettings) error {
	data, err := json.Marshal(site)
	if err != nil {
		return fmt.Errorf("encode site settings: %w", err)
	}
	if err := s.values.SetValue(ctx, keySite, data); err != nil {
		return asStoreError("save site", err)
	}
	return nil
}
