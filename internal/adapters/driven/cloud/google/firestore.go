package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"google.golang.org/api/firestore/v1"
	"google.golang.org/api/option"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driven"
)

// Verify interface compliance.
var (
	_ driven.PropertyStore   = (*Store)(nil)
	_ driven.SubmissionStore = (*Store)(nil)
	_ driven.KeyValueStore   = (*Store)(nil)
)

// Collection ids.
const (
	propertiesCollection  = "properties"
	submissionsCollection = "submissions"
	valuesCollection      = "values"
)

// listPageSize bounds documents fetched per List page.
const listPageSize = 100

// Store keeps properties, submissions and site values in Firestore.
type Store struct {
	docs    *firestore.ProjectsDatabasesDocumentsService
	db      string
	limiter *RateLimiter
}

// NewStore creates a Firestore-backed store for the configured project.
// opts authenticate the client; see ClientOptions.
func NewStore(ctx context.Context, cfg domain.CloudSettings, opts ...option.ClientOption) (*Store, error) {
	if !cfg.IsConfigured() {
		return nil, fmt.Errorf("firestore: %w: cloud.project_id is required", domain.ErrInvalidInput)
	}

	svc, err := firestore.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore service: %w", err)
	}

	return &Store{
		docs:    svc.Projects.Databases.Documents,
		db:      databaseName(cfg),
		limiter: NewRateLimiter(cfg.RequestsPerSecond),
	}, nil
}

func (s *Store) root() string {
	return s.db + "/documents"
}

func (s *Store) propertyName(id string) string {
	return s.root() + "/" + propertiesCollection + "/" + id
}

func (s *Store) valueName(key string) string {
	return s.root() + "/" + valuesCollection + "/" + key
}

// wait applies the rate limit before a call.
func (s *Store) wait(ctx context.Context, op string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return domain.NewStoreError(domain.KindNetwork, op, err)
	}
	return nil
}

// fail records 429 backoff and classifies err.
func (s *Store) fail(op string, err error) error {
	if IsRateLimited(err) {
		s.limiter.RecordRateLimitError(retryAfter(err))
	}
	return WrapError(op, err)
}

// ==================== PropertyStore ====================

// Save creates or replaces a property.
func (s *Store) Save(ctx context.Context, p domain.Property) error {
	doc, err := s.encodeProperty(p)
	if err != nil {
		return err
	}
	if err := s.wait(ctx, "save property"); err != nil {
		return err
	}
	if _, err := s.docs.Patch(doc.Name, doc).Context(ctx).Do(); err != nil {
		return s.fail("save property", err)
	}
	return nil
}

// SaveAll writes every property in one atomic commit.
func (s *Store) SaveAll(ctx context.Context, ps []domain.Property) error {
	if len(ps) == 0 {
		return nil
	}

	writes := make([]*firestore.Write, 0, len(ps))
	for _, p := range ps {
		doc, err := s.encodeProperty(p)
		if err != nil {
			return err
		}
		writes = append(writes, &firestore.Write{Update: doc})
	}
	return s.commit(ctx, "save properties", writes)
}

// Get retrieves a property by ID.
func (s *Store) Get(ctx context.Context, id string) (domain.Property, error) {
	if err := s.wait(ctx, "get property"); err != nil {
		return domain.Property{}, err
	}
	doc, err := s.docs.Get(s.propertyName(id)).Context(ctx).Do()
	if err != nil {
		return domain.Property{}, s.fail("get property "+id, err)
	}
	return decodeProperty(doc)
}

// Delete removes a property together with its submissions.
// Firestore does not delete subcollections with their parent.
func (s *Store) Delete(ctx context.Context, id string) error {
	name := s.propertyName(id)

	var writes []*firestore.Write
	err := s.eachDocument(ctx, name, submissionsCollection, func(doc *firestore.Document) error {
		writes = append(writes, &firestore.Write{Delete: doc.Name})
		return nil
	})
	if err != nil {
		return s.fail("delete property", err)
	}
	writes = append(writes, &firestore.Write{Delete: name})

	return s.commit(ctx, "delete property", writes)
}

// List returns every property, most recently updated first.
func (s *Store) List(ctx context.Context) ([]domain.Property, error) {
	var properties []domain.Property
	err := s.eachDocument(ctx, s.root(), propertiesCollection, func(doc *firestore.Document) error {
		p, err := decodeProperty(doc)
		if err != nil {
			return err
		}
		properties = append(properties, p)
		return nil
	})
	if err != nil {
		return nil, s.fail("list properties", err)
	}

	sort.SliceStable(properties, func(i, j int) bool {
		if !properties[i].UpdatedAt.Equal(properties[j].UpdatedAt) {
			return properties[i].UpdatedAt.After(properties[j].UpdatedAt)
		}
		return properties[i].ID < properties[j].ID
	})
	return properties, nil
}

// ==================== SubmissionStore ====================

// AppendSubmission stores a new submission under its property.
// An existing submission id is rejected rather than overwritten.
func (s *Store) AppendSubmission(ctx context.Context, sub domain.ContactSubmission) error {
	parent := s.propertyName(sub.PropertyID)
	if err := s.wait(ctx, "append submission"); err != nil {
		return err
	}
	if _, err := s.docs.Get(parent).Context(ctx).Do(); err != nil {
		return s.fail("append submission", err)
	}

	payload, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}
	doc := &firestore.Document{
		Fields: map[string]firestore.Value{
			"payload":   {StringValue: string(payload)},
			"createdAt": {TimestampValue: sub.CreatedAt.UTC().Format(time.RFC3339Nano)},
		},
	}

	if err := s.wait(ctx, "append submission"); err != nil {
		return err
	}
	_, err = s.docs.CreateDocument(parent, submissionsCollection, doc).
		DocumentId(sub.ID).
		Context(ctx).
		Do()
	if err != nil {
		return s.fail("append submission", err)
	}
	return nil
}

// ListSubmissions returns a property's submissions, oldest first.
func (s *Store) ListSubmissions(ctx context.Context, propertyID string) ([]domain.ContactSubmission, error) {
	var subs []domain.ContactSubmission
	err := s.eachDocument(ctx, s.propertyName(propertyID), submissionsCollection, func(doc *firestore.Document) error {
		var sub domain.ContactSubmission
		if err := json.Unmarshal([]byte(doc.Fields["payload"].StringValue), &sub); err != nil {
			return fmt.Errorf("%w: submission %s: %v", domain.ErrParse, doc.Name, err)
		}
		subs = append(subs, sub)
		return nil
	})
	if err != nil {
		return nil, s.fail("list submissions", err)
	}

	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].CreatedAt.Before(subs[j].CreatedAt)
	})
	return subs, nil
}

// ==================== KeyValueStore ====================

// GetValue returns the value stored under key.
func (s *Store) GetValue(ctx context.Context, key string) ([]byte, error) {
	if err := s.wait(ctx, "get value"); err != nil {
		return nil, err
	}
	doc, err := s.docs.Get(s.valueName(key)).Context(ctx).Do()
	if err != nil {
		return nil, s.fail("get value "+key, err)
	}
	value, err := base64.StdEncoding.DecodeString(doc.Fields["value"].BytesValue)
	if err != nil {
		return nil, fmt.Errorf("%w: value %s: %v", domain.ErrParse, key, err)
	}
	return value, nil
}

// SetValue stores value under key.
func (s *Store) SetValue(ctx context.Context, key string, value []byte) error {
	doc := &firestore.Document{
		Name: s.valueName(key),
		Fields: map[string]firestore.Value{
			"value": {BytesValue: base64.StdEncoding.EncodeToString(value)},
		},
	}
	if err := s.wait(ctx, "set value"); err != nil {
		return err
	}
	if _, err := s.docs.Patch(doc.Name, doc).Context(ctx).Do(); err != nil {
		return s.fail("set value "+key, err)
	}
	return nil
}

// ==================== helpers ====================

func (s *Store) commit(ctx context.Context, op string, writes []*firestore.Write) error {
	if err := s.wait(ctx, op); err != nil {
		return err
	}
	_, err := s.docs.Commit(s.db, &firestore.CommitRequest{Writes: writes}).Context(ctx).Do()
	if err != nil {
		return s.fail(op, err)
	}
	return nil
}

// eachDocument calls fn for every document of a collection, page by page.
func (s *Store) eachDocument(ctx context.Context, parent, collection string, fn func(*firestore.Document) error) error {
	call := s.docs.List(parent, collection).PageSize(listPageSize)
	pageToken := ""
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
		resp, err := call.PageToken(pageToken).Context(ctx).Do()
		if err != nil {
			return err
		}
		for _, doc := range resp.Documents {
			if err := fn(doc); err != nil {
				return err
			}
		}
		if resp.NextPageToken == "" {
			return nil
		}
		pageToken = resp.NextPageToken
	}
}

func (s *Store) encodeProperty(p domain.Property) (*firestore.Document, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal property %s: %w", p.ID, err)
	}
	return &firestore.Document{
		Name: s.propertyName(p.ID),
		Fields: map[string]firestore.Value{
			"document":  {StringValue: string(data)},
			"version":   {IntegerValue: int64(p.Version)},
			"updatedAt": {TimestampValue: p.UpdatedAt.UTC().Format(time.RFC3339Nano)},
		},
	}, nil
}

func decodeProperty(doc *firestore.Document) (domain.Property, error) {
	var p domain.Property
	if err := json.Unmarshal([]byte(doc.Fields["document"].StringValue), &p); err != nil {
		return domain.Property{}, fmt.Errorf("%w: property %s: %v", domain.ErrParse, doc.Name, err)
	}
	return p, nil
}
