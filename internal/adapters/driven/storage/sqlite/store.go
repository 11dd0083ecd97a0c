package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/listing-studio/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.listing-studio/data/studio.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".listing-studio", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "studio.db")

	// Pragmas in the DSN apply to every pooled connection.
	db, err := sql.Open("sqlite", dbPath+
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Properties returns the property store backed by this database.
func (s *Store) Properties() *PropertyStore {
	return &PropertyStore{store: s}
}

// Blobs returns the blob store backed by this database.
func (s *Store) Blobs() driven.BlobStore {
	return &blobStore{store: s}
}

// Values returns the key-value store backed by this database.
func (s *Store) Values() driven.KeyValueStore {
	return &valueStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Property Store ====================

// PropertyStore implements driven.PropertyStore and driven.SubmissionStore.
type PropertyStore struct {
	store *Store
}

var (
	_ driven.PropertyStore   = (*PropertyStore)(nil)
	_ driven.SubmissionStore = (*PropertyStore)(nil)
)

// execer is the part of *sql.DB and *sql.Tx used for writes.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Save stores or replaces a property.
func (s *PropertyStore) Save(ctx context.Context, p domain.Property) error {
	return saveProperty(ctx, s.store.db, p)
}

// SaveAll stores several properties in one transaction.
func (s *PropertyStore) SaveAll(ctx context.Context, ps []domain.Property) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, p := range ps {
		if err := saveProperty(ctx, tx, p); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing properties: %w", err)
	}
	return nil
}

func saveProperty(ctx context.Context, db execer, p domain.Property) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshalling property %s: %w", p.ID, err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO properties (id, name, address, version, updated_at, document)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			address = excluded.address,
			version = excluded.version,
			updated_at = excluded.updated_at,
			document = excluded.document
	`, p.ID, p.Name, p.Address, p.Version, p.UpdatedAt.UnixNano(), string(doc))
	if err != nil {
		return fmt.Errorf("saving property: %w", err)
	}
	return nil
}

// Get retrieves a property by ID.
func (s *PropertyStore) Get(ctx context.Context, id string) (domain.Property, error) {
	var doc string
	err := s.store.db.QueryRowContext(ctx, "SELECT document FROM properties WHERE id = ?", id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Property{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Property{}, fmt.Errorf("scanning property: %w", err)
	}
	return decodeProperty(doc)
}

// Delete removes a property. Its submissions go with it.
func (s *PropertyStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM properties WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting property: %w", err)
	}
	return nil
}

// List returns every property, most recently updated first.
func (s *PropertyStore) List(ctx context.Context) ([]domain.Property, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT document FROM properties ORDER BY updated_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("querying properties: %w", err)
	}
	defer rows.Close()

	var properties []domain.Property //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning property: %w", err)
		}
		p, err := decodeProperty(doc)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating properties: %w", err)
	}
	return properties, nil
}

func decodeProperty(doc string) (domain.Property, error) {
	var p domain.Property
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return domain.Property{}, fmt.Errorf("unmarshaling property: %w", err)
	}
	return p, nil
}

// AppendSubmission stores a new submission.
func (s *PropertyStore) AppendSubmission(ctx context.Context, sub domain.ContactSubmission) error {
	payload, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshalling submission: %w", err)
	}
	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO submissions (id, property_id, created_at, payload)
		VALUES (?, ?, ?, ?)
	`, sub.ID, sub.PropertyID, sub.CreatedAt.UnixNano(), string(payload))
	if err != nil {
		return fmt.Errorf("saving submission: %w", err)
	}
	return nil
}

// ListSubmissions returns a property's submissions, oldest first.
func (s *PropertyStore) ListSubmissions(ctx context.Context, propertyID string) ([]domain.ContactSubmission, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT payload FROM submissions
		WHERE property_id = ?
		ORDER BY created_at, rowid
	`, propertyID)
	if err != nil {
		return nil, fmt.Errorf("querying submissions: %w", err)
	}
	defer rows.Close()

	var subs []domain.ContactSubmission //nolint:prealloc // size unknown from query
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}
		var sub domain.ContactSubmission
		if err := json.Unmarshal([]byte(payload), &sub); err != nil {
			return nil, fmt.Errorf("unmarshaling submission: %w", err)
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating submissions: %w", err)
	}
	return subs, nil
}

// ==================== Blob Store ====================

// blobStore implements driven.BlobStore.
type blobStore struct {
	store *Store
}

var _ driven.BlobStore = (*blobStore)(nil)

// Put stores data under key.
func (s *blobStore) Put(ctx context.Context, key string, blob driven.Blob) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO blobs (key, content_type, data) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			content_type = excluded.content_type,
			data = excluded.data
	`, key, blob.ContentType, blob.Data)
	if err != nil {
		return fmt.Errorf("saving blob: %w", err)
	}
	return nil
}

// Get retrieves the blob stored under key.
func (s *blobStore) Get(ctx context.Context, key string) (driven.Blob, error) {
	var blob driven.Blob
	err := s.store.db.QueryRowContext(ctx,
		"SELECT content_type, data FROM blobs WHERE key = ?", key).Scan(&blob.ContentType, &blob.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return driven.Blob{}, domain.ErrNotFound
	}
	if err != nil {
		return driven.Blob{}, fmt.Errorf("scanning blob: %w", err)
	}
	return blob, nil
}

// Delete removes key.
func (s *blobStore) Delete(ctx context.Context, key string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM blobs WHERE key = ?", key); err != nil {
		return fmt.Errorf("deleting blob: %w", err)
	}
	return nil
}

// ==================== Key-Value Store ====================

// valueStore implements driven.KeyValueStore.
type valueStore struct {
	store *Store
}

var _ driven.KeyValueStore = (*valueStore)(nil)

// GetValue returns the value stored under key.
func (s *valueStore) GetValue(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.store.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning value: %w", err)
	}
	return value, nil
}

// SetValue stores value under key.
func (s *valueStore) SetValue(ctx context.Context, key string, value []byte) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("saving value: %w", err)
	}
	return nil
}
