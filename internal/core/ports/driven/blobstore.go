package driven

import (
	"context"
	"io"
)

// Blob is stored binary content with its media type.
type Blob struct {
	Data        []byte
	ContentType string
}

// BlobStore is key-based binary storage for locally authored assets.
type BlobStore interface {
	// Put stores data under key, replacing any previous content.
	Put(ctx context.Context, key string, blob Blob) error

	// Get retrieves the blob stored under key.
	// Returns domain.ErrNotFound if the key is unknown.
	Get(ctx context.Context, key string) (Blob, error)

	// Delete removes key. Deleting an unknown key is not an error.
	Delete(ctx context.Context, key string) error
}

// AssetUploader publishes asset bytes to cloud storage.
type AssetUploader interface {
	// Upload stores the content under name and returns its public URL.
	Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

// KeyValueStore stores arbitrary values by key.
type KeyValueStore interface {
	// GetValue returns the value stored under key.
	// Returns domain.ErrNotFound if the key is unknown.
	GetValue(ctx context.Context, key string) ([]byte, error)

	// SetValue stores value under key.
	SetValue(ctx context.Context, key string, value []byte) error
}
