package driving

import (
	"context"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
)

// ResolvedAsset is a displayable URL for an asset reference.
// Dispose must be called once the URL is no longer rendered.
type ResolvedAsset interface {
	URL() string
	Dispose()
}

// AssetService stores and resolves image and video assets.
type AssetService interface {
	// Store saves bytes in the local blob store and returns their reference.
	Store(ctx context.Context, data []byte, contentType string) (domain.AssetRef, error)

	// Publish uploads a stored asset to cloud storage and returns its
	// remote reference. Returns domain.ErrNotImplemented without an uploader.
	Publish(ctx context.Context, ref domain.AssetRef) (domain.AssetRef, error)

	// Resolve maps a reference to a displayable URL.
	Resolve(ctx context.Context, ref domain.AssetRef) (ResolvedAsset, error)

	// Open returns the content behind a temporary URL token.
	Open(token string) ([]byte, string, bool)
}
