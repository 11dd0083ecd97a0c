package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driven"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
	"github.com/custodia-labs/listing-studio/internal/logger"
)

// Ensure AssetResolver implements the interface.
var _ driving.AssetService = (*AssetResolver)(nil)

const assetKeyPrefix = "asset_"

// tempAsset is a stored blob exposed under a temporary URL. Consumers of
// the same reference share one entry.
type tempAsset struct {
	ref   domain.AssetRef
	token string
	blob  driven.Blob
	refs  int
}

type resolvedAsset struct {
	url     string
	once    sync.Once
	release func()
}

func (r *resolvedAsset) URL() string { return r.url }

func (r *resolvedAsset) Dispose() {
	if r.release == nil {
		return
	}
	r.once.Do(r.release)
}

// AssetResolver stores locally authored assets and resolves references to
// displayable URLs. Local keys become temporary URLs that live until every
// consumer has disposed of them.
type AssetResolver struct {
	blobs    driven.BlobStore
	uploader driven.AssetUploader

	mu      sync.Mutex
	byRef   map[domain.AssetRef]*tempAsset
	byToken map[string]*tempAsset
}

// NewAssetResolver creates a resolver. uploader may be nil.
func NewAssetResolver(blobs driven.BlobStore, uploader driven.AssetUploader) *AssetResolver {
	return &AssetResolver{
		blobs:    blobs,
		uploader: uploader,
		byRef:    make(map[domain.AssetRef]*tempAsset),
		byToken:  make(map[string]*tempAsset),
	}
}

// Store saves data under a fresh local key.
func (r *AssetResolver) Store(ctx context.Context, data []byte, contentType string) (domain.AssetRef, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: asset is empty", domain.ErrInvalidInput)
	}
	key := assetKeyPrefix + uuid.New().String()
	if err := r.blobs.Put(ctx, key, driven.Blob{Data: data, ContentType: contentType}); err != nil {
		return "", fmt.Errorf("store asset: %w", err)
	}
	return domain.AssetRef(key), nil
}

// Publish uploads a local asset and returns its remote URL. References
// that are already remote are returned as they are.
func (r *AssetResolver) Publish(ctx context.Context, ref domain.AssetRef) (domain.AssetRef, error) {
	if ref.Kind() == domain.AssetRemote {
		return ref, nil
	}
	if ref.Kind() != domain.AssetLocal {
		return "", fmt.Errorf("%w: only stored assets can be published", domain.ErrInvalidInput)
	}
	if r.uploader == nil {
		return "", fmt.Errorf("%w: no cloud bucket configured", domain.ErrNotImplemented)
	}
	blob, err := r.blobs.Get(ctx, string(ref))
	if err != nil {
		return "", fmt.Errorf("publish %s: %w", ref, err)
	}
	url, err := r.uploader.Upload(ctx, string(ref), blob.ContentType, bytes.NewReader(blob.Data))
	if err != nil {
		return "", fmt.Errorf("%w: upload %s: %w", domain.ErrExternalService, ref, err)
	}
	logger.Debug("published asset %s to %s", ref, url)
	return domain.AssetRef(url), nil
}

// Resolve maps ref to a displayable URL. Direct references resolve to
// themselves with a no-op Dispose.
func (r *AssetResolver) Resolve(ctx context.Context, ref domain.AssetRef) (driving.ResolvedAsset, error) {
	if ref.Kind() != domain.AssetLocal {
		return &resolvedAsset{url: string(ref)}, nil
	}

	if url, ok := r.acquire(ref); ok {
		return &resolvedAsset{url: url, release: func() { r.release(ref) }}, nil
	}

	blob, err := r.blobs.Get(ctx, string(ref))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("resolve %s: %w", ref, err)
		}
		return nil, fmt.Errorf("%w: resolve %s: %w", domain.ErrExternalService, ref, err)
	}

	r.mu.Lock()
	entry, ok := r.byRef[ref]
	if !ok {
		entry = &tempAsset{ref: ref, token: uuid.New().String(), blob: blob}
		r.byRef[ref] = entry
		r.byToken[entry.token] = entry
	}
	entry.refs++
	url := domain.TempAssetPrefix + entry.token
	r.mu.Unlock()

	return &resolvedAsset{url: url, release: func() { r.release(ref) }}, nil
}

func (r *AssetResolver) acquire(ref domain.AssetRef) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.byRef[ref]
	if !ok {
		return "", false
	}
	entry.refs++
	return domain.TempAssetPrefix + entry.token, true
}

func (r *AssetResolver) release(ref domain.AssetRef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.byRef[ref]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs > 0 {
		return
	}
	delete(r.byRef, ref)
	delete(r.byToken, entry.token)
}

// Open returns the content behind a temporary URL token.
func (r *AssetResolver) Open(token string) ([]byte, string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.byToken[token]
	if !ok {
		return nil, "", false
	}
	return entry.blob.Data, entry.blob.ContentType, true
}

// Active returns the number of live temporary URLs.
func (r *AssetResolver) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byToken)
}
