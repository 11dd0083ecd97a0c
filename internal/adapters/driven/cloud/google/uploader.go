package google

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/storage/v1"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.AssetUploader = (*Uploader)(nil)

// PublicBaseURL is where objects of public buckets are served from.
const PublicBaseURL = "https://storage.googleapis.com"

// assetPrefix groups uploaded assets inside the bucket.
const assetPrefix = "assets"

// Uploader publishes assets to a Cloud Storage bucket.
type Uploader struct {
	objects *storage.ObjectsService
	bucket  string
	limiter *RateLimiter
}

// NewUploader creates an uploader for the configured bucket.
func NewUploader(ctx context.Context, cfg domain.CloudSettings, opts ...option.ClientOption) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: %w: cloud.bucket is required", domain.ErrInvalidInput)
	}

	svc, err := storage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage service: %w", err)
	}

	return &Uploader{
		objects: svc.Objects,
		bucket:  cfg.Bucket,
		limiter: NewRateLimiter(cfg.RequestsPerSecond),
	}, nil
}

// Upload stores the content under assets/name and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	object := &storage.Object{
		Name:        path.Join(assetPrefix, name),
		ContentType: contentType,
	}

	if err := u.limiter.Wait(ctx); err != nil {
		return "", domain.NewStoreError(domain.KindNetwork, "upload asset", err)
	}
	stored, err := u.objects.Insert(u.bucket, object).
		Media(r, googleapi.ContentType(contentType)).
		Context(ctx).
		Do()
	if err != nil {
		if IsRateLimited(err) {
			u.limiter.RecordRateLimitError(retryAfter(err))
		}
		return "", WrapError("upload asset", err)
	}

	return PublicBaseURL + "/" + u.bucket + "/" + (&url.URL{Path: stored.Name}).EscapedPath(), nil
}
