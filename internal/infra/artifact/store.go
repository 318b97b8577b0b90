// Package artifact stores rendered tracking artifacts and resolves the URL handed to clients.
package artifact

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"

	"storefront/config"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/gcsblob"  // gs:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
)

const (
	objectPrefix   = "tracking/"
	pngContentType = "image/png"
	dataURLPrefix  = "data:image/png;base64,"
)

// Params holds dependencies for the artifact store, injected by Fx.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewTrackingArtifactStore opens the configured bucket, or falls back to inline data URLs
// when no bucket is configured.
func NewTrackingArtifactStore(params Params) (service.TrackingArtifactStore, error) {
	bucketURL := strings.TrimSpace(params.Config.Tracking.BucketURL)
	if bucketURL == "" {
		params.Logger.Info("Tracking artifacts stored inline as data URLs")

		return NewDataURLStore(), nil
	}

	bucket, err := blob.OpenBucket(params.Ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open tracking bucket %s", bucketURL)
	}

	params.Logger.Info("Tracking artifacts stored in bucket", slog.String("bucket", bucketURL))

	store := NewBlobStore(bucket, params.Config.Tracking.PublicBaseURL)
	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return store.Close()
		},
	})

	return store, nil
}

// dataURLStore embeds the PNG into the reference itself.
type dataURLStore struct{}

// NewDataURLStore returns a store that encodes artifacts as data URLs.
func NewDataURLStore() service.TrackingArtifactStore {
	return dataURLStore{}
}

func (dataURLStore) Store(_ context.Context, _ uuid.UUID, png []byte) (string, error) {
	if len(png) == 0 {
		return "", errors.New("empty tracking artifact")
	}

	return dataURLPrefix + base64.StdEncoding.EncodeToString(png), nil
}

// BlobStore writes artifacts to a gocloud.dev bucket.
type BlobStore struct {
	bucket  *blob.Bucket
	baseURL string
}

// NewBlobStore wraps an opened bucket. baseURL is joined with the object key to form the reference.
func NewBlobStore(bucket *blob.Bucket, baseURL string) *BlobStore {
	return &BlobStore{
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Store writes tracking/<orderID>.png and returns its public URL.
func (s *BlobStore) Store(ctx context.Context, orderID uuid.UUID, png []byte) (string, error) {
	if len(png) == 0 {
		return "", errors.New("empty tracking artifact")
	}

	key := ObjectKey(orderID)
	if err := s.bucket.WriteAll(ctx, key, png, &blob.WriterOptions{
		ContentType:  pngContentType,
		CacheControl: "public, max-age=31536000, immutable",
	}); err != nil {
		return "", errors.Wrapf(err, "failed to write tracking artifact %s", key)
	}

	if s.baseURL == "" {
		return key, nil
	}

	return s.baseURL + "/" + key, nil
}

// Close releases the bucket.
func (s *BlobStore) Close() error {
	return errors.WithStack(s.bucket.Close())
}

// ObjectKey is the bucket key of an order's tracking artifact.
func ObjectKey(orderID uuid.UUID) string {
	return objectPrefix + orderID.String() + ".png"
}
