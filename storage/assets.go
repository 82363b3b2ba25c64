package storage

import (
	"context"

	"github.com/minio/minio-go/v7"
)

// AssetCleaner removes a remotely stored photo asset. Callers treat removal
// as best-effort: a failed cleanup is logged, never surfaced to the client.
type AssetCleaner interface {
	Remove(ctx context.Context, assetID string) error
}

// MinioCleaner deletes photo objects from the configured bucket.
type MinioCleaner struct {
	client *minio.Client
	bucket string
}

func NewMinioCleaner(client *minio.Client, bucket string) *MinioCleaner {
	return &MinioCleaner{client: client, bucket: bucket}
}

func (c *MinioCleaner) Remove(ctx context.Context, assetID string) error {
	return c.client.RemoveObject(ctx, c.bucket, assetID, minio.RemoveObjectOptions{})
}

// NoopCleaner stands in when no object storage is configured.
type NoopCleaner struct{}

func (NoopCleaner) Remove(ctx context.Context, assetID string) error {
	return nil
}
