package config

import (
	"fmt"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// InitObjectStore connects to the photo-asset store. Returns (nil, "", nil)
// when STORAGE_ENDPOINT is unset: asset cleanup then becomes a no-op.
func InitObjectStore() (*minio.Client, string, error) {
	endpoint := os.Getenv("STORAGE_ENDPOINT")
	if endpoint == "" {
		return nil, "", nil
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(os.Getenv("STORAGE_ACCESS_KEY"), os.Getenv("STORAGE_SECRET_KEY"), ""),
		Secure: os.Getenv("STORAGE_USE_SSL") == "true",
	})
	if err != nil {
		return nil, "", fmt.Errorf("init object store: %w", err)
	}

	bucket := os.Getenv("STORAGE_BUCKET")
	if bucket == "" {
		bucket = "room-photos"
	}
	return client, bucket, nil
}
