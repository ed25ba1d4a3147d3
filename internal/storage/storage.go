package storage

import (
	"context"
	"time"
)

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

// Service stores report archives in remote object storage.
type Service interface {
	// PutObject writes body under bucket/key and returns the s3:// location.
	PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) (string, error)
	ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)
	DeleteObject(ctx context.Context, bucket, key string) error
}
