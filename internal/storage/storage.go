package storage

import (
	"context"
	"errors"
)

// ErrObjectNotFound is returned by GetObject when the key does not exist.
var ErrObjectNotFound = errors.New("object not found in storage")

// ObjectStorage defines the interface for object storage operations.
type ObjectStorage interface {
	// PutObject stores body under objectKey, replacing any previous object.
	PutObject(ctx context.Context, objectKey string, body []byte, contentType string) error

	// GetObject returns the object's content or ErrObjectNotFound.
	GetObject(ctx context.Context, objectKey string) ([]byte, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}
