// Package storage abstracts where uploaded files land: a local directory
// in development, an S3-compatible bucket in production.
package storage

import (
	"context"
	"io"
)

// PutOptions carries optional metadata for a stored object.
type PutOptions struct {
	ContentType string
}

// Store is the file storage surface the upload handlers talk to. Paths are
// forward-slash relative keys; backends map them however they like.
type Store interface {
	Put(ctx context.Context, path string, r io.Reader, opts PutOptions) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}
