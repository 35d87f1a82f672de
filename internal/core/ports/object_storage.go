package ports

import (
	"context"
	"io"
)

// ObjectStorage abstracts the S3-compatible bucket holding provider images.
// Keys are opaque to callers; the public URL prefix is applied at the
// presentation boundary.
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, size int64, body io.Reader) error
	Delete(ctx context.Context, key string) error
}
