package storage

import (
	"context"
	"io"
)

// ObjectStorage holds the uploaded bytes. The database only ever sees
// the public URL returned from Put.
type ObjectStorage interface {
	Put(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
}
