package ports

import (
	"context"
)

// LabelStore is the outbound contract to the label blob storage. Records in
// LabelRepository carry the keys; the store carries the bytes.
type LabelStore interface {
	// Put stores a label document under the given key with the given
	// content type, overwriting any previous object.
	Put(ctx context.Context, key string, content []byte, contentType string) error

	// Get retrieves a label document by key.
	Get(ctx context.Context, key string) ([]byte, error)
}
