package ports

import (
	"context"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/manifest"
)

// ManifestRepository defines the persistence contract for handover manifests.
type ManifestRepository interface {
	// Add persists a new manifest.
	Add(ctx context.Context, aggregate *manifest.Manifest) error

	// Get retrieves a manifest by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*manifest.Manifest, error)
}
