package repository

import (
	"context"

	"boardcam/api/internal/models"
)

// AssetRepository is the contract against the remote object store holding
// all captures. List and Fetch are side-effect free; any call may fail or be
// slow, and callers decide the retry policy.
type AssetRepository interface {
	// List returns up to maxResults assets stored under prefix, in the
	// repository's own deterministic listing order.
	List(ctx context.Context, prefix string, maxResults int) ([]models.Asset, error)

	// Fetch retrieves the current byte content behind an asset URL. A
	// non-2xx response is an error, not a payload.
	Fetch(ctx context.Context, url string) ([]byte, error)

	// Upload stores data under folder/name and returns the resulting asset.
	Upload(ctx context.Context, data []byte, folder, name string) (models.Asset, error)
}
