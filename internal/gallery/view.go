package gallery

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"boardcam/api/internal/models"
	"boardcam/api/internal/repository"
)

// DefaultMaxListResults bounds the repository listing consumed per view.
// Repositories holding more assets than this are silently beyond the view's
// horizon; the cap is a documented limitation of Build, not an error.
const DefaultMaxListResults = 500

// ViewBuilder merges the repository listing with a visitor's exclusion set
// into the visitor's visible sequence.
type ViewBuilder struct {
	repo   repository.AssetRepository
	store  *ExclusionStore
	prefix string
	limit  int
	log    zerolog.Logger
}

func NewViewBuilder(repo repository.AssetRepository, store *ExclusionStore, prefix string, limit int, log zerolog.Logger) *ViewBuilder {
	if limit <= 0 {
		limit = DefaultMaxListResults
	}
	return &ViewBuilder{
		repo:   repo,
		store:  store,
		prefix: prefix,
		limit:  limit,
		log:    log,
	}
}

// Build returns the visitor's visible sequence: the repository listing
// (bounded by the builder's limit) minus the visitor's exclusions, sorted
// ascending by normalized timestamp with ties broken by identifier. The
// result is a fresh snapshot on every call, never cached, never partial: a
// listing failure fails the whole view.
func (b *ViewBuilder) Build(ctx context.Context, visitorID string) ([]models.ViewItem, error) {
	filter, err := b.store.FilterFor(visitorID)
	if err != nil {
		return nil, err
	}

	assets, err := b.repo.List(ctx, b.prefix, b.limit)
	if err != nil {
		b.log.Error().Err(err).Str("visitor_id", visitorID).Msg("repository listing failed")
		return nil, fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}

	items := make([]models.ViewItem, 0, len(assets))
	for _, asset := range assets {
		if !filter.Visible(asset.ID) {
			continue
		}
		items = append(items, models.ViewItem{
			ID:          asset.ID,
			DisplayName: asset.DisplayName,
			URL:         asset.URL,
			Timestamp:   normalizeTimestamp(asset.CreatedAt),
		})
	}

	slices.SortStableFunc(items, func(x, y models.ViewItem) int {
		if x.Timestamp != y.Timestamp {
			if x.Timestamp < y.Timestamp {
				return -1
			}
			return 1
		}
		return strings.Compare(x.ID, y.ID)
	})

	return items, nil
}

// normalizeTimestamp parses a repository created-at string into unix
// seconds. Absent or malformed values become 0 so that one bad record never
// fails or hides the rest of the view.
func normalizeTimestamp(createdAt string) int64 {
	if createdAt == "" {
		return 0
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return 0
	}
	return t.Unix()
}
