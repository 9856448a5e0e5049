package export

import (
	"context"

	"github.com/rs/zerolog"
)

// Fetcher retrieves asset bytes by URL. Satisfied by the asset repository.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type ItemStatus string

const (
	StatusIncluded ItemStatus = "included"
	StatusSkipped  ItemStatus = "skipped"
)

// ItemResult records the fate of one view item during an export. Exports
// are best-effort folds over the view: an item either made it into the
// artifact or was skipped for a reason, and a skip never reorders or aborts
// the rest.
type ItemResult struct {
	ID     string
	Status ItemStatus
	Reason string
}

// Engine materializes a visible sequence into derived artifacts. Items are
// fetched one at a time, in sequence, so artifact order always matches view
// order at export start.
type Engine struct {
	fetcher Fetcher
	log     zerolog.Logger
}

func NewEngine(fetcher Fetcher, log zerolog.Logger) *Engine {
	return &Engine{
		fetcher: fetcher,
		log:     log,
	}
}

func included(id string) ItemResult {
	return ItemResult{ID: id, Status: StatusIncluded}
}

func skipped(id, reason string) ItemResult {
	return ItemResult{ID: id, Status: StatusSkipped, Reason: reason}
}

// Included counts the items that made it into the artifact.
func Included(results []ItemResult) int {
	n := 0
	for _, r := range results {
		if r.Status == StatusIncluded {
			n++
		}
	}
	return n
}
