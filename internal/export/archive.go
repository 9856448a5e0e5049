package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/klauspost/compress/zip"

	"boardcam/api/internal/models"
)

// Archive packs the view into a ZIP where each entry is named with a
// zero-padded 1-based ordinal prefix, so extracting and sorting the entries
// lexicographically reproduces the view's chronological order. Items whose
// fetch fails are skipped and leave a gap in the ordinals; the remaining
// entries keep their view positions.
func (e *Engine) Archive(ctx context.Context, items []models.ViewItem) ([]byte, []ItemResult, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	results := make([]ItemResult, 0, len(items))
	for i, item := range items {
		data, err := e.fetcher.Fetch(ctx, item.URL)
		if err != nil {
			e.log.Warn().Err(err).Str("asset_id", item.ID).Msg("archive entry skipped")
			results = append(results, skipped(item.ID, err.Error()))
			continue
		}

		entry, err := zw.Create(fmt.Sprintf("%03d_%s", i+1, item.DisplayName))
		if err != nil {
			return nil, nil, fmt.Errorf("create archive entry: %w", err)
		}
		if _, err := entry.Write(data); err != nil {
			return nil, nil, fmt.Errorf("write archive entry: %w", err)
		}
		results = append(results, included(item.ID))
	}

	if err := zw.Close(); err != nil {
		return nil, nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), results, nil
}
