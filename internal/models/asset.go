package models

import "strings"

// Asset is one stored capture as reported by the asset repository listing.
// CreatedAt is the raw RFC3339 string from the repository and may be empty
// when the repository reported no creation time.
type Asset struct {
	ID          string
	DisplayName string
	URL         string
	CreatedAt   string
}

// ViewItem is one entry of a visitor's visible sequence. Timestamp is unix
// seconds normalized from the repository's created-at field; assets with a
// missing or malformed created-at carry timestamp 0 and sort first.
type ViewItem struct {
	ID          string `json:"public_id"`
	DisplayName string `json:"filename"`
	URL         string `json:"url"`
	Timestamp   int64  `json:"timestamp"`
}

// DisplayName derives the export-facing file name from an asset identifier:
// the last path segment.
func DisplayName(id string) string {
	if idx := strings.LastIndex(id, "/"); idx >= 0 {
		return id[idx+1:]
	}
	return id
}
