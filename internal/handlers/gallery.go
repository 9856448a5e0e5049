package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"boardcam/api/internal/export"
	"boardcam/api/internal/gallery"
	"boardcam/api/internal/ids"
	"boardcam/api/internal/middleware"
)

// ListImages returns the visitor's visible sequence, oldest first. The
// listing is bounded by the configured cap (default 500); assets beyond the
// cap are outside the view's horizon.
func (h HandlerSet) ListImages(c *gin.Context) {
	visitorID := middleware.VisitorID(c)

	items, err := h.views.Build(c.Request.Context(), visitorID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetImage resolves a single asset's URL for this visitor; excluded or
// unknown identifiers are indistinguishable and both yield 404.
func (h HandlerSet) GetImage(c *gin.Context) {
	visitorID := middleware.VisitorID(c)
	assetID := strings.TrimPrefix(c.Param("id"), "/")

	items, err := h.views.Build(c.Request.Context(), visitorID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	for _, item := range items {
		if item.ID == assetID || item.DisplayName == assetID {
			c.JSON(http.StatusOK, gin.H{"url": item.URL})
			return
		}
	}

	h.respondError(c, gallery.ErrNotFound)
}

// DeleteImage hides an asset from this visitor's view. The asset itself is
// untouched; other visitors keep seeing it.
func (h HandlerSet) DeleteImage(c *gin.Context) {
	visitorID := middleware.VisitorID(c)
	assetID := strings.TrimPrefix(c.Param("id"), "/")

	if err := h.store.Exclude(visitorID, assetID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h HandlerSet) DownloadArchive(c *gin.Context) {
	visitorID := middleware.VisitorID(c)

	items, err := h.views.Build(c.Request.Context(), visitorID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	exportID := ids.New()
	data, results, err := h.exports.Archive(c.Request.Context(), items)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.logExport(exportID, visitorID, "archive", results)

	c.Header("Content-Disposition", `attachment; filename="whiteboard_images.zip"`)
	c.Data(http.StatusOK, "application/zip", data)
}

func (h HandlerSet) DownloadDocument(c *gin.Context) {
	visitorID := middleware.VisitorID(c)

	items, err := h.views.Build(c.Request.Context(), visitorID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	exportID := ids.New()
	data, results, err := h.exports.Document(c.Request.Context(), items)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.logExport(exportID, visitorID, "document", results)

	c.Header("Content-Disposition", `attachment; filename="whiteboard_images.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h HandlerSet) logExport(exportID, visitorID, kind string, results []export.ItemResult) {
	h.log.Info().
		Str("export_id", exportID).
		Str("visitor_id", visitorID).
		Str("kind", kind).
		Int("items", len(results)).
		Int("included", export.Included(results)).
		Msg("export completed")

	for _, result := range results {
		if result.Status == export.StatusSkipped {
			h.log.Warn().
				Str("export_id", exportID).
				Str("asset_id", result.ID).
				Str("reason", result.Reason).
				Msg("export item skipped")
		}
	}
}
