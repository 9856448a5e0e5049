package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"boardcam/api/internal/gallery"
	"boardcam/api/internal/middleware"
)

// UploadImage ingests one capture from a multipart form. This exists for
// producers without direct repository access (and for manual testing); the
// capture device usually writes straight into the object store.
func (h HandlerSet) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.respondError(c, gallery.ErrEmptyInput)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.log.Error().Err(err).Msg("read upload body failed")
		h.respondError(c, gallery.ErrEmptyInput)
		return
	}

	asset, err := h.ingest.Ingest(c.Request.Context(), data, header.Filename)
	if err != nil {
		h.log.Warn().Err(err).Str("visitor_id", middleware.VisitorID(c)).Msg("ingest rejected")
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "upload successful",
		"public_id": asset.ID,
		"url":       asset.URL,
	})
}
