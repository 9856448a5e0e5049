package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"boardcam/api/internal/config"
	"boardcam/api/internal/export"
	"boardcam/api/internal/gallery"
	"boardcam/api/internal/middleware"
	"boardcam/api/internal/repository"
	"boardcam/api/internal/service"
	"boardcam/api/internal/storage"
)

type HandlerSet struct {
	log     zerolog.Logger
	cfg     *config.AppConfig
	store   *gallery.ExclusionStore
	views   *gallery.ViewBuilder
	exports *export.Engine
	ingest  *service.IngestService
	cache   *redis.Client
	objects *storage.ObjectStore
}

func NewHandlerSet(log zerolog.Logger, cfg *config.AppConfig, store *gallery.ExclusionStore, repo repository.AssetRepository, cache *redis.Client, objects *storage.ObjectStore) HandlerSet {
	views := gallery.NewViewBuilder(repo, store, cfg.Storage.CapturesFolder, cfg.Gallery.MaxListResults, log)
	exports := export.NewEngine(repo, log)
	ingest := service.NewIngestService(repo, cache, cfg, log)

	return HandlerSet{
		log:     log,
		cfg:     cfg,
		store:   store,
		views:   views,
		exports: exports,
		ingest:  ingest,
		cache:   cache,
		objects: objects,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	visitor := router.Group("")
	visitor.Use(middleware.Visitor(h.cfg, h.store, h.log))
	{
		visitor.GET("/images", h.ListImages)
		visitor.GET("/image/*id", h.GetImage)
		visitor.DELETE("/delete/*id", h.DeleteImage)
		visitor.GET("/download", h.DownloadArchive)
		visitor.GET("/download-pdf", h.DownloadDocument)
		visitor.POST("/upload", h.UploadImage)
	}
}

// respondError maps the gallery error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is an internal error with no detail leaked.
func (h HandlerSet) respondError(c *gin.Context, err error) {
	var gerr *gallery.Error
	if !errors.As(err, &gerr) {
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal",
			"message": "internal server error",
		})
		return
	}

	status := http.StatusInternalServerError
	switch gerr.Category {
	case gallery.ErrNoIdentity.Category:
		status = http.StatusUnauthorized
	case gallery.ErrNotFound.Category:
		status = http.StatusNotFound
	case gallery.ErrEmptyInput.Category, gallery.ErrEmptyFilename.Category, gallery.ErrUnsupportedMedia.Category:
		status = http.StatusBadRequest
	case gallery.ErrRepositoryUnavailable.Category:
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{
		"error":   gerr.Category,
		"message": gerr.Message,
	})
}
