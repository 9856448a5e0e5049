package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type healthResponse struct {
	Status      string `json:"status"`
	Storage     string `json:"storage"`
	Events      string `json:"events"`
	Environment string `json:"environment"`
}

func (h HandlerSet) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	storageStatus := "ok"
	if h.objects == nil {
		storageStatus = "disabled"
	} else if err := h.objects.Ping(ctx); err != nil {
		storageStatus = "error"
		h.log.Error().Err(err).Msg("object store ping failed")
	}

	eventsStatus := "ok"
	if h.cache == nil {
		eventsStatus = "disabled"
	} else if err := h.cache.Ping(ctx).Err(); err != nil {
		eventsStatus = "error"
		h.log.Error().Err(err).Msg("redis ping failed")
	}

	c.JSON(http.StatusOK, healthResponse{
		Status:      "ok",
		Storage:     storageStatus,
		Events:      eventsStatus,
		Environment: h.cfg.Environment,
	})
}
