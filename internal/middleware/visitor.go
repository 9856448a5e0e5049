package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"boardcam/api/internal/config"
	"boardcam/api/internal/gallery"
	"boardcam/api/internal/security"
)

const (
	visitorCookie     = "boardcam_visitor"
	visitorContextKey = "visitor_id"
)

// Visitor resolves the opaque visitor identity for gallery routes. A valid
// signed cookie yields the existing identity; anything else mints a fresh
// one and sets the cookie on the response. Either way the exclusion store
// entry is ensured before the handler runs, so handlers can assume a
// resolved identity with a live exclusion set.
func Visitor(cfg *config.AppConfig, store *gallery.ExclusionStore, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var visitorID string

		if token, err := c.Cookie(visitorCookie); err == nil && token != "" {
			if claims, err := security.ParseVisitorToken(token, cfg.Security.VisitorTokenSecret); err == nil {
				visitorID = claims.VisitorID
			}
		}

		if visitorID == "" {
			visitorID = uuid.NewString()
			token, err := security.GenerateVisitorToken(cfg.Security.VisitorTokenSecret, visitorID, cfg.Security.VisitorTokenTTL)
			if err != nil {
				log.Error().Err(err).Msg("visitor token mint failed")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":   "internal",
					"message": "could not establish visitor identity",
				})
				return
			}
			maxAge := int(cfg.Security.VisitorTokenTTL.Seconds())
			c.SetCookie(visitorCookie, token, maxAge, "/", "", cfg.Environment == "production", true)
		}

		if err := store.EnsureVisitor(visitorID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   gallery.ErrNoIdentity.Category,
				"message": gallery.ErrNoIdentity.Message,
			})
			return
		}

		c.Set(visitorContextKey, visitorID)
		c.Next()
	}
}

// VisitorID returns the identity resolved by the Visitor middleware, or ""
// when none was resolved.
func VisitorID(c *gin.Context) string {
	value, ok := c.Get(visitorContextKey)
	if !ok {
		return ""
	}
	id, _ := value.(string)
	return id
}
