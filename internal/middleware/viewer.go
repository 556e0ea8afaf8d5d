package middleware

import (
	"strconv"
	"strings"

	"github.com/dfryer1193/blogfeed/blog/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	UserIDHeader   = "X-User-ID"
	UserRoleHeader = "X-User-Role"
	viewerKey      = "viewer"
)

// ResolveViewer reads the identity headers set by the authenticating proxy.
// Missing or malformed headers leave the request anonymous.
func ResolveViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		var viewer domain.Viewer

		if raw := c.GetHeader(UserIDHeader); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				log.Debug().Str("header", raw).Msg("Ignoring malformed user ID header")
			} else {
				viewer.UserID = id
				viewer.IsAdmin = strings.EqualFold(c.GetHeader(UserRoleHeader), "admin")
			}
		}

		c.Set(viewerKey, viewer)
		c.Next()
	}
}

// ViewerFrom returns the viewer resolved for this request. Requests that did not
// pass through ResolveViewer are anonymous.
func ViewerFrom(c *gin.Context) domain.Viewer {
	if v, ok := c.Get(viewerKey); ok {
		if viewer, ok := v.(domain.Viewer); ok {
			return viewer
		}
	}
	return domain.Viewer{}
}
