package rest

import (
	"errors"
	"net/http"

	"github.com/dfryer1193/blogfeed/api"
	"github.com/dfryer1193/blogfeed/blog/domain"
	"github.com/dfryer1193/blogfeed/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrPostNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// abortJSON maps err to a status and a JSON body. Internal errors are logged
// and their detail is kept out of the response.
func abortJSON(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logInternal(c, err)
		msg = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, api.ErrorResponse{Error: msg})
}

func abortHTML(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logInternal(c, err)
	}
	c.Error(err)
	c.Abort()
	c.String(status, http.StatusText(status))
}

func logInternal(c *gin.Context, err error) {
	log.Error().
		Err(err).
		Str("requestID", middleware.RequestID(c)).
		Str("path", c.Request.URL.Path).
		Msg("Request failed")
}
