package server

import (
	"errors"
	"net/http"

	"github.com/amani-hq/amani/internal/resource"
	"github.com/amani-hq/amani/internal/restream"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var ErrUnauthenticated = errors.New("authentication required")

// ErrorHandlingMiddleware converts errors accumulated on the gin context into
// a single JSON envelope. Handlers report failures through AbortWithError and
// never write error bodies themselves.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, message := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, gin.H{
			"success": false,
			"message": message,
		})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, string) {
	var upstream *restream.UpstreamError
	switch {
	case errors.Is(err, resource.ErrInvalidIdentifier),
		errors.Is(err, resource.ErrValidation),
		errors.Is(err, resource.ErrDependencyNotFound):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, resource.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, "record not found"
	case errors.As(err, &upstream):
		return upstream.StatusCode, "upstream request failed"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
