package handlers

import (
	"errors"
	"io"
	"strconv"

	"campus-events/internal/auth"
	"campus-events/internal/middleware"
	"campus-events/internal/models"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the request body into dst. An empty body is accepted
// when optional is true.
func bindJSON(c *gin.Context, dst interface{}, optional bool) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return true
		}
		middleware.RespondError(c, models.Validation("request body must be valid JSON"))
		return false
	}
	return true
}

// identity returns the authenticated caller. Routes using it are always
// mounted behind middleware.Authenticate.
func identity(c *gin.Context) (auth.Identity, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		middleware.RespondError(c, models.ErrMissingToken)
		return auth.Identity{}, false
	}
	return id, true
}

// queryInt parses an optional non-negative integer query parameter
func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, models.Validation(name + " must be a non-negative integer")
	}
	return value, nil
}
