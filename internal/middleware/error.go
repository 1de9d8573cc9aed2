package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"campus-events/internal/models"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Code    models.ErrorCode `json:"code"`
	Message string           `json:"message"`
}

// ErrorHandling recovers panics and answers them as INTERNAL_ERROR
func ErrorHandling() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("PANIC: %v\n%s", err, debug.Stack())
				if !c.Writer.Written() {
					c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
						Code:    models.CodeInternal,
						Message: "internal server error",
					})
				}
			}
		}()

		c.Next()
	}
}

// RespondError writes err as {"code", "message"} with the matching status.
// Causes are logged, never returned.
func RespondError(c *gin.Context, err error) {
	appErr := models.AsAppError(err)

	status := appErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}

	c.JSON(status, ErrorResponse{Code: appErr.Code, Message: appErr.Message})
}

// NotFoundHandler answers unknown routes
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Code: models.CodeNotFound, Message: "route not found"})
	}
}

// MethodNotAllowedHandler answers known routes called with the wrong method
func MethodNotAllowedHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Code: models.CodeNotFound, Message: "method not allowed"})
	}
}
