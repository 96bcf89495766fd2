package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors attached to the context into JSON error
// responses. Uncategorized errors are logged server-side and surface as
// a generic 500 so internal details never reach the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				requestID, _ := c.Get("RequestID")
				slog.Error("unhandled error", "error", err, "path", c.FullPath(), "request_id", requestID)
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
