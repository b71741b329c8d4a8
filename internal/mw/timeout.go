package mw

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// Deadline bounds each request with a per-request deadline. Store calls
// inherit it through the request context; a breach surfaces as
// context.DeadlineExceeded and maps to 504 at the response boundary.
func Deadline(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
