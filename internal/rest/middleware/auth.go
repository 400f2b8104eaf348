package middleware

import (
	"github.com/courseforge/courseforge/internal/types"
	"github.com/gin-gonic/gin"
)

// UserContextMiddleware copies the acting user's identity from the request
// headers into the request context. Session management lives outside this
// service; the core operations only ever read the explicit context values.
func UserContextMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	if userID := c.GetHeader("X-User-ID"); userID != "" {
		ctx = types.SetUserID(ctx, userID)
	}
	if email := c.GetHeader("X-User-Email"); email != "" {
		ctx = types.SetUserEmail(ctx, email)
	}

	c.Request = c.Request.WithContext(ctx)
	c.Next()
}
