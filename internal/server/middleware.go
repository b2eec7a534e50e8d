package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/services/auction/helpers"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

const (
	requestIDContextKey = "request_id"
	requestIDHeaderName = "X-Request-ID"
)

// Authenticator resolves a session token to its user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.User, error)
}

// RequestIDFromContext returns the request ID or an empty string when unavailable
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(requestIDContextKey)
}

// RequestIDMiddleware reuses the caller's X-Request-ID or assigns a new one
func RequestIDMiddleware(c *gin.Context) {
	requestID := strings.TrimSpace(c.GetHeader(requestIDHeaderName))
	if len(requestID) > 128 {
		requestID = requestID[:128]
	}
	if requestID == "" {
		requestID = utils.GenerateID()
	}

	c.Set(requestIDContextKey, requestID)
	c.Writer.Header().Set(requestIDHeaderName, requestID)
	c.Next()
}

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"latency":    time.Since(start).String(),
		"request_id": RequestIDFromContext(c),
		"user_id":    helpers.CurrentUserID(c),
	})
}

// SessionMiddleware attaches the user named by the session cookie, if any.
// A cookie that no longer names a live session is cleared.
func SessionMiddleware(auth Authenticator, cookie helpers.SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.Token(c)
		if token == "" {
			c.Next()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
			helpers.SetCurrentUser(c, user)
		case errors.Is(err, auctionerrors.ErrInvalidSession):
			utils.Debug("SessionMiddleware: clearing stale session cookie", map[string]any{
				"request_id": RequestIDFromContext(c),
				"error":      err.Error(),
			})
			cookie.Clear(c)
		default:
			utils.Error("SessionMiddleware: failed to authenticate session", map[string]any{
				"request_id": RequestIDFromContext(c),
				"error":      err.Error(),
			})
		}
		c.Next()
	}
}

// RequireAuth sends anonymous visitors to the login page, remembering where they were going
func RequireAuth(c *gin.Context) {
	if _, ok := helpers.CurrentUser(c); ok {
		c.Next()
		return
	}
	c.Redirect(http.StatusFound, helpers.LoginURL(c.Request.URL.RequestURI()))
	c.Abort()
}
