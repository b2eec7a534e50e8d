package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookie describes the cookie carrying the session token
type SessionCookie struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// Set writes the token as an HttpOnly, SameSite=Lax cookie
func (sc SessionCookie) Set(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, token, int(sc.TTL.Seconds()), "/", "", sc.Secure, true)
}

// Clear expires the cookie in the browser
func (sc SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, "", -1, "/", "", sc.Secure, true)
}

// Token returns the token from the request cookie, or an empty string
func (sc SessionCookie) Token(c *gin.Context) string {
	token, err := c.Cookie(sc.Name)
	if err != nil {
		return ""
	}
	return token
}
