package middleware

import (
	"net/http"

	"signup/utils"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "signup_session"

const sessionKeyContextKey = "sessionKey"

// SessionKeyMiddleware extracts the session key from the signed cookie into
// the request context. A missing, tampered, or malformed cookie simply leaves
// no key set; handlers treat that as "no active session" rather than an
// error.
func SessionKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
			if key, err := utils.ParseSessionKey(token); err == nil {
				c.Set(sessionKeyContextKey, key)
			}
		}
		c.Next()
	}
}

// SessionKey returns the session key extracted by SessionKeyMiddleware, or ""
// when the request carried none.
func SessionKey(c *gin.Context) string {
	return c.GetString(sessionKeyContextKey)
}

// SetSessionCookie issues the signed session cookie on the response.
func SetSessionCookie(c *gin.Context, signedToken string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, signedToken, 0, "/", "", false, true)
}

// ClearSessionCookie removes the session cookie after confirmation.
func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}
