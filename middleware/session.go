package middleware

import (
	"net/http"

	"github.com/bookbazaar/storefront-api/auth"
	"github.com/gin-gonic/gin"
)

// SessionCookie carries the signed storefront session id.
const SessionCookie = "storefront_session"

const sessionMaxAge = 30 * 24 * 60 * 60 // seconds, matches storage TTL

// Session resolves the visitor's session id from the signed cookie,
// minting a fresh session for first-time visitors or when the cookie
// does not validate. Every downstream handler can rely on a session id
// being present in the context.
func Session(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := ""
		if raw, err := c.Cookie(SessionCookie); err == nil && raw != "" {
			if parsed, err := auth.ParseSessionToken(secret, raw); err == nil {
				sid = parsed
			}
		}

		if sid == "" {
			sid = auth.NewSessionID()
			signed, err := auth.IssueSessionToken(secret, sid)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
				c.Abort()
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, signed, sessionMaxAge, "/", "", false, true)
		}

		c.Set("session_id", sid)
		c.Next()
	}
}

// SessionID returns the session id the Session middleware resolved.
func SessionID(c *gin.Context) string {
	return c.GetString("session_id")
}
