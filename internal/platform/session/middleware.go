// Package session provides the server-side session store and the Gin
// middleware that resolves the session cookie.
package session

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"nutrilens_backend/internal/api"
	"nutrilens_backend/internal/feature/auth/domain/entity"
)

// CookieName is the name of the session cookie.
const CookieName = "nutrilens_session"

// Context keys populated by the middleware.
const (
	ContextUserID    = "userID"
	ContextSessionID = "sessionID"
)

// TokenParser verifies a signed cookie value and extracts the session ID.
type TokenParser interface {
	ParseSessionToken(token string) (string, error)
}

// SessionFinder loads a session by ID.
type SessionFinder interface {
	FindByID(ctx context.Context, id string) (*entity.Session, error)
}

// AuthRequired returns a Gin middleware that resolves the session cookie
// and restricts access to requests with a valid, unexpired session.
func AuthRequired(tokens TokenParser, sessions SessionFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, sessionID, ok := resolve(c, tokens, sessions)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Not authenticated"})
			return
		}
		c.Set(ContextUserID, userID)
		c.Set(ContextSessionID, sessionID)
		c.Next()
	}
}

// AuthOptional resolves the session cookie when present but never rejects
// the request. Handlers that serve both anonymous and authenticated
// callers use this variant.
func AuthOptional(tokens TokenParser, sessions SessionFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, sessionID, ok := resolve(c, tokens, sessions); ok {
			c.Set(ContextUserID, userID)
			c.Set(ContextSessionID, sessionID)
		}
		c.Next()
	}
}

// resolve maps the request's cookie to an authenticated user via the
// signed token and the server-side session record.
func resolve(c *gin.Context, tokens TokenParser, sessions SessionFinder) (uint, string, bool) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie == "" {
		return 0, "", false
	}
	sid, err := tokens.ParseSessionToken(cookie)
	if err != nil {
		return 0, "", false
	}
	s, err := sessions.FindByID(c.Request.Context(), sid)
	if err != nil || !s.IsValid() {
		return 0, "", false
	}
	return s.UserID, s.ID, true
}

// UserID returns the authenticated user ID set by the middleware.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// SessionID returns the session ID set by the middleware.
func SessionID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextSessionID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
