package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/gift-calendar/internal/auth"
)

// Gin context keys holding the authenticated principal.
const (
	userIDKey    = "userID"
	userEmailKey = "userEmail"
	userNameKey  = "userName"
)

// Trusted identity headers, honored only when no token verifier is set
// (local development behind an authenticating proxy).
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserEmail = "X-User-Email"
	HeaderUserName  = "X-User-Name"
)

// EnsureFunc provisions the caller's user row. It runs once per
// authenticated request before any handler.
type EnsureFunc func(ctx context.Context, id, email, name string) error

// UserIDFrom returns the authenticated user id, or "" for anonymous requests.
func UserIDFrom(c *gin.Context) string {
	v, _ := c.Get(userIDKey)
	return asString(v)
}

// UserEmailFrom returns the authenticated user's email, if asserted.
func UserEmailFrom(c *gin.Context) string {
	v, _ := c.Get(userEmailKey)
	return asString(v)
}

// UserNameFrom returns the authenticated user's display name, if asserted.
func UserNameFrom(c *gin.Context) string {
	v, _ := c.Get(userNameKey)
	return asString(v)
}

// Authenticate identifies the caller. With a verifier it reads an
// "Authorization: Bearer <jwt>" header and rejects invalid tokens with 401.
// Without one it trusts the X-User-* headers. Requests carrying neither stay
// anonymous; RequireUser gates the routes that need an identity.
//
// On success the principal is stored under "userID", "userEmail" and
// "userName", the request logger gains a user_id field, and ensure (if set)
// provisions the user row.
func Authenticate(verifier *auth.Verifier, ensure EnsureFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		var id auth.Identity
		if verifier != nil {
			raw := c.GetHeader("Authorization")
			if raw == "" {
				c.Next()
				return
			}
			tok, ok := strings.CutPrefix(raw, "Bearer ")
			if !ok || strings.TrimSpace(tok) == "" {
				abortUnauthorized(c, "malformed Authorization header")
				return
			}
			got, err := verifier.Verify(strings.TrimSpace(tok))
			if err != nil {
				abortUnauthorized(c, "invalid or expired token")
				return
			}
			id = *got
		} else {
			id = auth.Identity{
				UserID: strings.TrimSpace(c.GetHeader(HeaderUserID)),
				Email:  strings.TrimSpace(c.GetHeader(HeaderUserEmail)),
				Name:   strings.TrimSpace(c.GetHeader(HeaderUserName)),
			}
			if id.UserID == "" {
				c.Next()
				return
			}
		}

		c.Set(userIDKey, id.UserID)
		c.Set(userEmailKey, strings.ToLower(id.Email))
		c.Set(userNameKey, id.Name)

		l := LoggerFrom(c).With().Str("user_id", id.UserID).Logger()
		setLogger(c, &l)

		if ensure != nil {
			if err := ensure(c.Request.Context(), id.UserID, id.Email, id.Name); err != nil {
				l.Error().Err(err).Msg("provision user failed")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"request_id": RequestIDFrom(c),
					"code":       "internal_error",
					"message":    "could not load user profile",
				})
				return
			}
		}
		c.Next()
	}
}

// RequireUser rejects anonymous requests with 401.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserIDFrom(c) == "" {
			abortUnauthorized(c, "authentication required")
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Bearer realm="gift-calendar"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": RequestIDFrom(c),
		"code":       "unauthorized",
		"message":    msg,
	})
}
