// Bearer authentication and the admin gate. The caller's identity lands in
// the Gin context under "userID", "username" and "role".

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tbourn/clip-qa-backend/internal/auth"
	"github.com/tbourn/clip-qa-backend/internal/domain"
)

const (
	ctxKeyUserID   = "userID"
	ctxKeyUsername = "username"
	ctxKeyRole     = "role"
)

// TokenParser verifies a raw bearer token.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Authenticate requires a valid "Authorization: Bearer <token>" header and
// answers 401 otherwise.
func Authenticate(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, found := bearerToken(c.GetHeader("Authorization"))
		if !found {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		claims, err := tokens.Parse(raw)
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
			return
		}

		c.Set(ctxKeyUserID, claims.UserID())
		c.Set(ctxKeyUsername, claims.Username)
		c.Set(ctxKeyRole, claims.Role)

		ctx := c.Request.Context()
		ul := zerolog.Ctx(ctx).With().Str("user_id", claims.UserID()).Logger()
		c.Request = c.Request.WithContext(ul.WithContext(ctx))

		c.Next()
	}
}

// RequireAdmin answers 403 unless Authenticate stored the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxKeyRole) != domain.RoleAdmin {
			abortJSON(c, http.StatusForbidden, "forbidden", "admin role required")
			return
		}
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value. The
// scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortJSON(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"request_id": c.Writer.Header().Get(requestIDHeader),
		"code":       code,
		"message":    msg,
	})
}
