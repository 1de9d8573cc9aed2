package middleware

import (
	"crypto/subtle"
	"strings"

	"campus-events/internal/auth"
	"campus-events/internal/models"

	"github.com/gin-gonic/gin"
)

// Header names of the credential exchange
const (
	HeaderAccessToken  = "x-auth-token"
	HeaderRefreshToken = "x-refresh-token"
	HeaderNewToken     = "x-new-token"
	HeaderServiceKey   = "x-service-key"
)

const identityKey = "identity"

// Authenticator resolves the caller from the credential pair
type Authenticator interface {
	Authenticate(accessToken, refreshToken string) (auth.Identity, string, error)
}

// Authenticate requires a valid credential pair. When the access token had
// to be renewed from the refresh token the new one is sent back in
// x-new-token and the request proceeds with the refreshed identity.
func Authenticate(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, renewed, err := authenticator.Authenticate(AccessToken(c), c.GetHeader(HeaderRefreshToken))
		if err != nil {
			RespondError(c, err)
			c.Abort()
			return
		}

		if renewed != "" {
			c.Header(HeaderNewToken, renewed)
			// downstream calls made on behalf of this request need a live token
			c.Request.Header.Set(HeaderAccessToken, renewed)
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireServiceKey admits only callers presenting key in x-service-key.
// An empty key rejects every request.
func RequireServiceKey(key string) gin.HandlerFunc {
	expected := []byte(key)
	return func(c *gin.Context) {
		given := []byte(strings.TrimSpace(c.GetHeader(HeaderServiceKey)))
		if len(expected) == 0 || subtle.ConstantTimeCompare(given, expected) != 1 {
			RespondError(c, models.ErrInvalidServiceKey)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole rejects callers whose role is not one of roles. It must run
// after Authenticate.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			RespondError(c, models.ErrMissingToken)
			c.Abort()
			return
		}
		if err := auth.RequireRole(identity, roles...); err != nil {
			RespondError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the identity stored by Authenticate
func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return auth.Identity{}, false
	}
	identity, ok := value.(auth.Identity)
	return identity, ok
}

// AccessToken reads the access token from x-auth-token, falling back to an
// Authorization bearer header
func AccessToken(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader(HeaderAccessToken)); token != "" {
		return token
	}

	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
