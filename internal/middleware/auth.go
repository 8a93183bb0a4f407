package middleware

import (
	"log"
	"net/http"
	"strings"

	"recortes/internal/domain"
	"recortes/internal/pkg/response"
	"recortes/internal/pkg/tokens"
	"recortes/internal/repository"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Auth extracts the bearer token, verifies it against the configured
// provider and resolves (or lazily provisions) the local user. The
// resolved identity is attached to the request context. Every failure
// is a 401; provider detail is logged, never returned.
func Auth(verifier tokens.Verifier, users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.AbortMessage(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
			response.AbortMessage(c, http.StatusUnauthorized, "Bearer token is missing")
			return
		}
		rawToken := strings.TrimSpace(parts[1])

		claims, err := verifier.Verify(c.Request.Context(), rawToken)
		if err != nil {
			log.Printf("auth_error reason=verify path=%s error=%q", c.Request.URL.Path, err.Error())
			response.AbortMessage(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := users.GetOrCreateByGoogleID(c.Request.Context(), claims.Subject, claims.Email, claims.Name)
		if err != nil {
			log.Printf("auth_error reason=user_lookup subject=%s error=%q", claims.Subject, err.Error())
			response.AbortMessage(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(identityKey, domain.Identity{ID: user.ID, Email: user.Email, Name: user.Name})
		c.Next()
	}
}

// IdentityFrom reads the authenticated identity from the context. The
// second return is false when the request never passed Auth.
func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok
}
