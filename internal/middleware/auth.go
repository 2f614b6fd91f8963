package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kencs/dietadvisor-backend/internal/identity"
	"github.com/kencs/dietadvisor-backend/internal/model"
)

// identityKey is the gin context key the verified identity is stored under
const identityKey = "verifiedIdentity"

// RequireIdentity creates a middleware that extracts the bearer token
// and resolves it against the identity provider on every request. There
// is no cross-request identity cache: a revoked token stops working on
// the next call.
//
// Status mapping is uniform across all verbs: a missing or blank
// Authorization header is a malformed request (400); a token that is
// present but cannot be verified is an authorization failure (401).
func RequireIdentity(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := identity.ExtractToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, model.ErrorResponse{
				Status:  http.StatusText(http.StatusBadRequest),
				Message: err.Error(),
			})
			return
		}

		ident, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
				Status:  http.StatusText(http.StatusUnauthorized),
				Message: err.Error(),
			})
			return
		}

		// Make the verified identity available to handlers
		c.Set(identityKey, ident)

		c.Next()
	}
}

// IdentityFromContext returns the verified identity stored by
// RequireIdentity, or nil when the middleware did not run.
func IdentityFromContext(c *gin.Context) *identity.Identity {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	ident, ok := v.(*identity.Identity)
	if !ok {
		return nil
	}
	return ident
}
