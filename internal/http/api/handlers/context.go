package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/voxedgemedia/media-api/internal/auth"
)

// principalKey is the gin context key carrying the resolved principal.
const principalKey = "principal"

// SetPrincipal attaches the resolved principal to the request context.
func SetPrincipal(c *gin.Context, principal auth.Principal) {
	c.Set(principalKey, principal)
}

// CurrentPrincipal returns the principal resolved by the auth middleware.
func CurrentPrincipal(c *gin.Context) (auth.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return auth.Principal{}, false
	}
	principal, ok := value.(auth.Principal)
	return principal, ok
}
