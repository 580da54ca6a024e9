package middleware

import (
	"github.com/gin-gonic/gin"

	"metalpedia-backend/internal/shared/auth"
	"metalpedia-backend/internal/shared/response"
)

const principalKey = "principal"

// RequireIdentity resolves the bearer token into a principal and rejects anonymous callers
func RequireIdentity(resolver auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Token from "Authorization: Bearer <token>"
		token, err := auth.ParseBearer(c.GetHeader("Authorization"))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		// 2. Address + role
		principal, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		setPrincipal(c, principal)
		c.Next()
	}
}

// OptionalIdentity attaches a principal when a valid bearer token is present
func OptionalIdentity(resolver auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ParseBearer(c.GetHeader("Authorization"))
		if err == nil {
			if principal, err := resolver.Resolve(c.Request.Context(), token); err == nil {
				setPrincipal(c, principal)
			}
		}
		c.Next()
	}
}

// PrincipalFrom returns the principal set by RequireIdentity, or nil
func PrincipalFrom(c *gin.Context) *auth.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*auth.Principal)
	return p
}

func setPrincipal(c *gin.Context, p *auth.Principal) {
	c.Set(principalKey, p)
	c.Set("address", p.Address)
	c.Set("role", string(p.Role))
}
