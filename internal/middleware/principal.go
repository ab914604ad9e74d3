package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/principal"
)

// unexported, collision-proof context key
type principalContextKeyType struct{}

var principalKey = principalContextKeyType{}

// PrincipalFromContext extracts the resolved principal for this request.
// Requests that never passed ResolvePrincipal yield Anonymous.
func PrincipalFromContext(ctx context.Context) principal.Principal {
	p, ok := ctx.Value(principalKey).(principal.Principal)
	if !ok {
		return principal.Anonymous
	}
	return p
}

// ResolvePrincipal resolves the Authorization header into a Principal on
// every request and attaches it to the request context. It never rejects:
// anonymous requests proceed, and the authorization guard decides what
// anonymity may touch.
func ResolvePrincipal(resolver *principal.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := resolver.Resolve(c.GetHeader("Authorization"))

		ctx := context.WithValue(c.Request.Context(), principalKey, p)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
