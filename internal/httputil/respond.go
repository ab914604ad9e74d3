// Package httputil maps the domain error taxonomy onto HTTP statuses.
package httputil

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth"
)

// RespondError writes the HTTP translation of a service error. Resource
// handlers deal with their own sentinels (e.g. not-found) first and fall
// back here for the shared taxonomy. Unmapped errors become opaque 500s
// so internals never leak.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, auth.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized to access this resource"})
	case errors.Is(err, auth.ErrInvalidCredential):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, auth.ErrDuplicateIdentity):
		c.JSON(http.StatusConflict, gin.H{"error": "username or email already registered"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
