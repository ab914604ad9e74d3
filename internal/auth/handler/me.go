package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vikasreddy148/Expense-Tracker-Application/internal/middleware"
)

type userResponse struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Provider string   `json:"provider"`
	Roles    []string `json:"roles"`
}

func (h *Handler) Me(c *gin.Context) {
	p := middleware.PrincipalFromContext(c.Request.Context())

	account, err := h.guard.RequireAuthenticated(c.Request.Context(), p)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	c.JSON(http.StatusOK, userResponse{
		ID:       account.ID,
		Username: account.Username,
		Email:    account.Email,
		Provider: string(account.Provider),
		Roles:    account.Roles,
	})
}

// Logout exists for API symmetry. Tokens are stateless, so logging out
// is the client discarding its copy.
func (h *Handler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
