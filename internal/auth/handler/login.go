package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth"
)

type loginRequest struct {
	// Username accepts a username or an email address.
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token    string   `json:"token"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Provider string   `json:"provider"`
	Roles    []string `json:"roles"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	account, err := h.reconciler.AuthenticateLocal(
		c.Request.Context(),
		req.Username,
		req.Password,
	)
	if err != nil {
		// Unknown user and wrong password answer identically.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	h.respondWithToken(c, http.StatusOK, account)
}

func (h *Handler) respondWithToken(c *gin.Context, status int, account *auth.Account) {
	signed, err := h.codec.Issue(account.Username, account.Email, account.Roles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue credential"})
		return
	}

	c.JSON(status, authResponse{
		Token:    signed,
		Username: account.Username,
		Email:    account.Email,
		Provider: string(account.Provider),
		Roles:    account.Roles,
	})
}
