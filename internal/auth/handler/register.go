package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/credentials"
)

type signupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	account, err := h.reconciler.RegisterLocal(
		c.Request.Context(),
		req.Username,
		req.Password,
		req.Email,
	)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrDuplicateIdentity):
			c.JSON(http.StatusConflict, gin.H{"error": "username or email already registered"})
		case errors.Is(err, credentials.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		}
		return
	}

	h.respondWithToken(c, http.StatusCreated, account)
}
