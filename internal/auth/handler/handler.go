package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/principal"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/provider"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/reconciler"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/token"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/logger"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/oauth2state"
)

type Handler struct {
	providers   *provider.Registry
	reconciler  *reconciler.Reconciler
	guard       *principal.Guard
	codec       *token.Codec
	handshakes  oauth2state.Store
	redirectURI string // browser destination after a provider flow
}

func NewHandler(
	registry *provider.Registry,
	rec *reconciler.Reconciler,
	guard *principal.Guard,
	codec *token.Codec,
	handshakes oauth2state.Store,
	redirectURI string,
) *Handler {
	return &Handler{
		providers:   registry,
		reconciler:  rec,
		guard:       guard,
		codec:       codec,
		handshakes:  handshakes,
		redirectURI: redirectURI,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/auth/signup", h.Signup)
	r.POST("/api/auth/login", h.Login)
	r.GET("/api/auth/me", h.Me)
	r.POST("/api/auth/logout", h.Logout)

	r.GET("/oauth2/authorize/:provider", h.Authorize)
	r.GET("/oauth2/callback/:provider", h.Callback)
}

// Authorize starts a provider redirect flow: bind a fresh state to a
// server-side PKCE verifier, hand the state to the browser in a cookie,
// and send it to the provider's consent page.
func (h *Handler) Authorize(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unsupported auth provider",
		})
		return
	}

	state := generateState(c)
	verifier, challenge := generatePKCE()

	err = h.handshakes.Create(c.Request.Context(), state, oauth2state.Handshake{
		Provider:  string(p.Name()),
		Verifier:  verifier,
		CreatedAt: time.Now(),
	})
	if err != nil {
		logger.Error("failed to persist oauth2 handshake", map[string]any{
			"provider": providerName,
			"error":    err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to start login",
		})
		return
	}

	c.Redirect(http.StatusFound, p.AuthCodeURL(state, challenge))
}

// Callback finishes a provider redirect flow. The caller is a browser
// mid-redirect, not a program awaiting a response, so every failure ends
// in a redirect to the configured destination with a reason, never an
// in-band error and never a token.
func (h *Handler) Callback(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		h.redirectFailure(c, "unsupported auth provider")
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("provider callback returned error", map[string]any{
			"provider": providerName,
			"error":    errParam,
			"desc":     c.Query("error_description"),
		})
		h.redirectFailure(c, "provider rejected the login")
		return
	}

	if !validateState(c) {
		h.redirectFailure(c, "invalid state")
		return
	}

	handshake, err := h.handshakes.Consume(c.Request.Context(), c.Query("state"))
	if err != nil {
		logger.Error("failed to load oauth2 handshake", map[string]any{
			"error": err.Error(),
		})
		h.redirectFailure(c, "login attempt expired")
		return
	}
	if handshake == nil || handshake.Provider != string(p.Name()) {
		h.redirectFailure(c, "login attempt expired")
		return
	}

	code := c.Query("code")
	if code == "" {
		h.redirectFailure(c, "missing authorization code")
		return
	}

	identity, err := p.ExchangeCode(c.Request.Context(), code, handshake.Verifier)
	if err != nil {
		logger.Error("provider code exchange failed", map[string]any{
			"provider": providerName,
			"error":    err.Error(),
		})
		h.redirectFailure(c, "authentication failed")
		return
	}

	account, err := h.reconciler.Reconcile(c.Request.Context(), identity)
	if err != nil {
		logger.Error("identity reconciliation failed", map[string]any{
			"provider": providerName,
			"error":    err.Error(),
		})
		h.redirectFailure(c, reconcileFailureReason(err))
		return
	}

	signed, err := h.codec.Issue(account.Username, account.Email, account.Roles)
	if err != nil {
		h.redirectFailure(c, "failed to issue credential")
		return
	}

	logger.Info("provider login succeeded", map[string]any{
		"provider":   providerName,
		"account_id": account.ID,
	})

	h.redirectSuccess(c, signed, account)
}

func (h *Handler) redirectSuccess(c *gin.Context, signed string, account *auth.Account) {
	q := url.Values{}
	q.Set("token", signed)
	q.Set("username", account.Username)
	q.Set("email", account.Email)
	q.Set("provider", string(account.Provider))

	c.Redirect(http.StatusFound, h.redirectURI+"?"+q.Encode())
}

func (h *Handler) redirectFailure(c *gin.Context, reason string) {
	q := url.Values{}
	q.Set("error", "authentication_failed")
	q.Set("message", reason)

	c.Redirect(http.StatusFound, h.redirectURI+"?"+q.Encode())
}

func reconcileFailureReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrIdentityRejected):
		return "email not available from provider"
	case errors.Is(err, auth.ErrDuplicateIdentity):
		return "account conflict, retry login"
	default:
		return "authentication failed"
	}
}
