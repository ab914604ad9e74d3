package dashboard

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/vikasreddy148/Expense-Tracker-Application/internal/httputil"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/middleware"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	g := r.Group("/api/dashboard")
	g.GET("/pnl", h.TotalPnL)
	g.GET("/pnl/range", h.PnLByRange)
}

type pnlResponse struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	ProfitLoss   decimal.Decimal `json:"profitLoss"`
	StartDate    string          `json:"startDate,omitempty"`
	EndDate      string          `json:"endDate,omitempty"`
}

func toResponse(p *PnL) pnlResponse {
	resp := pnlResponse{
		TotalIncome:  p.TotalIncome,
		TotalExpense: p.TotalExpense,
		ProfitLoss:   p.ProfitLoss,
	}
	if p.StartDate != nil {
		resp.StartDate = p.StartDate.Format(dateLayout)
	}
	if p.EndDate != nil {
		resp.EndDate = p.EndDate.Format(dateLayout)
	}
	return resp
}

func (h *Handler) TotalPnL(c *gin.Context) {
	p := middleware.PrincipalFromContext(c.Request.Context())

	pnl, err := h.service.TotalPnL(c.Request.Context(), p)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(pnl))
}

func (h *Handler) PnLByRange(c *gin.Context) {
	start, err := time.Parse(dateLayout, c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate must be YYYY-MM-DD"})
		return
	}
	end, err := time.Parse(dateLayout, c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must be YYYY-MM-DD"})
		return
	}

	p := middleware.PrincipalFromContext(c.Request.Context())
	pnl, err := h.service.PnLByRange(c.Request.Context(), p, start, end)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(pnl))
}
