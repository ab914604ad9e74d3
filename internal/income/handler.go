package income

import (
	"errors"
	"net/http"
	"strconv"
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
	g := r.Group("/api/incomes")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/filter", h.Filter)
	g.GET("/sort", h.Sort)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

type incomeRequest struct {
	Description  string          `json:"description" binding:"required"`
	Source       string          `json:"source" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	DateOfIncome string          `json:"dateOfIncome" binding:"required"`
}

type incomeResponse struct {
	ID           int64           `json:"id"`
	Description  string          `json:"description"`
	Source       Source          `json:"source"`
	Amount       decimal.Decimal `json:"amount"`
	DateOfIncome string          `json:"dateOfIncome"`
}

func toResponse(in *Income) incomeResponse {
	return incomeResponse{
		ID:           in.ID,
		Description:  in.Description,
		Source:       in.Source,
		Amount:       in.Amount,
		DateOfIncome: in.DateOfIncome.Format(dateLayout),
	}
}

func toResponses(list []Income) []incomeResponse {
	out := make([]incomeResponse, 0, len(list))
	for i := range list {
		out = append(out, toResponse(&list[i]))
	}
	return out
}

func (h *Handler) Create(c *gin.Context) {
	in, ok := bindIncome(c)
	if !ok {
		return
	}

	p := middleware.PrincipalFromContext(c.Request.Context())
	created, err := h.service.Add(c.Request.Context(), p, *in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(created))
}

func (h *Handler) List(c *gin.Context) {
	p := middleware.PrincipalFromContext(c.Request.Context())
	list, err := h.service.List(c.Request.Context(), p, Filter{}, Sort{})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponses(list))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p := middleware.PrincipalFromContext(c.Request.Context())
	in, err := h.service.Get(c.Request.Context(), p, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(in))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	in, ok := bindIncome(c)
	if !ok {
		return
	}

	p := middleware.PrincipalFromContext(c.Request.Context())
	updated, err := h.service.Update(c.Request.Context(), p, id, *in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(updated))
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p := middleware.PrincipalFromContext(c.Request.Context())
	if err := h.service.Delete(c.Request.Context(), p, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "income deleted successfully"})
}

func (h *Handler) Filter(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := middleware.PrincipalFromContext(c.Request.Context())
	list, err := h.service.List(c.Request.Context(), p, f, Sort{})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponses(list))
}

func (h *Handler) Sort(c *gin.Context) {
	sort := Sort{
		By:   c.Query("sortBy"),
		Desc: c.DefaultQuery("order", "asc") == "desc",
	}

	p := middleware.PrincipalFromContext(c.Request.Context())
	list, err := h.service.List(c.Request.Context(), p, Filter{}, sort)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponses(list))
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "income not found"})
	case errors.Is(err, errInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		httputil.RespondError(c, err)
	}
}

func bindIncome(c *gin.Context) (*Income, bool) {
	var req incomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return nil, false
	}

	source, err := ParseSource(req.Source)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	date, err := time.Parse(dateLayout, req.DateOfIncome)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dateOfIncome must be YYYY-MM-DD"})
		return nil, false
	}

	return &Income{
		Description:  req.Description,
		Source:       source,
		Amount:       req.Amount,
		DateOfIncome: date,
	}, true
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func filterFromQuery(c *gin.Context) (Filter, error) {
	var f Filter

	if v := c.Query("source"); v != "" {
		source, err := ParseSource(v)
		if err != nil {
			return Filter{}, err
		}
		f.Source = &source
	}
	if v := c.Query("startDate"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return Filter{}, errors.New("startDate must be YYYY-MM-DD")
		}
		f.StartDate = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return Filter{}, errors.New("endDate must be YYYY-MM-DD")
		}
		f.EndDate = &t
	}
	if v := c.Query("minAmount"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return Filter{}, errors.New("minAmount must be a number")
		}
		f.MinAmount = &d
	}
	if v := c.Query("maxAmount"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return Filter{}, errors.New("maxAmount must be a number")
		}
		f.MaxAmount = &d
	}
	return f, nil
}
