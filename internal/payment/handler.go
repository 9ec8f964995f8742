package payment

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/subhub/subscription-hub/internal/store"
)

// Handler exposes HTTP handlers for payment resources.
type Handler struct {
	svc Service
	log *slog.Logger
}

func NewHandler(svc Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	group := router.Group("/payments")
	group.POST("", h.create)
	group.GET("", h.list)
	group.GET("/:id", h.getByID)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.delete)
}

type createPaymentRequest struct {
	SubscriptionID *int     `json:"subscription_id" binding:"required"`
	Amount         *float64 `json:"amount" binding:"required,gte=0"`
	Currency       string   `json:"currency" binding:"omitempty,len=3"`
	PaymentDate    string   `json:"payment_date" binding:"required,datetime=2006-01-02"`
	Status         string   `json:"status" binding:"omitempty,oneof=completed pending failed refunded"`
	PaymentMethod  *string  `json:"payment_method"`
	TransactionID  *string  `json:"transaction_id"`
	Notes          *string  `json:"notes"`
}

// create godoc
// @Summary Record a payment against a subscription
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body createPaymentRequest true "Payment fields"
// @Success 201 {object} View
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /payments [post]
func (h *Handler) create(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.svc.Create(c.Request.Context(), CreateParams{
		SubscriptionID: *req.SubscriptionID,
		Amount:         *req.Amount,
		Currency:       req.Currency,
		PaymentDate:    req.PaymentDate,
		Status:         req.Status,
		PaymentMethod:  req.PaymentMethod,
		TransactionID:  req.TransactionID,
		Notes:          req.Notes,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "subscription not found"})
			return
		}
		h.log.Error("create payment", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, view)
}

// list godoc
// @Summary List payments
// @Tags payments
// @Produce json
// @Param subscription_id query int false "Filter by subscription"
// @Param status query string false "Filter by status"
// @Param start_date query string false "Inclusive lower bound on payment_date"
// @Param end_date query string false "Inclusive upper bound on payment_date"
// @Success 200 {array} View
// @Router /payments [get]
func (h *Handler) list(c *gin.Context) {
	var filter ListFilter
	if raw := c.Query("subscription_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscription_id"})
			return
		}
		filter.SubscriptionID = &id
	}
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if start := c.Query("start_date"); start != "" {
		filter.StartDate = &start
	}
	if end := c.Query("end_date"); end != "" {
		filter.EndDate = &end
	}

	views, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		h.log.Error("list payments", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, views)
}

// getByID godoc
// @Summary Get a payment by id
// @Tags payments
// @Produce json
// @Param id path int true "Payment id"
// @Success 200 {object} View
// @Failure 404 {object} map[string]string
// @Router /payments/{id} [get]
func (h *Handler) getByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	view, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
			return
		}
		h.log.Error("get payment", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

type updatePaymentRequest struct {
	SubscriptionID *int     `json:"subscription_id"`
	Amount         *float64 `json:"amount" binding:"omitempty,gte=0"`
	Currency       *string  `json:"currency" binding:"omitempty,len=3"`
	PaymentDate    *string  `json:"payment_date" binding:"omitempty,datetime=2006-01-02"`
	Status         *string  `json:"status" binding:"omitempty,oneof=completed pending failed refunded"`
	PaymentMethod  *string  `json:"payment_method"`
	TransactionID  *string  `json:"transaction_id"`
	Notes          *string  `json:"notes"`
}

// update godoc
// @Summary Partially update a payment
// @Tags payments
// @Accept json
// @Produce json
// @Param id path int true "Payment id"
// @Param payment body updatePaymentRequest true "Fields to change"
// @Success 200 {object} View
// @Failure 404 {object} map[string]string
// @Router /payments/{id} [put]
func (h *Handler) update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req updatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.svc.Update(c.Request.Context(), id, UpdateParams{
		SubscriptionID: req.SubscriptionID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		PaymentDate:    req.PaymentDate,
		Status:         req.Status,
		PaymentMethod:  req.PaymentMethod,
		TransactionID:  req.TransactionID,
		Notes:          req.Notes,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
			return
		}
		h.log.Error("update payment", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

// delete godoc
// @Summary Delete a payment
// @Tags payments
// @Produce json
// @Param id path int true "Payment id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /payments/{id} [delete]
func (h *Handler) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
			return
		}
		h.log.Error("delete payment", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully"})
}
