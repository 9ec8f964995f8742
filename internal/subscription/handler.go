package subscription

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/subhub/subscription-hub/internal/store"
)

// Handler exposes HTTP handlers for subscription resources.
type Handler struct {
	svc Service
	log *slog.Logger
}

func NewHandler(svc Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	group := router.Group("/subscriptions")
	group.POST("", h.create)
	group.GET("", h.list)
	group.GET("/stats/summary", h.summary)
	group.GET("/:id", h.getByID)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.delete)
}

type createSubscriptionRequest struct {
	Name            string   `json:"name" binding:"required"`
	ServiceProvider string   `json:"service_provider" binding:"required"`
	Amount          *float64 `json:"amount" binding:"required,gte=0"`
	Currency        string   `json:"currency" binding:"omitempty,len=3"`
	BillingCycle    string   `json:"billing_cycle" binding:"required,oneof=weekly monthly quarterly yearly"`
	NextBillingDate string   `json:"next_billing_date" binding:"required,datetime=2006-01-02"`
	Status          string   `json:"status" binding:"omitempty,oneof=active cancelled paused"`
	PaymentMethod   *string  `json:"payment_method"`
	Description     *string  `json:"description"`
	Category        *string  `json:"category"`
}

// create godoc
// @Summary Create a subscription
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param subscription body createSubscriptionRequest true "Subscription fields"
// @Success 201 {object} store.Subscription
// @Failure 400 {object} map[string]string
// @Router /subscriptions [post]
func (h *Handler) create(c *gin.Context) {
	var req createSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.svc.Create(c.Request.Context(), CreateParams{
		Name:            strings.TrimSpace(req.Name),
		ServiceProvider: strings.TrimSpace(req.ServiceProvider),
		Amount:          *req.Amount,
		Currency:        req.Currency,
		BillingCycle:    req.BillingCycle,
		NextBillingDate: req.NextBillingDate,
		Status:          req.Status,
		PaymentMethod:   req.PaymentMethod,
		Description:     req.Description,
		Category:        req.Category,
	})
	if err != nil {
		h.log.Error("create subscription", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// list godoc
// @Summary List subscriptions
// @Tags subscriptions
// @Produce json
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by category"
// @Success 200 {array} store.Subscription
// @Router /subscriptions [get]
func (h *Handler) list(c *gin.Context) {
	var filter ListFilter
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if category := c.Query("category"); category != "" {
		filter.Category = &category
	}

	subs, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		h.log.Error("list subscriptions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, subs)
}

// getByID godoc
// @Summary Get a subscription by id
// @Tags subscriptions
// @Produce json
// @Param id path int true "Subscription id"
// @Success 200 {object} store.Subscription
// @Failure 404 {object} map[string]string
// @Router /subscriptions/{id} [get]
func (h *Handler) getByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	sub, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "subscription not found"})
			return
		}
		h.log.Error("get subscription", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sub)
}

type updateSubscriptionRequest struct {
	Name            *string  `json:"name" binding:"omitempty,min=1"`
	ServiceProvider *string  `json:"service_provider" binding:"omitempty,min=1"`
	Amount          *float64 `json:"amount" binding:"omitempty,gte=0"`
	Currency        *string  `json:"currency" binding:"omitempty,len=3"`
	BillingCycle    *string  `json:"billing_cycle" binding:"omitempty,oneof=weekly monthly quarterly yearly"`
	NextBillingDate *string  `json:"next_billing_date" binding:"omitempty,datetime=2006-01-02"`
	Status          *string  `json:"status" binding:"omitempty,oneof=active cancelled paused"`
	PaymentMethod   *string  `json:"payment_method"`
	Description     *string  `json:"description"`
	Category        *string  `json:"category"`
}

// update godoc
// @Summary Partially update a subscription
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param id path int true "Subscription id"
// @Param subscription body updateSubscriptionRequest true "Fields to change"
// @Success 200 {object} store.Subscription
// @Failure 404 {object} map[string]string
// @Router /subscriptions/{id} [put]
func (h *Handler) update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req updateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := UpdateParams{
		Amount:          req.Amount,
		Currency:        req.Currency,
		BillingCycle:    req.BillingCycle,
		NextBillingDate: req.NextBillingDate,
		Status:          req.Status,
		PaymentMethod:   req.PaymentMethod,
		Description:     req.Description,
		Category:        req.Category,
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		params.Name = &trimmed
	}
	if req.ServiceProvider != nil {
		trimmed := strings.TrimSpace(*req.ServiceProvider)
		params.ServiceProvider = &trimmed
	}

	sub, err := h.svc.Update(c.Request.Context(), id, params)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "subscription not found"})
			return
		}
		h.log.Error("update subscription", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sub)
}

// delete godoc
// @Summary Delete a subscription and its payments
// @Tags subscriptions
// @Produce json
// @Param id path int true "Subscription id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /subscriptions/{id} [delete]
func (h *Handler) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "subscription not found"})
			return
		}
		h.log.Error("delete subscription", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription deleted successfully"})
}

// summary godoc
// @Summary Aggregate subscription statistics
// @Tags subscriptions
// @Produce json
// @Success 200 {object} stats.Summary
// @Router /subscriptions/stats/summary [get]
func (h *Handler) summary(c *gin.Context) {
	sum, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		h.log.Error("subscription summary", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sum)
}
