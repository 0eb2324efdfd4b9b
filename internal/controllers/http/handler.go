package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"order-service/internal/domain"
	"order-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

type Handler struct {
	service *services.OrderService
	rdb     *redis.Client
}

func NewHandler(s *services.OrderService, rdb *redis.Client) *Handler {
	return &Handler{service: s, rdb: rdb}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/orders", h.CreateOrder)
	r.GET("/orders/:id", h.GetOrder)
	r.GET("/orders/number/:orderNumber", h.GetOrderByNumber)
	r.POST("/orders/:id/items", h.AddItem)
	r.PUT("/orders/:id/items/:itemId", h.UpdateItem)
	r.DELETE("/orders/:id/items/:itemId", h.RemoveItem)
	r.PUT("/orders/:id/status", h.UpdateStatus)
	r.POST("/orders/:id/cancel", h.CancelOrder)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := services.CreateOrderInput{
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		PaymentMethod:   req.PaymentMethod,
		ShippingFee:     req.ShippingFee,
		Discount:        req.Discount,
		Notes:           req.Notes,
		UserID:          req.UserID,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, services.CreateOrderItemInput{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	order, err := h.service.CreateOrder(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id := c.Param("id")
	cacheKey := "order:" + id

	ctx := c.Request.Context()
	if b, err := h.rdb.Get(ctx, cacheKey).Result(); err == nil {
		var order domain.Order
		if json.Unmarshal([]byte(b), &order) == nil {
			c.JSON(http.StatusOK, order)
			return
		}
	}

	order, err := h.service.GetOrder(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if data, err := json.Marshal(order); err == nil {
		h.rdb.Set(ctx, cacheKey, data, 10*time.Second)
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) GetOrderByNumber(c *gin.Context) {
	order, err := h.service.GetOrderByNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderID := c.Param("id")
	order, err := h.service.AddItem(c.Request.Context(), orderID, req.ProductID, req.VariantID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	h.invalidate(orderID)
	c.JSON(http.StatusOK, order)
}

func (h *Handler) UpdateItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderID := c.Param("id")
	order, err := h.service.UpdateItem(c.Request.Context(), orderID, c.Param("itemId"), req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	h.invalidate(orderID)
	c.JSON(http.StatusOK, order)
}

func (h *Handler) RemoveItem(c *gin.Context) {
	orderID := c.Param("id")
	order, err := h.service.RemoveItem(c.Request.Context(), orderID, c.Param("itemId"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.invalidate(orderID)
	c.JSON(http.StatusOK, order)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := services.UpdateStatusInput{Notes: req.Notes}
	if req.Status != nil {
		st := domain.OrderStatus(*req.Status)
		in.Status = &st
	}
	if req.PaymentStatus != nil {
		ps := domain.PaymentStatus(*req.PaymentStatus)
		in.PaymentStatus = &ps
	}

	orderID := c.Param("id")
	order, err := h.service.UpdateStatus(c.Request.Context(), orderID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	h.invalidate(orderID)
	c.JSON(http.StatusOK, order)
}

func (h *Handler) CancelOrder(c *gin.Context) {
	orderID := c.Param("id")
	order, err := h.service.Cancel(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.invalidate(orderID)
	c.JSON(http.StatusOK, order)
}

func (h *Handler) invalidate(orderID string) {
	h.rdb.Del(context.Background(), "order:"+orderID)
}

// respondError maps the service error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *domain.ValidationError
		stockErr      *domain.InsufficientStockError
		stateErr      *domain.InvalidStateTransitionError
		ruleErr       *domain.BusinessRuleError
	)

	switch {
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrVariantNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     stockErr.Error(),
			"product":   stockErr.ProductName,
			"variant":   stockErr.VariantName,
			"requested": stockErr.Requested,
			"available": stockErr.Available,
		})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusConflict, gin.H{"error": stateErr.Error(), "status": stateErr.Status})
	case errors.As(err, &ruleErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": ruleErr.Error()})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
