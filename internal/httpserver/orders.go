package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/domain"
	ordersvc "storefront/internal/service/order"
)

type orderHandler struct {
	orders orderService
	carts  cartService
	logger *zap.Logger
}

// submit places an order from an explicit cart. Items are repriced from the
// catalog before the total is checked.
func (h *orderHandler) submit(c *gin.Context) {
	var in ordersvc.SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, ordersvc.Result{Success: false, Error: "invalid request body"})
		return
	}
	if in.IdempotencyKey == "" {
		in.IdempotencyKey = strings.TrimSpace(c.GetHeader("Idempotency-Key"))
	}
	items, err := h.carts.Price(in.Items)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = domain.Invalid("cartItems.product.id", "unknown product")
		}
		c.JSON(statusFor(err), ordersvc.Failure(err))
		return
	}
	in.Items = items

	res, err := h.orders.Submit(c.Request.Context(), in)
	if err != nil {
		h.logger.Info("order submission failed", zap.Error(err))
		c.JSON(statusFor(err), ordersvc.Failure(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *orderHandler) gateway(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, ordersvc.Failure(domain.ErrPaymentMethodUnsupported))
}

func (h *orderHandler) list(c *gin.Context) {
	rows, err := h.orders.ListOrders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if id := strings.TrimSpace(c.Query("orderId")); id != "" {
		filtered := rows[:0]
		for _, r := range rows {
			if r.OrderID == id {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}
	if rows == nil {
		rows = []domain.OrderRow{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": rows})
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *orderHandler) updateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status required")
		return
	}
	n, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("orderId"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "updatedRows": n})
}

func (h *orderHandler) notification(c *gin.Context) {
	var req ordersvc.NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	d, err := h.orders.SendNotification(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("notification failed", zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "messageId": d.MessageID})
}
