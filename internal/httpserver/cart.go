package httpserver

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/cart"
	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
	ordersvc "storefront/internal/service/order"
)

type cartHandler struct {
	carts  cartService
	logger *zap.Logger
}

type cartResponse struct {
	SessionID      string                `json:"sessionId"`
	Items          []domain.CartLineItem `json:"items"`
	Total          decimal.Decimal       `json:"total"`
	FormattedTotal string                `json:"formattedTotal"`
	ItemCount      int                   `json:"itemCount"`
}

func toCartResponse(sessionID string, s cart.State) cartResponse {
	items := s.Items
	if items == nil {
		items = []domain.CartLineItem{}
	}
	return cartResponse{
		SessionID:      sessionID,
		Items:          items,
		Total:          s.Total,
		FormattedTotal: domain.FormatMoney(s.Total),
		ItemCount:      s.Quantity(),
	}
}

func (h *cartHandler) get(c *gin.Context) {
	id := sessionFrom(c)
	state, err := h.carts.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(id, state))
}

func (h *cartHandler) update(c *gin.Context) {
	var in cartsvc.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	id := sessionFrom(c)
	state, err := h.carts.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(id, state))
}

func (h *cartHandler) clear(c *gin.Context) {
	id := sessionFrom(c)
	if err := h.carts.Clear(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(id, cart.Empty()))
}

func (h *cartHandler) checkout(c *gin.Context) {
	var in cartsvc.CheckoutInput
	if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "invalid request body")
		return
	}
	if in.IdempotencyKey == "" {
		in.IdempotencyKey = strings.TrimSpace(c.GetHeader("Idempotency-Key"))
	}
	res, err := h.carts.Checkout(c.Request.Context(), sessionFrom(c), in)
	if err != nil {
		h.logger.Info("checkout failed", zap.Error(err))
		c.JSON(statusFor(err), ordersvc.Failure(err))
		return
	}
	c.JSON(http.StatusOK, res)
}
