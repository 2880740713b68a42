package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/cart"
	"storefront/internal/domain"
	"storefront/internal/notify"
	cartsvc "storefront/internal/service/cart"
	ordersvc "storefront/internal/service/order"
)

type catalogReader interface {
	List() []domain.Product
	Featured() []domain.Product
	Get(id string) (*domain.Product, error)
	Types() []domain.ProductType
}

type cartService interface {
	Get(ctx context.Context, sessionID string) (cart.State, error)
	Update(ctx context.Context, sessionID string, in cartsvc.UpdateInput) (cart.State, error)
	Clear(ctx context.Context, sessionID string) error
	Checkout(ctx context.Context, sessionID string, in cartsvc.CheckoutInput) (*ordersvc.Result, error)
	Price(items []domain.CartLineItem) ([]domain.CartLineItem, error)
}

type orderService interface {
	Submit(ctx context.Context, in ordersvc.SubmitInput) (*ordersvc.Result, error)
	ListOrders(ctx context.Context) ([]domain.OrderRow, error)
	UpdateStatus(ctx context.Context, orderID, status string) (int, error)
	SendNotification(ctx context.Context, req ordersvc.NotificationRequest) (notify.Delivery, error)
}

// Deps groups the services exposed over HTTP.
type Deps struct {
	Catalog     catalogReader
	CartSvc     cartService
	OrderSvc    orderService
	Readiness   map[string]ReadinessCheck
	AdminToken  string
	CORSOrigins []string
	SessionTTL  time.Duration
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, deps Deps) (*gin.Engine, error) {
	if deps.Catalog == nil || deps.CartSvc == nil || deps.OrderSvc == nil {
		return nil, errors.New("httpserver: catalog, cart and order services are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(accessLog(logger), gin.Recovery(), cors.New(corsConfig(deps.CORSOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Readiness))

	api := router.Group("/api")

	catalog := &catalogHandler{catalog: deps.Catalog}
	api.GET("/products", catalog.list)
	api.GET("/products/featured", catalog.featured)
	api.GET("/products/:id", catalog.get)
	api.GET("/product-types", catalog.types)

	orders := &orderHandler{orders: deps.OrderSvc, carts: deps.CartSvc, logger: logger}
	api.POST("/orders", orders.submit)
	api.POST("/checkout/gateway", orders.gateway)
	api.POST("/notifications", orders.notification)

	carts := &cartHandler{carts: deps.CartSvc, logger: logger}
	session := api.Group("/cart", sessionMiddleware(deps.SessionTTL))
	session.GET("", carts.get)
	session.POST("", carts.update)
	session.DELETE("", carts.clear)
	session.POST("/checkout", carts.checkout)

	admin := api.Group("/admin", adminMiddleware(deps.AdminToken))
	admin.GET("/orders", orders.list)
	admin.POST("/orders/:orderId/status", orders.updateStatus)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", sessionHeader, "Idempotency-Key")
	cfg.ExposeHeaders = []string{sessionHeader}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
