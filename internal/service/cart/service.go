package cart

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"storefront/internal/cart"
	"storefront/internal/domain"
	ordersvc "storefront/internal/service/order"
)

type Service struct {
	sessions sessionStore
	catalog  productCatalog
	orders   orderSubmitter
	logger   *zap.Logger
}

type sessionStore interface {
	Get(ctx context.Context, sessionID string) (cart.State, error)
	Save(ctx context.Context, sessionID string, state cart.State) error
	Delete(ctx context.Context, sessionID string) error
}

type productCatalog interface {
	Get(id string) (*domain.Product, error)
	ValidateSelection(selectedType, selectedOption string) error
}

type orderSubmitter interface {
	Submit(ctx context.Context, in ordersvc.SubmitInput) (*ordersvc.Result, error)
}

func New(sessions sessionStore, catalog productCatalog, orders orderSubmitter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sessions: sessions, catalog: catalog, orders: orders, logger: logger}
}

type UpdateInput struct {
	Actions []UpdateAction `json:"actions"`
}

type UpdateAction struct {
	Action         string `json:"action"`
	ProductID      string `json:"productId,omitempty"`
	SelectedType   string `json:"selectedType,omitempty"`
	SelectedOption string `json:"selectedOption,omitempty"`
	SelectedField  string `json:"selectedField,omitempty"`
	Quantity       int    `json:"quantity,omitempty"`
	// Slot scopes changeQuantity to one slot instead of every variant.
	Slot bool `json:"slot,omitempty"`
}

type CheckoutInput struct {
	CustomerDetails domain.CustomerDetails `json:"customerDetails"`
	PaymentMethod   domain.PaymentMethod   `json:"paymentMethod,omitempty"`
	CustomerEmail   string                 `json:"customerEmail,omitempty"`
	IdempotencyKey  string                 `json:"idempotencyKey,omitempty"`
}

func (s *Service) Get(ctx context.Context, sessionID string) (cart.State, error) {
	return s.sessions.Get(ctx, sessionID)
}

// Update translates the action list into reducer actions and applies them
// in order. Nothing is saved if any action is rejected.
func (s *Service) Update(ctx context.Context, sessionID string, in UpdateInput) (cart.State, error) {
	if len(in.Actions) == 0 {
		return cart.State{}, domain.Invalid("actions", "required")
	}
	actions := make([]cart.Action, 0, len(in.Actions))
	for _, a := range in.Actions {
		action, err := s.translate(a)
		if err != nil {
			return cart.State{}, err
		}
		actions = append(actions, action)
	}

	current, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return cart.State{}, err
	}
	session := cart.Restore(current)
	next := session.Dispatch(actions...)
	if err := s.sessions.Save(ctx, sessionID, next); err != nil {
		return cart.State{}, err
	}
	return next, nil
}

func (s *Service) translate(a UpdateAction) (cart.Action, error) {
	productID := strings.TrimSpace(a.ProductID)
	slot := domain.SlotKey{
		ProductID:      productID,
		SelectedType:   a.SelectedType,
		SelectedOption: a.SelectedOption,
		SelectedField:  a.SelectedField,
	}
	switch strings.ToLower(strings.TrimSpace(a.Action)) {
	case "addlineitem":
		if productID == "" {
			return cart.Action{}, domain.Invalid("productId", "required")
		}
		if a.Quantity <= 0 {
			return cart.Action{}, domain.Invalid("quantity", "must be positive")
		}
		product, err := s.catalog.Get(productID)
		if err != nil {
			return cart.Action{}, err
		}
		if product.ComingSoon {
			return cart.Action{}, domain.ErrProductUnavailable
		}
		if err := s.catalog.ValidateSelection(a.SelectedType, a.SelectedOption); err != nil {
			return cart.Action{}, err
		}
		return cart.AddItem(domain.CartLineItem{
			Product:        *product,
			SelectedType:   a.SelectedType,
			SelectedOption: a.SelectedOption,
			SelectedField:  strings.TrimSpace(a.SelectedField),
			Quantity:       a.Quantity,
		}), nil
	case "removeproduct":
		if productID == "" {
			return cart.Action{}, domain.Invalid("productId", "required")
		}
		return cart.RemoveItem(productID), nil
	case "removelineitem":
		if productID == "" {
			return cart.Action{}, domain.Invalid("productId", "required")
		}
		return cart.RemoveSlot(slot), nil
	case "changequantity":
		if productID == "" {
			return cart.Action{}, domain.Invalid("productId", "required")
		}
		if a.Slot {
			return cart.UpdateSlotQuantity(slot, a.Quantity), nil
		}
		return cart.UpdateQuantity(productID, a.Quantity), nil
	case "clearcart":
		return cart.ClearCart(), nil
	default:
		return cart.Action{}, domain.Invalid("action", "unsupported action")
	}
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// Checkout submits the session cart. The cart is cleared only after the
// order was committed.
func (s *Service) Checkout(ctx context.Context, sessionID string, in CheckoutInput) (*ordersvc.Result, error) {
	if s.orders == nil {
		return nil, errors.New("order service unavailable")
	}
	current, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	res, err := s.orders.Submit(ctx, ordersvc.SubmitInput{
		CustomerDetails: in.CustomerDetails,
		Items:           current.Items,
		Total:           current.Total,
		PaymentMethod:   in.PaymentMethod,
		CustomerEmail:   in.CustomerEmail,
		IdempotencyKey:  in.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	cleared := cart.Restore(current).Dispatch(cart.ClearCart())
	if err := s.sessions.Save(ctx, sessionID, cleared); err != nil {
		s.logger.Warn("clear cart after checkout", zap.String("order_id", res.OrderID), zap.Error(err))
	}
	return res, nil
}

// Price replaces client supplied product data with the catalog entry, so
// totals are always computed from catalog prices.
func (s *Service) Price(items []domain.CartLineItem) ([]domain.CartLineItem, error) {
	out := make([]domain.CartLineItem, 0, len(items))
	for _, item := range items {
		product, err := s.catalog.Get(strings.TrimSpace(item.Product.ID))
		if err != nil {
			return nil, err
		}
		if product.ComingSoon {
			return nil, domain.ErrProductUnavailable
		}
		item.Product = *product
		out = append(out, item)
	}
	return out, nil
}
