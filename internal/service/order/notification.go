package order

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/notify"
	orderrepo "storefront/internal/repository/order"
)

// NotificationRequest asks for an email about an already placed order.
// Only the order id of Data is used; the content comes from the order store.
type NotificationRequest struct {
	Type          string       `json:"type"`
	Data          domain.Order `json:"data"`
	CustomerEmail string       `json:"customerEmail,omitempty"`
}

// SendNotification emails the store owner and, when an address is given,
// the customer. Only the owner email decides the outcome.
func (s *Service) SendNotification(ctx context.Context, req NotificationRequest) (notify.Delivery, error) {
	if req.Type != "order" {
		return notify.Delivery{}, domain.Invalid("type", "invalid email type")
	}
	if s.notifier == nil {
		return notify.Delivery{}, &domain.ConfigurationError{Component: "email", Missing: []string{"notifier"}}
	}
	orderID := strings.TrimSpace(req.Data.ID)
	if orderID == "" {
		return notify.Delivery{}, domain.Invalid("data.orderId", "required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()

	o, err := s.storedOrder(ctx, orderID)
	if err != nil {
		return notify.Delivery{}, err
	}

	d, err := s.notifier.SendOrderNotification(ctx, o)
	if err != nil {
		return notify.Delivery{}, &domain.NotificationError{Kind: "order", Err: err}
	}
	if email := strings.TrimSpace(req.CustomerEmail); email != "" {
		if _, err := s.notifier.SendCustomerConfirmation(ctx, o, email); err != nil {
			s.logger.Warn("customer confirmation failed", zap.String("order_id", o.ID), zap.Error(err))
		}
	}
	return d, nil
}

func (s *Service) storedOrder(ctx context.Context, orderID string) (domain.Order, error) {
	rows, err := s.store.ListAll(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	var matched []domain.OrderRow
	for _, r := range rows {
		if r.OrderID == orderID {
			matched = append(matched, r)
		}
	}
	if len(matched) == 0 {
		return domain.Order{}, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
	}
	return orderrepo.OrderFromRows(matched)
}
