// Package order places orders: it generates the order id, persists the
// order rows and sends best-effort notifications.
package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/notify"
	"storefront/internal/repository/idempotency"
	orderrepo "storefront/internal/repository/order"
)

const (
	submittedMessage = "Order submitted successfully! Your order has been saved and you will be contacted once payment is confirmed."
	duplicateMessage = "Order already submitted."
	genericFailure   = "Failed to submit order. Please try again."
)

type orderStore interface {
	Append(ctx context.Context, order domain.Order) (orderrepo.AppendResult, error)
	UpdateStatus(ctx context.Context, orderID, status string) (int, error)
	ListAll(ctx context.Context) ([]domain.OrderRow, error)
}

type idempotencyGuard interface {
	Reserve(ctx context.Context, key, orderID string) (idempotency.Reservation, bool, error)
	Commit(ctx context.Context, key, orderID string) error
	Release(ctx context.Context, key string) error
}

// Service is the order orchestrator. Each Submit runs its steps in order:
// generate id, persist, notify.
type Service struct {
	store          orderStore
	notifier       notify.Notifier
	guard          idempotencyGuard
	logger         *zap.Logger
	now            func() time.Time
	newID          func(time.Time) (string, error)
	persistTimeout time.Duration
	notifyTimeout  time.Duration
}

type Option func(*Service)

// WithNotifier enables order emails.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithIdempotency deduplicates submissions carrying an idempotency key.
func WithIdempotency(g idempotencyGuard) Option {
	return func(s *Service) { s.guard = g }
}

// WithTimeouts bounds the persist and notify steps. Zero keeps the default.
func WithTimeouts(persist, notify time.Duration) Option {
	return func(s *Service) {
		if persist > 0 {
			s.persistTimeout = persist
		}
		if notify > 0 {
			s.notifyTimeout = notify
		}
	}
}

// WithClock overrides time source and id generator.
func WithClock(now func() time.Time, newID func(time.Time) (string, error)) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
		if newID != nil {
			s.newID = newID
		}
	}
}

func New(store orderrepo.Store, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		store:          store,
		logger:         logger,
		now:            time.Now,
		newID:          NewID,
		persistTimeout: 10 * time.Second,
		notifyTimeout:  15 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitInput is a checkout submission.
type SubmitInput struct {
	CustomerDetails domain.CustomerDetails `json:"customerDetails"`
	Items           []domain.CartLineItem  `json:"cartItems"`
	Total           decimal.Decimal        `json:"total"`
	PaymentMethod   domain.PaymentMethod   `json:"paymentMethod,omitempty"`
	CustomerEmail   string                 `json:"customerEmail,omitempty"`
	IdempotencyKey  string                 `json:"idempotencyKey,omitempty"`
}

// Result is returned to the caller of a submission.
type Result struct {
	Success   bool     `json:"success"`
	OrderID   string   `json:"orderId,omitempty"`
	Message   string   `json:"message,omitempty"`
	Error     string   `json:"error,omitempty"`
	Duplicate bool     `json:"duplicate,omitempty"`
	Details   *Details `json:"details,omitempty"`
}

// Details carries informational outcomes of a committed submission.
type Details struct {
	Store        string   `json:"store"`
	RowsAdded    int      `json:"rowsAdded"`
	Notification *Outcome `json:"notification,omitempty"`
	Confirmation *Outcome `json:"confirmation,omitempty"`
}

// Outcome of one notification attempt.
type Outcome struct {
	Sent      bool   `json:"sent"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Failure converts a Submit error into the result reported to callers.
// It never carries an order id.
func Failure(err error) Result {
	var (
		verr *domain.ValidationError
		perr *domain.PersistenceError
		cerr *domain.ConfigurationError
	)
	msg := genericFailure
	switch {
	case errors.As(err, &verr), errors.As(err, &perr), errors.As(err, &cerr),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrProductUnavailable),
		errors.Is(err, domain.ErrPaymentMethodUnsupported),
		errors.Is(err, domain.ErrSubmissionInProgress),
		errors.Is(err, domain.ErrNotFound):
		msg = err.Error()
	}
	return Result{Success: false, Error: msg}
}

// Submit places an order. It returns an error, and no order id, unless the
// order rows were persisted. Notification failures never fail a submission.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*Result, error) {
	if err := validate(in); err != nil {
		s.logger.Info("order rejected", zap.Error(err))
		return nil, err
	}

	now := s.now().UTC()
	orderID, err := s.newID(now)
	if err != nil {
		return nil, err
	}
	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = domain.PaymentBankTransfer
	}
	items := make([]domain.CartLineItem, len(in.Items))
	copy(items, in.Items)
	o := domain.Order{
		ID:              orderID,
		OrderDate:       now,
		CustomerDetails: trimDetails(in.CustomerDetails),
		Items:           items,
		Total:           in.Total,
		PaymentMethod:   paymentMethod,
		IdempotencyKey:  strings.TrimSpace(in.IdempotencyKey),
	}
	log := s.logger.With(zap.String("order_id", o.ID))

	if o.IdempotencyKey != "" && s.guard != nil {
		existing, reserved, err := s.guard.Reserve(ctx, o.IdempotencyKey, o.ID)
		switch {
		case err != nil:
			log.Warn("idempotency check failed, submitting without it", zap.Error(err))
			o.IdempotencyKey = ""
		case !reserved && !existing.Committed:
			log.Info("submission with same key still persisting", zap.String("pending_order_id", existing.OrderID))
			return nil, domain.ErrSubmissionInProgress
		case !reserved:
			log.Info("duplicate submission", zap.String("existing_order_id", existing.OrderID))
			return &Result{Success: true, OrderID: existing.OrderID, Message: duplicateMessage, Duplicate: true}, nil
		}
	}

	log.Info("persisting order", zap.Int("items", len(o.Items)), zap.String("total", o.Total.StringFixed(2)))
	appended, err := s.persist(ctx, o)
	if err != nil {
		log.Error("order persist failed", zap.Error(err))
		if o.IdempotencyKey != "" && s.guard != nil {
			if rerr := s.guard.Release(context.WithoutCancel(ctx), o.IdempotencyKey); rerr != nil {
				log.Warn("release idempotency key", zap.Error(rerr))
			}
		}
		return nil, err
	}
	log.Info("order committed", zap.Int("rows_added", appended.RowsAdded))
	if o.IdempotencyKey != "" && s.guard != nil {
		if err := s.guard.Commit(context.WithoutCancel(ctx), o.IdempotencyKey, o.ID); err != nil {
			log.Warn("commit idempotency key", zap.Error(err))
		}
	}

	details := &Details{
		Store:     fmt.Sprintf("Added %d rows to the order store", appended.RowsAdded),
		RowsAdded: appended.RowsAdded,
	}
	if s.notifier != nil {
		details.Notification, details.Confirmation = s.notify(ctx, o, strings.TrimSpace(in.CustomerEmail), log)
	}

	return &Result{
		Success: true,
		OrderID: o.ID,
		Message: submittedMessage,
		Details: details,
	}, nil
}

func (s *Service) persist(ctx context.Context, o domain.Order) (orderrepo.AppendResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.persistTimeout)
	defer cancel()

	res, err := s.store.Append(ctx, o)
	if err != nil {
		var cerr *domain.ConfigurationError
		if errors.As(err, &cerr) {
			return orderrepo.AppendResult{}, err
		}
		op := "append"
		if errors.Is(err, context.DeadlineExceeded) {
			op = "append timed out"
		}
		return orderrepo.AppendResult{}, &domain.PersistenceError{Op: op, Err: err}
	}
	return res, nil
}

// notify runs after the order is committed, so it does not inherit the
// caller's cancellation.
func (s *Service) notify(ctx context.Context, o domain.Order, customerEmail string, log *zap.Logger) (owner, customer *Outcome) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()

	d, err := s.notifier.SendOrderNotification(ctx, o)
	owner = outcome(d, err)
	if err != nil {
		log.Warn("order notification failed", zap.Error(&domain.NotificationError{Kind: "order", Err: err}))
	}

	if customerEmail == "" {
		return owner, nil
	}
	d, err = s.notifier.SendCustomerConfirmation(ctx, o, customerEmail)
	customer = outcome(d, err)
	if err != nil {
		log.Warn("customer confirmation failed", zap.Error(&domain.NotificationError{Kind: "confirmation", Err: err}))
	}
	return owner, customer
}

func outcome(d notify.Delivery, err error) *Outcome {
	if err != nil {
		return &Outcome{Sent: false, Error: err.Error()}
	}
	return &Outcome{Sent: true, MessageID: d.MessageID}
}

// ListOrders returns every stored row.
func (s *Service) ListOrders(ctx context.Context) ([]domain.OrderRow, error) {
	return s.store.ListAll(ctx)
}

// UpdateStatus rewrites the status of every row of the order.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) (int, error) {
	orderID = strings.TrimSpace(orderID)
	status = strings.TrimSpace(status)
	if orderID == "" {
		return 0, domain.Invalid("orderId", "required")
	}
	if status == "" {
		return 0, domain.Invalid("status", "required")
	}
	n, err := s.store.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return 0, err
	}
	s.logger.Info("order status updated", zap.String("order_id", orderID), zap.String("status", status), zap.Int("rows", n))
	return n, nil
}
