package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"storefront/internal/domain"
)

type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTP sends mail through an authenticated SMTP server. Missing credentials
// surface as a ConfigurationError on the first send.
type SMTP struct {
	cfg       Config
	logger    *zap.Logger
	newSender func(Config) (sender, error)
}

func NewSMTP(cfg Config, logger *zap.Logger) *SMTP {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Port == 0 {
		cfg.Port = 465
	}
	return &SMTP{cfg: cfg, logger: logger, newSender: dialer}
}

func dialer(cfg Config) (sender, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	}
	if cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}
	return mail.NewClient(cfg.Host, opts...)
}

func (s *SMTP) SendOrderNotification(ctx context.Context, o domain.Order) (Delivery, error) {
	doc, err := RenderOrderNotification(o, s.cfg)
	if err != nil {
		return Delivery{}, err
	}
	return s.send(ctx, s.cfg.recipient(), doc, o.ID)
}

func (s *SMTP) SendCustomerConfirmation(ctx context.Context, o domain.Order, customerEmail string) (Delivery, error) {
	customerEmail = strings.TrimSpace(customerEmail)
	if customerEmail == "" {
		return Delivery{}, domain.Invalid("customerEmail", "required")
	}
	doc, err := RenderCustomerConfirmation(o, s.cfg)
	if err != nil {
		return Delivery{}, err
	}
	return s.send(ctx, customerEmail, doc, o.ID)
}

func (s *SMTP) send(ctx context.Context, to string, doc Document, orderID string) (Delivery, error) {
	if missing := s.cfg.missing(); len(missing) > 0 {
		return Delivery{}, &domain.ConfigurationError{Component: "email", Missing: missing}
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(s.cfg.FromName, s.cfg.Username); err != nil {
		return Delivery{}, fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return Delivery{}, domain.Invalid("recipient", fmt.Sprintf("invalid address %q", to))
	}
	msg.Subject(doc.Subject)
	msg.SetMessageID()
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextPlain, doc.Text)
	msg.AddAlternativeString(mail.TypeTextHTML, doc.HTML)

	client, err := s.newSender(s.cfg)
	if err != nil {
		return Delivery{}, fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		s.logger.Warn("email send failed", zap.String("order_id", orderID), zap.String("to", to), zap.Error(err))
		return Delivery{}, fmt.Errorf("smtp send: %w", err)
	}

	d := Delivery{MessageID: msg.GetMessageID(), Recipient: to}
	s.logger.Info("email sent", zap.String("order_id", orderID), zap.String("to", to), zap.String("message_id", d.MessageID))
	return d, nil
}
