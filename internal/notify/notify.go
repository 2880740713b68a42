// Package notify delivers order emails to the store owner and customers.
package notify

import (
	"context"

	"storefront/internal/domain"
)

// Delivery describes a sent message.
type Delivery struct {
	MessageID string `json:"messageId,omitempty"`
	Recipient string `json:"recipient,omitempty"`
}

// Notifier sends order emails. Transport and configuration failures are
// returned as errors, never panics.
type Notifier interface {
	SendOrderNotification(ctx context.Context, order domain.Order) (Delivery, error)
	SendCustomerConfirmation(ctx context.Context, order domain.Order, customerEmail string) (Delivery, error)
}

// BankDetails are printed in customer confirmations.
type BankDetails struct {
	Name          string
	AccountName   string
	AccountNumber string
}

// Config configures SMTP delivery.
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	Recipient string
	StoreName string
	Bank      BankDetails
}

func (c Config) missing() []string {
	var out []string
	if c.Host == "" {
		out = append(out, "SMTP_HOST")
	}
	if c.Username == "" {
		out = append(out, "SMTP_USERNAME")
	}
	if c.Password == "" {
		out = append(out, "SMTP_PASSWORD")
	}
	return out
}

func (c Config) recipient() string {
	if c.Recipient != "" {
		return c.Recipient
	}
	return c.Username
}
