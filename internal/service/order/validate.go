package order

import (
	"strings"

	"storefront/internal/domain"
)

func validate(in SubmitInput) error {
	details := in.CustomerDetails
	required := []struct {
		field, value string
	}{
		{"name", details.Name},
		{"surname", details.Surname},
		{"address", details.Address},
		{"phoneNumber", details.PhoneNumber},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return domain.Invalid("customerDetails."+r.field, "required")
		}
	}

	if len(in.Items) == 0 {
		return domain.ErrEmptyCart
	}
	for _, item := range in.Items {
		if strings.TrimSpace(item.Product.ID) == "" {
			return domain.Invalid("cartItems.product.id", "required")
		}
		if item.Quantity <= 0 {
			return domain.Invalid("cartItems.quantity", "must be positive")
		}
		if item.Product.Price.IsNegative() {
			return domain.Invalid("cartItems.product.price", "must not be negative")
		}
	}
	if !domain.SumLines(in.Items).Equal(in.Total) {
		return domain.Invalid("total", "does not match cart items")
	}

	switch in.PaymentMethod {
	case "", domain.PaymentBankTransfer:
	case domain.PaymentGateway:
		return domain.ErrPaymentMethodUnsupported
	default:
		return domain.Invalid("paymentMethod", "unknown")
	}
	return nil
}

func trimDetails(d domain.CustomerDetails) domain.CustomerDetails {
	return domain.CustomerDetails{
		Name:        strings.TrimSpace(d.Name),
		Surname:     strings.TrimSpace(d.Surname),
		Address:     strings.TrimSpace(d.Address),
		PhoneNumber: strings.TrimSpace(d.PhoneNumber),
	}
}
