package notify

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	"storefront/internal/domain"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templatesFS, "templates/*.html.tmpl"))
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templatesFS, "templates/*.txt.tmpl"))
)

// Document is a rendered email.
type Document struct {
	Subject string
	HTML    string
	Text    string
}

type itemView struct {
	Name      string
	Type      string
	Option    string
	Field     string
	Quantity  int
	LineTotal string
}

type orderView struct {
	StoreName     string
	OrderID       string
	OrderDate     string
	PaymentMethod string
	Name          string
	Surname       string
	Phone         string
	Address       string
	Items         []itemView
	Total         string
	Bank          BankDetails
}

func newOrderView(o domain.Order, cfg Config) orderView {
	items := make([]itemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, itemView{
			Name:      item.Product.Name,
			Type:      item.SelectedType,
			Option:    item.SelectedOption,
			Field:     item.SelectedField,
			Quantity:  item.Quantity,
			LineTotal: domain.FormatMoney(item.LineTotal()),
		})
	}
	return orderView{
		StoreName:     cfg.StoreName,
		OrderID:       o.ID,
		OrderDate:     o.OrderDate.UTC().Format(time.RFC1123),
		PaymentMethod: o.PaymentMethod.Label(),
		Name:          o.CustomerDetails.Name,
		Surname:       o.CustomerDetails.Surname,
		Phone:         o.CustomerDetails.PhoneNumber,
		Address:       o.CustomerDetails.Address,
		Items:         items,
		Total:         domain.FormatMoney(o.Total),
		Bank:          cfg.Bank,
	}
}

// RenderOrderNotification builds the store owner's new order email.
func RenderOrderNotification(o domain.Order, cfg Config) (Document, error) {
	v := newOrderView(o, cfg)
	subject := fmt.Sprintf("New Order #%s - %s %s (%s)", o.ID, v.Name, v.Surname, v.Total)
	return render(subject, "order", v)
}

// RenderCustomerConfirmation builds the customer's confirmation email.
func RenderCustomerConfirmation(o domain.Order, cfg Config) (Document, error) {
	v := newOrderView(o, cfg)
	subject := fmt.Sprintf("Order Confirmation #%s - %s", o.ID, v.StoreName)
	return render(subject, "confirmation", v)
}

func render(subject, name string, v orderView) (Document, error) {
	var html, text bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&html, name+".html.tmpl", v); err != nil {
		return Document{}, fmt.Errorf("render %s html: %w", name, err)
	}
	if err := textTemplates.ExecuteTemplate(&text, name+".txt.tmpl", v); err != nil {
		return Document{}, fmt.Errorf("render %s text: %w", name, err)
	}
	return Document{Subject: subject, HTML: html.String(), Text: text.String()}, nil
}
