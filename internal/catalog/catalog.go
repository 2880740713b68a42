// Package catalog serves the static product catalog.
package catalog

import (
	"bytes"
	"embed"
	"fmt"
	"slices"
	"strings"

	"storefront/internal/domain"
)

//go:embed data/*.csv
var dataFS embed.FS

// Catalog is an immutable, in-memory product catalog.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
	types    []domain.ProductType
}

// Default loads the catalog embedded in the binary.
func Default() (*Catalog, error) {
	productsCSV, err := dataFS.ReadFile("data/products.csv")
	if err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}
	typesCSV, err := dataFS.ReadFile("data/product_types.csv")
	if err != nil {
		return nil, fmt.Errorf("read product types: %w", err)
	}
	products, err := LoadProducts(bytes.NewReader(productsCSV))
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	types, err := LoadProductTypes(bytes.NewReader(typesCSV))
	if err != nil {
		return nil, fmt.Errorf("load product types: %w", err)
	}
	return New(products, types)
}

// New builds a catalog; product ids must be unique.
func New(products []domain.Product, types []domain.ProductType) (*Catalog, error) {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		byID[p.ID] = i
	}
	return &Catalog{products: products, byID: byID, types: types}, nil
}

// List returns every product in catalog order.
func (c *Catalog) List() []domain.Product {
	out := make([]domain.Product, len(c.products))
	for i, p := range c.products {
		out[i] = cloneProduct(p)
	}
	return out
}

// Featured returns the featured products.
func (c *Catalog) Featured() []domain.Product {
	var out []domain.Product
	for _, p := range c.products {
		if p.Featured {
			out = append(out, cloneProduct(p))
		}
	}
	return out
}

// Get looks a product up by id.
func (c *Catalog) Get(id string) (*domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p := cloneProduct(c.products[i])
	return &p, nil
}

func cloneProduct(p domain.Product) domain.Product {
	p.Images = slices.Clone(p.Images)
	return p
}

// Types returns the product types.
func (c *Catalog) Types() []domain.ProductType {
	out := make([]domain.ProductType, len(c.types))
	for i, t := range c.types {
		t.Options = slices.Clone(t.Options)
		out[i] = t
	}
	return out
}

// Type looks a product type up by id or name.
func (c *Catalog) Type(idOrName string) (*domain.ProductType, error) {
	for _, t := range c.types {
		if t.ID == idOrName || strings.EqualFold(t.Name, idOrName) {
			t.Options = slices.Clone(t.Options)
			return &t, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ValidateSelection checks that the option belongs to the selected type.
// A catalog without types accepts any selection.
func (c *Catalog) ValidateSelection(selectedType, selectedOption string) error {
	if len(c.types) == 0 {
		return nil
	}
	if strings.TrimSpace(selectedType) == "" {
		return domain.Invalid("selectedType", "required")
	}
	t, err := c.Type(selectedType)
	if err != nil {
		return domain.Invalid("selectedType", fmt.Sprintf("unknown type %q", selectedType))
	}
	for _, opt := range t.Options {
		if opt == selectedOption {
			return nil
		}
	}
	return domain.Invalid("selectedOption", fmt.Sprintf("%q is not an option of %s", selectedOption, t.Name))
}
