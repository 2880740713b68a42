package catalog

import (
	"errors"
	"strings"
	"testing"

	"storefront/internal/domain"
)

func TestLoadProducts_ContinuationRows(t *testing.T) {
	csvData := `id,name,description,price,featured,comingSoon,images
p1,Prod One,Desc one,10.50,true,false,/one-a.png
,,,,,,/one-b.png
p2,Prod Two,Desc two,0,,true,
,,,,,,`

	products, err := LoadProducts(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("load products: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	first := products[0]
	if first.ID != "p1" || first.Name != "Prod One" || first.Price.String() != "10.5" || !first.Featured || first.ComingSoon {
		t.Fatalf("unexpected first product: %+v", first)
	}
	if len(first.Images) != 2 || first.Images[1] != "/one-b.png" {
		t.Fatalf("expected 2 images on first product, got %v", first.Images)
	}
	second := products[1]
	if !second.ComingSoon || second.Featured || !second.Price.IsZero() {
		t.Fatalf("unexpected second product: %+v", second)
	}
	if second.Images == nil || len(second.Images) != 0 {
		t.Fatalf("expected empty image list, got %v", second.Images)
	}
}

func TestLoadProducts_RejectsBadPrice(t *testing.T) {
	for _, price := range []string{"abc", "-1", ""} {
		csvData := "id,name,price\np1,Prod," + price
		if _, err := LoadProducts(strings.NewReader(csvData)); err == nil {
			t.Fatalf("expected error for price %q", price)
		}
	}
}

func TestLoadProducts_RequiresName(t *testing.T) {
	if _, err := LoadProducts(strings.NewReader("id,name,price\np1,,1")); err == nil {
		t.Fatalf("expected missing name error")
	}
}

func TestLoadProductTypes(t *testing.T) {
	types, err := LoadProductTypes(strings.NewReader("id,name,options\nt1,Personal,A; B ;C\n,,\n"))
	if err != nil {
		t.Fatalf("load types: %v", err)
	}
	if len(types) != 1 || types[0].Name != "Personal" || len(types[0].Options) != 3 || types[0].Options[1] != "B" {
		t.Fatalf("unexpected types: %+v", types)
	}
}

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	if len(c.List()) != 5 {
		t.Fatalf("expected 5 products, got %d", len(c.List()))
	}
	if len(c.Featured()) != 3 {
		t.Fatalf("expected 3 featured products, got %d", len(c.Featured()))
	}
	fh5, err := c.Get("1")
	if err != nil {
		t.Fatalf("get product 1: %v", err)
	}
	if fh5.Name != "Forza Horizon 5" || fh5.Price.StringFixed(2) != "299.99" || fh5.ComingSoon {
		t.Fatalf("unexpected product 1: %+v", fh5)
	}
	if _, err := c.Get("missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(c.Types()) != 2 {
		t.Fatalf("expected 2 product types, got %d", len(c.Types()))
	}
}

func TestValidateSelection(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	if err := c.ValidateSelection("Personal", "250M Credit"); err != nil {
		t.Fatalf("expected valid selection, got %v", err)
	}
	if err := c.ValidateSelection("type2", "500M Credit"); err != nil {
		t.Fatalf("expected type id to be accepted, got %v", err)
	}
	var verr *domain.ValidationError
	if err := c.ValidateSelection("Gold", "100M Credit"); !errors.As(err, &verr) || verr.Field != "selectedType" {
		t.Fatalf("expected selectedType validation error, got %v", err)
	}
	if err := c.ValidateSelection("Personal", "1B Credit"); !errors.As(err, &verr) || verr.Field != "selectedOption" {
		t.Fatalf("expected selectedOption validation error, got %v", err)
	}

	empty, _ := New(nil, nil)
	if err := empty.ValidateSelection("", ""); err != nil {
		t.Fatalf("catalog without types should accept anything, got %v", err)
	}
}

func TestCatalogReturnsCopies(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	want := c.List()[0].Images[0]

	c.List()[0].Images[0] = "/list.png"
	c.Featured()[0].Images[0] = "/featured.png"
	p, _ := c.Get("1")
	p.Images[0] = "/get.png"
	c.Types()[0].Options[0] = "changed"
	typ, _ := c.Type("Personal")
	typ.Options[0] = "changed"

	if got := c.List()[0].Images[0]; got != want {
		t.Fatalf("catalog images mutated through a returned product: %q", got)
	}
	if got := c.Types()[0].Options[0]; got != "100M Credit" {
		t.Fatalf("catalog options mutated through a returned type: %q", got)
	}
}
