package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

type productRow struct {
	ID          string
	Name        string
	Description string
	Price       string
	Featured    bool
	ComingSoon  bool
	ImageURLs   []string
}

// LoadProducts parses a product CSV. Rows with an empty id and an image
// url are continuation rows that add images to the previous product.
func LoadProducts(r io.Reader) ([]domain.Product, error) {
	reader := newReader(r)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var (
		current  *productRow
		products []domain.Product
	)
	flush := func() error {
		if current == nil {
			return nil
		}
		p, err := current.toProduct()
		if err != nil {
			return err
		}
		products = append(products, p)
		return nil
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		row := parseProductRow(record, index)
		if row == nil {
			continue
		}
		if row.ID != "" {
			if err := flush(); err != nil {
				return nil, err
			}
			current = row
			continue
		}
		if current != nil {
			current.ImageURLs = append(current.ImageURLs, row.ImageURLs...)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return products, nil
}

// LoadProductTypes parses a product type CSV with ';' separated options.
func LoadProductTypes(r io.Reader) ([]domain.ProductType, error) {
	reader := newReader(r)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var types []domain.ProductType
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		id := pick(record, index, "id")
		if id == "" {
			continue
		}
		name := pick(record, index, "name")
		if name == "" {
			return nil, fmt.Errorf("product type %q: name required", id)
		}
		types = append(types, domain.ProductType{
			ID:      id,
			Name:    name,
			Options: splitList(pick(record, index, "options")),
		})
	}
	return types, nil
}

func newReader(r io.Reader) *csv.Reader {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // continuation rows may be short
	return csvr
}

func (row *productRow) toProduct() (domain.Product, error) {
	if row.Name == "" {
		return domain.Product{}, fmt.Errorf("product %q: name required", row.ID)
	}
	price, err := decimal.NewFromString(row.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %q: invalid price %q: %w", row.ID, row.Price, err)
	}
	if price.IsNegative() {
		return domain.Product{}, fmt.Errorf("product %q: negative price %s", row.ID, row.Price)
	}
	images := row.ImageURLs
	if images == nil {
		images = []string{}
	}
	return domain.Product{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Price:       price,
		Images:      images,
		Featured:    row.Featured,
		ComingSoon:  row.ComingSoon,
	}, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseProductRow(record []string, index map[string]int) *productRow {
	id := pick(record, index, "id")
	images := splitList(pick(record, index, "images"))
	if id == "" && len(images) == 0 {
		return nil
	}
	return &productRow{
		ID:          id,
		Name:        pick(record, index, "name"),
		Description: pick(record, index, "description"),
		Price:       pick(record, index, "price"),
		Featured:    parseBool(pick(record, index, "featured")),
		ComingSoon:  parseBool(pick(record, index, "comingSoon")),
		ImageURLs:   images,
	}
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func parseBool(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
