package domain

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidInput = errors.New("invalid input")

type (
	// A Product is one catalog entry as delivered by the upstream catalog.
	//
	// ID is not unique across a catalog response.
	Product struct {
		ID          int
		Name        string
		Description string
		EAN         string
		UPC         string
		Image       string
		Images      []ProductImage
		NetPrice    float64
		Taxes       float64
		Price       float64
		Categories  []string
		Tags        []string
	}

	ProductImage struct {
		Title       string
		Description string
		URL         string
	}
)

// Validate reports [ErrInvalidInput] when any numeric field is NaN or Inf.
func (p Product) Validate() error {
	const op = "Product.Validate"

	fields := [...]struct {
		name string
		v    float64
	}{
		{"price", p.Price},
		{"net_price", p.NetPrice},
		{"taxes", p.Taxes},
	}

	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf(
				"%s: product %d: %s is not finite: %w",
				op, p.ID, f.name, ErrInvalidInput,
			)
		}
	}
	return nil
}
