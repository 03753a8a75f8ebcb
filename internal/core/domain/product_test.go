package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductValidate(t *testing.T) {
	t.Run("Finite", func(t *testing.T) {
		p := Product{ID: 1, NetPrice: 80, Taxes: 20, Price: -100}
		assert.NoError(t, p.Validate())
	})

	t.Run("NonFinite", func(t *testing.T) {
		tests := []struct {
			name string
			p    Product
		}{
			{"PriceNaN", Product{Price: math.NaN()}},
			{"NetPriceInf", Product{NetPrice: math.Inf(1)}},
			{"TaxesNegInf", Product{Taxes: math.Inf(-1)}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.ErrorIs(t, tt.p.Validate(), ErrInvalidInput)
			})
		}
	})
}
