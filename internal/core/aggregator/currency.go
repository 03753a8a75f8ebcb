package aggregator

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/niksmo/product-dashboard/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatCurrency renders amount as US dollars: "$1,234.57", "-$1,234.56".
//
// Cents are rounded half away from zero using the shortest decimal
// representation of amount. NaN and Inf are rejected with
// [domain.ErrInvalidInput].
func FormatCurrency(amount float64) (string, error) {
	const op = "FormatCurrency"

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", fmt.Errorf("%s: %v: %w", op, amount, domain.ErrInvalidInput)
	}

	d := decimal.NewFromFloat(amount).Round(2)

	var sign string
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	dollars := d.Truncate(0)
	cents := d.Sub(dollars).Shift(2).IntPart()

	return fmt.Sprintf(
		"%s$%s.%02d", sign, humanize.BigComma(dollars.BigInt()), cents,
	), nil
}
