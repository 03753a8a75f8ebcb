// Package aggregator computes the catalog dashboard figures.
//
// Every function is pure: inputs are never reordered or written to and no
// state is kept between calls.
package aggregator

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/niksmo/product-dashboard/internal/core/domain"
)

type priceRange struct {
	min, max float64
	label    string
}

// priceRanges are half-open [min, max) and ordered.
var priceRanges = [...]priceRange{
	{0, 50, "$0-50"},
	{50, 100, "$50-100"},
	{100, 250, "$100-250"},
	{250, 500, "$250-500"},
	{500, 1000, "$500-1K"},
	{1000, 2500, "$1K-2.5K"},
	{2500, 5000, "$2.5K-5K"},
	{5000, math.Inf(1), "$5K+"},
}

func (r priceRange) contains(price float64) bool {
	return price >= r.min && price < r.max
}

// AveragePrice returns the formatted mean price, "$0.00" for no products.
func AveragePrice(ps []domain.Product) (string, error) {
	const op = "AveragePrice"

	if len(ps) == 0 {
		return FormatCurrency(0)
	}

	// Dividing each price first keeps the mean finite for finite prices.
	n := float64(len(ps))
	var mean float64
	for _, p := range ps {
		mean += p.Price / n
	}

	avg, err := FormatCurrency(mean)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return avg, nil
}

// PriceBuckets counts products per fixed price range.
//
// All eight ranges are returned in order, empty ones with zero count.
// Prices outside every range (negative, NaN, +Inf) are not counted.
func PriceBuckets(ps []domain.Product) []domain.PriceBucket {
	buckets := make([]domain.PriceBucket, len(priceRanges))
	for i, r := range priceRanges {
		buckets[i].Range = r.label
	}

	for _, p := range ps {
		for i, r := range priceRanges {
			if r.contains(p.Price) {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}

// TopTags returns up to limit most frequent tags, most frequent first.
//
// Tags with equal counts keep the order in which they were first seen.
func TopTags(ps []domain.Product, limit int) []domain.TagCount {
	if limit <= 0 {
		return []domain.TagCount{}
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, p := range ps {
		for _, tag := range p.Tags {
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	tags := make([]domain.TagCount, 0, len(order))
	for _, tag := range order {
		tags = append(tags, domain.TagCount{Tag: tag, Count: counts[tag]})
	}

	slices.SortStableFunc(tags, func(a, b domain.TagCount) int {
		return cmp.Compare(b.Count, a.Count)
	})

	if len(tags) > limit {
		tags = tags[:limit]
	}
	return tags
}
