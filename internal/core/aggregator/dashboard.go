package aggregator

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/niksmo/product-dashboard/internal/core/domain"
)

const (
	defaultTopTags             = 5
	defaultAffordableThreshold = 500
	defaultTableCategories     = 3
)

// Options tune [Summarize]. Zero fields take the defaults:
// 5 top tags, $500 affordable threshold, 3 categories per table row.
type Options struct {
	TopTags             int
	AffordableThreshold float64
	TableCategories     int
}

func (o *Options) normalize() {
	if o.TopTags <= 0 {
		o.TopTags = defaultTopTags
	}

	if o.AffordableThreshold <= 0 {
		o.AffordableThreshold = defaultAffordableThreshold
	}

	if o.TableCategories <= 0 {
		o.TableCategories = defaultTableCategories
	}
}

// AffordableShare returns the rounded percentage of products priced
// below threshold. No products give 0.
func AffordableShare(ps []domain.Product, threshold float64) int {
	if len(ps) == 0 {
		return 0
	}

	var n int
	for _, p := range ps {
		if p.Price < threshold {
			n++
		}
	}
	return percent(n, len(ps))
}

// TagShares attaches to each tag its rounded percentage of the tags total.
func TagShares(tags []domain.TagCount) []domain.TagShare {
	var total int
	for _, t := range tags {
		total += t.Count
	}

	shares := make([]domain.TagShare, len(tags))
	for i, t := range tags {
		shares[i] = domain.TagShare{
			Tag:     t.Tag,
			Count:   t.Count,
			Percent: percent(t.Count, total),
		}
	}
	return shares
}

// SortByPrice returns a copy of ps ordered by ascending price.
// Products with equal prices keep their relative order.
func SortByPrice(ps []domain.Product) []domain.Product {
	sorted := slices.Clone(ps)
	slices.SortStableFunc(sorted, func(a, b domain.Product) int {
		return cmp.Compare(a.Price, b.Price)
	})
	return sorted
}

// Rows builds the products table: sorted by price, prices formatted,
// categories cut to opts.TableCategories.
func Rows(ps []domain.Product, opts Options) ([]domain.ProductRow, error) {
	const op = "Rows"

	opts.normalize()

	sorted := SortByPrice(ps)
	rows := make([]domain.ProductRow, 0, len(sorted))
	for _, p := range sorted {
		row, err := toRow(p, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Summarize computes every dashboard figure for ps.
//
// Products with non-finite numbers fail the whole summary with
// [domain.ErrInvalidInput].
func Summarize(
	ps []domain.Product, opts Options,
) (domain.Dashboard, error) {
	const op = "Summarize"

	opts.normalize()

	avg, err := AveragePrice(ps)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := Rows(ps, opts)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.Dashboard{
		TotalProducts:     len(ps),
		AveragePrice:      avg,
		AffordableShare:   AffordableShare(ps, opts.AffordableThreshold),
		PriceDistribution: PriceBuckets(ps),
		TopTags:           TagShares(TopTags(ps, opts.TopTags)),
		Products:          rows,
	}, nil
}

func toRow(p domain.Product, opts Options) (domain.ProductRow, error) {
	if err := p.Validate(); err != nil {
		return domain.ProductRow{}, err
	}

	netPrice, err := FormatCurrency(p.NetPrice)
	if err != nil {
		return domain.ProductRow{}, err
	}

	price, err := FormatCurrency(p.Price)
	if err != nil {
		return domain.ProductRow{}, err
	}

	categories := p.Categories
	if len(categories) > opts.TableCategories {
		categories = categories[:opts.TableCategories]
	}

	return domain.ProductRow{
		ID:         p.ID,
		Name:       p.Name,
		NetPrice:   netPrice,
		TaxRate:    strconv.FormatFloat(p.Taxes, 'f', -1, 64) + "%",
		Price:      price,
		Affordable: p.Price < opts.AffordableThreshold,
		Categories: slices.Clone(categories),
	}, nil
}

func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
