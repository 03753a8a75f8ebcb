package aggregator_test

import (
	"math"
	"testing"

	"github.com/niksmo/product-dashboard/internal/core/aggregator"
	"github.com/niksmo/product-dashboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAffordableShare(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		assert.Equal(t, 67, aggregator.AffordableShare(sampleProducts(), 500))
	})

	t.Run("ThresholdExcluded", func(t *testing.T) {
		ps := withPrices(499.99, 500, 500.01, 10)
		assert.Equal(t, 50, aggregator.AffordableShare(ps, 500))
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Zero(t, aggregator.AffordableShare(nil, 500))
	})
}

func TestTagShares(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		got := aggregator.TagShares(aggregator.TopTags(sampleProducts(), 5))
		assert.Equal(t, []domain.TagShare{
			{Tag: "tag2", Count: 3, Percent: 50},
			{Tag: "tag3", Count: 2, Percent: 33},
			{Tag: "tag1", Count: 1, Percent: 17},
		}, got)
	})

	t.Run("Empty", func(t *testing.T) {
		got := aggregator.TagShares(nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestSortByPrice(t *testing.T) {
	ps := withPrices(300, 10, 300, 5)
	ps[0].Name = "first300"
	ps[2].Name = "second300"

	got := aggregator.SortByPrice(ps)

	require.Len(t, got, 4)
	assert.Equal(t, 5.0, got[0].Price)
	assert.Equal(t, 10.0, got[1].Price)
	assert.Equal(t, "first300", got[2].Name)
	assert.Equal(t, "second300", got[3].Name)

	assert.Equal(t, 300.0, ps[0].Price, "input must keep its order")
	assert.Equal(t, 5.0, ps[3].Price, "input must keep its order")
}

func TestRows(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		ps := sampleProducts()
		ps[0], ps[2] = ps[2], ps[0]

		got, err := aggregator.Rows(ps, aggregator.Options{})
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, domain.ProductRow{
			ID:         1,
			Name:       "Product 1",
			NetPrice:   "$80.00",
			TaxRate:    "20%",
			Price:      "$100.00",
			Affordable: true,
			Categories: []string{"category1"},
		}, got[0])

		assert.Equal(t, domain.ProductRow{
			ID:         2,
			Name:       "Product 3",
			NetPrice:   "$15,000,000.00",
			TaxRate:    "200000%",
			Price:      "$200,000,000.00",
			Affordable: false,
			Categories: []string{"category1", "category3"},
		}, got[2])
	})

	t.Run("CategoriesCut", func(t *testing.T) {
		ps := withPrices(1)
		ps[0].Categories = []string{"a", "b", "c", "d"}

		got, err := aggregator.Rows(ps, aggregator.Options{TableCategories: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, got[0].Categories)
		assert.Len(t, ps[0].Categories, 4)
	})

	t.Run("FractionalTaxes", func(t *testing.T) {
		ps := withPrices(1)
		ps[0].Taxes = 7.5

		got, err := aggregator.Rows(ps, aggregator.Options{})
		require.NoError(t, err)
		assert.Equal(t, "7.5%", got[0].TaxRate)
	})

	t.Run("NonFiniteTaxes", func(t *testing.T) {
		ps := withPrices(1)
		ps[0].Taxes = math.Inf(1)

		_, err := aggregator.Rows(ps, aggregator.Options{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestSummarize(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		got, err := aggregator.Summarize(sampleProducts(), aggregator.Options{})
		require.NoError(t, err)

		assert.Equal(t, 3, got.TotalProducts)
		assert.Equal(t, "$66,666,766.67", got.AveragePrice)
		assert.Equal(t, 67, got.AffordableShare)
		assert.Len(t, got.PriceDistribution, 8)
		assert.Equal(t, 2, got.PriceDistribution[2].Count)
		assert.Equal(t, 1, got.PriceDistribution[7].Count)
		require.Len(t, got.TopTags, 3)
		assert.Equal(t, "tag2", got.TopTags[0].Tag)
		require.Len(t, got.Products, 3)
		assert.Equal(t, "$100.00", got.Products[0].Price)
	})

	t.Run("TopTagsOption", func(t *testing.T) {
		got, err := aggregator.Summarize(
			sampleProducts(), aggregator.Options{TopTags: 2},
		)
		require.NoError(t, err)
		require.Len(t, got.TopTags, 2)
		assert.Equal(t, 60, got.TopTags[0].Percent)
		assert.Equal(t, 40, got.TopTags[1].Percent)
	})

	t.Run("Empty", func(t *testing.T) {
		got, err := aggregator.Summarize(nil, aggregator.Options{})
		require.NoError(t, err)

		assert.Zero(t, got.TotalProducts)
		assert.Equal(t, "$0.00", got.AveragePrice)
		assert.Zero(t, got.AffordableShare)
		assert.Len(t, got.PriceDistribution, 8)
		assert.Empty(t, got.TopTags)
		assert.Empty(t, got.Products)
	})

	t.Run("InvalidProduct", func(t *testing.T) {
		ps := sampleProducts()
		ps[1].NetPrice = math.NaN()

		_, err := aggregator.Summarize(ps, aggregator.Options{})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
