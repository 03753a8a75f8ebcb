package domain

import "time"

type (
	// A PriceBucket is one bar of the price distribution histogram.
	PriceBucket struct {
		Range string
		Count int
	}

	TagCount struct {
		Tag   string
		Count int
	}

	// A TagShare is a top tag with its rounded percentage of all top tags.
	TagShare struct {
		Tag     string
		Count   int
		Percent int
	}

	// A ProductRow is one line of the products table, prices already formatted.
	ProductRow struct {
		ID         int
		Name       string
		NetPrice   string
		TaxRate    string
		Price      string
		Affordable bool
		Categories []string
	}

	Dashboard struct {
		TotalProducts     int
		AveragePrice      string
		AffordableShare   int
		PriceDistribution []PriceBucket
		TopTags           []TagShare
		Products          []ProductRow
	}
)

// A Snapshot is a dashboard together with the products it was computed from.
type Snapshot struct {
	ID        int64
	TakenAt   time.Time
	Dashboard Dashboard
	Products  []Product
}
