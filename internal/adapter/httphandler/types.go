package httphandler

import "github.com/niksmo/product-dashboard/internal/core/domain"

type (
	Dashboard struct {
		TotalProducts     int           `json:"total_products"`
		AveragePrice      string        `json:"average_price"`
		AffordableShare   int           `json:"affordable_share"`
		PriceDistribution []PriceBucket `json:"price_distribution"`
		TopTags           []TagShare    `json:"top_tags"`
		Products          []ProductRow  `json:"products"`
	}

	PriceBucket struct {
		Range string `json:"range"`
		Count int    `json:"count"`
	}

	TagShare struct {
		Name    string `json:"name"`
		Value   int    `json:"value"`
		Percent int    `json:"percent"`
	}

	ProductRow struct {
		ID         int      `json:"id"`
		Name       string   `json:"name"`
		NetPrice   string   `json:"net_price"`
		TaxRate    string   `json:"tax_rate"`
		Price      string   `json:"price"`
		Affordable bool     `json:"affordable"`
		Categories []string `json:"categories"`
	}

	errorBody struct {
		Error string `json:"error"`
	}
)

func dashboardFromDomain(d domain.Dashboard) Dashboard {
	v := Dashboard{
		TotalProducts:     d.TotalProducts,
		AveragePrice:      d.AveragePrice,
		AffordableShare:   d.AffordableShare,
		PriceDistribution: make([]PriceBucket, len(d.PriceDistribution)),
		TopTags:           make([]TagShare, len(d.TopTags)),
		Products:          rowsFromDomain(d.Products),
	}

	for i, b := range d.PriceDistribution {
		v.PriceDistribution[i] = PriceBucket{Range: b.Range, Count: b.Count}
	}

	for i, t := range d.TopTags {
		v.TopTags[i] = TagShare{Name: t.Tag, Value: t.Count, Percent: t.Percent}
	}
	return v
}

func rowsFromDomain(rows []domain.ProductRow) []ProductRow {
	vs := make([]ProductRow, len(rows))
	for i, r := range rows {
		categories := r.Categories
		if categories == nil {
			categories = []string{}
		}
		vs[i] = ProductRow{
			ID:         r.ID,
			Name:       r.Name,
			NetPrice:   r.NetPrice,
			TaxRate:    r.TaxRate,
			Price:      r.Price,
			Affordable: r.Affordable,
			Categories: categories,
		}
	}
	return vs
}
