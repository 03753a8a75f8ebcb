package storage

import (
	"github.com/niksmo/product-dashboard/internal/core/domain"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type (
	dashboardRecord struct {
		TotalProducts     int              `json:"total_products"`
		AveragePrice      string           `json:"average_price"`
		AffordableShare   int              `json:"affordable_share"`
		PriceDistribution []bucketRecord   `json:"price_distribution"`
		TopTags           []tagShareRecord `json:"top_tags"`
		Products          []rowRecord      `json:"products"`
	}

	bucketRecord struct {
		Range string `json:"range"`
		Count int    `json:"count"`
	}

	tagShareRecord struct {
		Tag     string `json:"tag"`
		Count   int    `json:"count"`
		Percent int    `json:"percent"`
	}

	rowRecord struct {
		ID         int      `json:"id"`
		Name       string   `json:"name"`
		NetPrice   string   `json:"net_price"`
		TaxRate    string   `json:"tax_rate"`
		Price      string   `json:"price"`
		Affordable bool     `json:"affordable"`
		Categories []string `json:"categories"`
	}

	imageRecord struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
	}
)

func toDashboardRecord(d domain.Dashboard) dashboardRecord {
	r := dashboardRecord{
		TotalProducts:     d.TotalProducts,
		AveragePrice:      d.AveragePrice,
		AffordableShare:   d.AffordableShare,
		PriceDistribution: make([]bucketRecord, 0, len(d.PriceDistribution)),
		TopTags:           make([]tagShareRecord, 0, len(d.TopTags)),
		Products:          make([]rowRecord, 0, len(d.Products)),
	}
	for _, b := range d.PriceDistribution {
		r.PriceDistribution = append(r.PriceDistribution, bucketRecord(b))
	}
	for _, t := range d.TopTags {
		r.TopTags = append(r.TopTags, tagShareRecord(t))
	}
	for _, p := range d.Products {
		r.Products = append(r.Products, rowRecord(p))
	}
	return r
}

func (r dashboardRecord) toDomain() domain.Dashboard {
	d := domain.Dashboard{
		TotalProducts:     r.TotalProducts,
		AveragePrice:      r.AveragePrice,
		AffordableShare:   r.AffordableShare,
		PriceDistribution: make([]domain.PriceBucket, 0, len(r.PriceDistribution)),
		TopTags:           make([]domain.TagShare, 0, len(r.TopTags)),
		Products:          make([]domain.ProductRow, 0, len(r.Products)),
	}
	for _, b := range r.PriceDistribution {
		d.PriceDistribution = append(d.PriceDistribution, domain.PriceBucket(b))
	}
	for _, t := range r.TopTags {
		d.TopTags = append(d.TopTags, domain.TagShare(t))
	}
	for _, p := range r.Products {
		d.Products = append(d.Products, domain.ProductRow(p))
	}
	return d
}

func toImageRecords(imgs []domain.ProductImage) []imageRecord {
	rs := make([]imageRecord, 0, len(imgs))
	for _, img := range imgs {
		rs = append(rs, imageRecord(img))
	}
	return rs
}

func fromImageRecords(rs []imageRecord) []domain.ProductImage {
	imgs := make([]domain.ProductImage, 0, len(rs))
	for _, r := range rs {
		imgs = append(imgs, domain.ProductImage(r))
	}
	return imgs
}

// marshalList encodes nil slices as an empty JSON array.
func marshalList[T any](vs []T) (string, error) {
	if vs == nil {
		vs = []T{}
	}
	b, err := json.Marshal(vs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
