package schema

import "github.com/hamba/avro/v2"

const ProductSchemaTextV1 = `{
	"type": "record",
	"namespace": "catalog",
	"name": "product",
	"fields": [
		{"name": "id", "type": "long"},
		{"name": "name", "type": "string"},
		{"name": "description", "type": "string"},
		{"name": "ean", "type": "string"},
		{"name": "upc", "type": "string"},
		{"name": "image", "type": "string"},
		{"name": "images", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "product_image",
				"fields": [
					{"name": "title", "type": "string"},
					{"name": "description", "type": "string"},
					{"name": "url", "type": "string"}
				]
			}
		}},
		{"name": "net_price", "type": "double"},
		{"name": "taxes", "type": "double"},
		{"name": "price", "type": "double"},
		{"name": "categories", "type": {"type": "array", "items": "string"}},
		{"name": "tags", "type": {"type": "array", "items": "string"}}
	]
}`

type (
	ProductV1 struct {
		ID          int64            `avro:"id"`
		Name        string           `avro:"name"`
		Description string           `avro:"description"`
		EAN         string           `avro:"ean"`
		UPC         string           `avro:"upc"`
		Image       string           `avro:"image"`
		Images      []ProductImageV1 `avro:"images"`
		NetPrice    float64          `avro:"net_price"`
		Taxes       float64          `avro:"taxes"`
		Price       float64          `avro:"price"`
		Categories  []string         `avro:"categories"`
		Tags        []string         `avro:"tags"`
	}

	ProductImageV1 struct {
		Title       string `avro:"title"`
		Description string `avro:"description"`
		URL         string `avro:"url"`
	}
)

// ProductV1Avro panics on invalid [ProductSchemaTextV1].
func ProductV1Avro() avro.Schema {
	return avro.MustParse(ProductSchemaTextV1)
}
