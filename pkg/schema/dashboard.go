package schema

import "github.com/hamba/avro/v2"

const DashboardSummarySchemaTextV1 = `{
	"type": "record",
	"namespace": "catalog",
	"name": "dashboard_summary",
	"fields": [
		{"name": "total_products", "type": "long"},
		{"name": "average_price", "type": "string"},
		{"name": "affordable_share", "type": "int"},
		{"name": "price_distribution", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "price_bucket",
				"fields": [
					{"name": "range", "type": "string"},
					{"name": "count", "type": "long"}
				]
			}
		}},
		{"name": "top_tags", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "tag_share",
				"fields": [
					{"name": "tag", "type": "string"},
					{"name": "count", "type": "long"},
					{"name": "percent", "type": "int"}
				]
			}
		}}
	]
}`

type (
	DashboardSummaryV1 struct {
		TotalProducts     int64           `avro:"total_products"`
		AveragePrice      string          `avro:"average_price"`
		AffordableShare   int32           `avro:"affordable_share"`
		PriceDistribution []PriceBucketV1 `avro:"price_distribution"`
		TopTags           []TagShareV1    `avro:"top_tags"`
	}

	PriceBucketV1 struct {
		Range string `avro:"range"`
		Count int64  `avro:"count"`
	}

	TagShareV1 struct {
		Tag     string `avro:"tag"`
		Count   int64  `avro:"count"`
		Percent int32  `avro:"percent"`
	}
)

// DashboardSummaryV1Avro panics on invalid [DashboardSummarySchemaTextV1].
func DashboardSummaryV1Avro() avro.Schema {
	return avro.MustParse(DashboardSummarySchemaTextV1)
}
