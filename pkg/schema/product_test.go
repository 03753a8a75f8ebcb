package schema

import (
	"testing"

	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductV1(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		vMarshal := ProductV1{
			ID:          2,
			Name:        "testName",
			Description: "testDescription",
			EAN:         "1234567890123",
			UPC:         "123456789012",
			Image:       "image.jpg",
			Images: []ProductImageV1{
				{Title: "imageTitle1", Description: "imageDesc1", URL: "imageURL1"},
			},
			NetPrice:   80,
			Taxes:      20,
			Price:      100,
			Categories: []string{"category1", "category3"},
			Tags:       []string{"tag1", "tag2"},
		}

		var productSchema avro.Schema

		require.NotPanics(t, func() {
			productSchema = ProductV1Avro()
		})

		data, err := avro.Marshal(productSchema, vMarshal)
		require.NoError(t, err)

		var vUnmarshal ProductV1
		err = avro.Unmarshal(productSchema, data, &vUnmarshal)
		require.NoError(t, err)

		assert.Equal(t, vMarshal, vUnmarshal)
	})

	t.Run("NilArrays", func(t *testing.T) {
		vMarshal := ProductV1{
			ID:    1,
			Name:  "testName",
			Price: 5000,
		}

		var pSchema avro.Schema

		require.NotPanics(t, func() {
			pSchema = ProductV1Avro()
		})

		data, err := avro.Marshal(pSchema, vMarshal)
		require.NoError(t, err)

		var vUnmarshal ProductV1
		err = avro.Unmarshal(pSchema, data, &vUnmarshal)
		require.NoError(t, err)

		assert.Equal(t, vMarshal.ID, vUnmarshal.ID)
		assert.Equal(t, vMarshal.Name, vUnmarshal.Name)
		assert.Equal(t, vMarshal.Price, vUnmarshal.Price)
		assert.Empty(t, vUnmarshal.Images)
		assert.Empty(t, vUnmarshal.Categories)
		assert.Empty(t, vUnmarshal.Tags)
	})
}

func TestDashboardSummaryV1(t *testing.T) {
	vMarshal := DashboardSummaryV1{
		TotalProducts:   3,
		AveragePrice:    "$66,666,766.67",
		AffordableShare: 67,
		PriceDistribution: []PriceBucketV1{
			{Range: "$0-50", Count: 0},
			{Range: "$100-250", Count: 2},
			{Range: "$5K+", Count: 1},
		},
		TopTags: []TagShareV1{
			{Tag: "tag2", Count: 3, Percent: 50},
			{Tag: "tag3", Count: 2, Percent: 33},
		},
	}

	var dSchema avro.Schema

	require.NotPanics(t, func() {
		dSchema = DashboardSummaryV1Avro()
	})

	data, err := avro.Marshal(dSchema, vMarshal)
	require.NoError(t, err)

	var vUnmarshal DashboardSummaryV1
	err = avro.Unmarshal(dSchema, data, &vUnmarshal)
	require.NoError(t, err)

	assert.Equal(t, vMarshal, vUnmarshal)
}
