package catalog

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/niksmo/product-dashboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const okBody = `{
	"status": "OK",
	"code": 200,
	"total": 2,
	"data": [
		{
			"id": 1,
			"name": "Lamp",
			"description": "Desk lamp",
			"ean": "1234567890123",
			"upc": "123456789012",
			"image": "http://placeimg.com/640/480/tech",
			"images": [
				{"title": "front", "description": "front view", "url": "http://img/1"}
			],
			"net_price": 80.5,
			"taxes": 20,
			"price": 96.6,
			"categories": ["home", "light"],
			"tags": ["lamp", "desk"]
		},
		{
			"id": 1,
			"name": "Pen",
			"net_price": 1,
			"taxes": 200000,
			"price": 2
		}
	]
}`

func newTestClient(t *testing.T, h http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cl, err := NewClient(ClientConfig{
		URL:            srv.URL + "/api/v2/products",
		Quantity:       25,
		CategoriesType: "string",
		Timeout:        time.Second,
	})
	require.NoError(t, err)
	return cl
}

func TestClientFetchProducts(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		var gotQuery map[string][]string
		var gotPath string
		cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.Query()
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(okBody))
		})

		ps, err := cl.FetchProducts(t.Context())
		require.NoError(t, err)

		assert.Equal(t, "/api/v2/products", gotPath)
		assert.Equal(t, []string{"25"}, gotQuery["_quantity"])
		assert.Equal(t, []string{"string"}, gotQuery["_categories_type"])

		require.Len(t, ps, 2)
		assert.Equal(t, domain.Product{
			ID:          1,
			Name:        "Lamp",
			Description: "Desk lamp",
			EAN:         "1234567890123",
			UPC:         "123456789012",
			Image:       "http://placeimg.com/640/480/tech",
			Images: []domain.ProductImage{
				{Title: "front", Description: "front view", URL: "http://img/1"},
			},
			NetPrice:   80.5,
			Taxes:      20,
			Price:      96.6,
			Categories: []string{"home", "light"},
			Tags:       []string{"lamp", "desk"},
		}, ps[0])

		assert.Equal(t, 1, ps[1].ID, "duplicate ids are kept")
		assert.NotNil(t, ps[1].Tags)
		assert.NotNil(t, ps[1].Categories)
		assert.Empty(t, ps[1].Tags)
		assert.Empty(t, ps[1].Images)
	})

	t.Run("HTTPError", func(t *testing.T) {
		cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})

		_, err := cl.FetchProducts(t.Context())
		assert.ErrorIs(t, err, ErrUnexpectedStatus)
	})

	t.Run("EnvelopeError", func(t *testing.T) {
		cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"ERROR","code":400,"total":0,"data":[]}`))
		})

		_, err := cl.FetchProducts(t.Context())
		assert.ErrorIs(t, err, ErrUnexpectedStatus)
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":`))
		})

		_, err := cl.FetchProducts(t.Context())
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnexpectedStatus)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		cl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(okBody))
		})

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		_, err := cl.FetchProducts(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestClientToDomain(t *testing.T) {
	var cl Client
	_, err := cl.toDomain([]product{{ID: 3, Price: math.Inf(1)}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewClient(t *testing.T) {
	t.Run("RelativeURL", func(t *testing.T) {
		_, err := NewClient(ClientConfig{URL: "/products"})
		require.Error(t, err)
	})

	t.Run("KeepsExistingQuery", func(t *testing.T) {
		cl, err := NewClient(ClientConfig{
			URL:      "https://fakerapi.it/api/v2/products?_locale=en_US",
			Quantity: 5,
		})
		require.NoError(t, err)
		assert.Equal(
			t,
			"https://fakerapi.it/api/v2/products?_locale=en_US&_quantity=5",
			cl.endpoint,
		)
	})
}
