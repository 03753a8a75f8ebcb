package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/niksmo/product-dashboard/internal/core/domain"
	"github.com/niksmo/product-dashboard/internal/core/port"
)

var _ port.ProductsFetcher = (*Client)(nil)

var ErrUnexpectedStatus = errors.New("unexpected catalog status")

const statusOK = "OK"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// A ClientConfig used for setup [Client].
type ClientConfig struct {
	URL            string
	Quantity       int
	CategoriesType string
	Timeout        time.Duration
}

// A Client fetches products from the faker products API.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

func NewClient(config ClientConfig) (Client, error) {
	const op = "catalog.NewClient"

	u, err := url.Parse(config.URL)
	if err != nil {
		return Client{}, fmt.Errorf("%s: %w", op, err)
	}

	if u.Scheme == "" || u.Host == "" {
		return Client{}, fmt.Errorf("%s: absolute URL required: %q", op, config.URL)
	}

	q := u.Query()
	if config.Quantity > 0 {
		q.Set("_quantity", strconv.Itoa(config.Quantity))
	}
	if config.CategoriesType != "" {
		q.Set("_categories_type", config.CategoriesType)
	}
	u.RawQuery = q.Encode()

	return Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		endpoint:   u.String(),
	}, nil
}

// FetchProducts loads one catalog page and validates every product.
func (c Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Client.FetchProducts"
	log := slog.With("op", op)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			log.Warn("failed to close response body", "err", err)
		}
	}()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"%s: http %d: %w", op, res.StatusCode, ErrUnexpectedStatus,
		)
	}

	var body response
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%s: failed to decode: %w", op, err)
	}

	if body.Status != statusOK {
		return nil, fmt.Errorf(
			"%s: status %q code %d: %w",
			op, body.Status, body.Code, ErrUnexpectedStatus,
		)
	}

	ps, err := c.toDomain(body.Data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("products fetched", "nProducts", len(ps), "total", body.Total)
	return ps, nil
}

func (c Client) toDomain(vs []product) ([]domain.Product, error) {
	ps := make([]domain.Product, 0, len(vs))
	for _, v := range vs {
		p := domain.Product{
			ID:          v.ID,
			Name:        v.Name,
			Description: v.Description,
			EAN:         v.EAN,
			UPC:         v.UPC,
			Image:       v.Image,
			NetPrice:    v.NetPrice,
			Taxes:       v.Taxes,
			Price:       v.Price,
			Categories:  nonNil(v.Categories),
			Tags:        nonNil(v.Tags),
		}

		p.Images = make([]domain.ProductImage, len(v.Images))
		for i := range v.Images {
			p.Images[i].Title = v.Images[i].Title
			p.Images[i].Description = v.Images[i].Description
			p.Images[i].URL = v.Images[i].URL
		}

		if err := p.Validate(); err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
