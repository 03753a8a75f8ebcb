package kafka

import (
	"context"
	"log/slog"

	"github.com/niksmo/product-dashboard/internal/core/domain"
	"github.com/niksmo/product-dashboard/internal/core/port"
	"github.com/niksmo/product-dashboard/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.ProductsProducer = (*ProductsProducer)(nil)

// A ProductsProducer produces catalog products keyed by product name.
type ProductsProducer struct {
	cl       ProducerClient
	encoder  Encoder
	opPrefix string
}

func NewProductsProducer(
	opts ...ProducerOpt,
) (ProductsProducer, error) {
	const op = "NewProductsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return ProductsProducer{}, opErr(err, op)
		}
	}

	return ProductsProducer{
		cl:       options.cl,
		encoder:  options.encoder,
		opPrefix: "ProductsProducer",
	}, nil
}

func (p ProductsProducer) Close() {
	const op = "Close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p ProductsProducer) ProduceProducts(
	ctx context.Context, ps []domain.Product,
) error {
	const op = "ProduceProducts"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if len(ps) == 0 {
		return nil
	}

	rs, err := p.createRecords(ps)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	slog.Debug("products produced",
		"op", makeOp(p.opPrefix, op), "nRecords", len(rs))
	return nil
}

func (p ProductsProducer) createRecords(
	ps []domain.Product,
) ([]*kgo.Record, error) {
	const op = "createRecords"

	rs := make([]*kgo.Record, 0, len(ps))
	for _, product := range ps {
		s := p.toSchema(product)
		v, err := p.encoder.Encode(s)
		if err != nil {
			return nil, opErr(err, p.opPrefix, op)
		}
		rs = append(rs, &kgo.Record{Key: []byte(s.Name), Value: v})
	}
	return rs, nil
}

func (ProductsProducer) toSchema(v domain.Product) schema.ProductV1 {
	return productToSchemaV1(v)
}
