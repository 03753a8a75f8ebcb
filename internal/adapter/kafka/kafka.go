package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"github.com/IBM/sarama"
	"github.com/lovoo/goka"
	"github.com/niksmo/product-dashboard/internal/core/domain"
	"github.com/niksmo/product-dashboard/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
}

// ProducerClientOpt connects to the seed brokers and pings them.
// A nil tlsConfig means plaintext.
func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, topic string,
	tlsConfig *tls.Config,
) ProducerOpt {
	return func(opts *producerOpts) error {
		kOpts := []kgo.Opt{
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
		}
		if tlsConfig != nil {
			kOpts = append(kOpts, kgo.DialTLSConfig(tlsConfig))
		}

		cl, err := kgo.NewClient(kOpts...)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			cl.Close()
			return err
		}
		opts.cl = cl
		return nil
	}
}

// ProducerTestClientOpt sets an already built client.
func ProducerTestClientOpt(cl ProducerClient) ProducerOpt {
	return func(opts *producerOpts) error {
		if cl == nil {
			return errors.New("client is nil")
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type EmitterClient interface {
	EmitSync(key string, msg any) error
	Finish() error
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

// emitterConfig returns the goka producer config, acks from all replicas.
func emitterConfig(tlsConfig *tls.Config) *sarama.Config {
	cfg := goka.DefaultConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	if tlsConfig != nil {
		cfg.Net.TLS.Enable = true
		cfg.Net.TLS.Config = tlsConfig
	}
	return cfg
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func productToSchemaV1(v domain.Product) (s schema.ProductV1) {
	s.ID = int64(v.ID)
	s.Name = v.Name
	s.Description = v.Description
	s.EAN = v.EAN
	s.UPC = v.UPC
	s.Image = v.Image
	s.NetPrice = v.NetPrice
	s.Taxes = v.Taxes
	s.Price = v.Price
	s.Categories = nonNil(v.Categories)
	s.Tags = nonNil(v.Tags)

	s.Images = make([]schema.ProductImageV1, len(v.Images))
	for i := range v.Images {
		s.Images[i].Title = v.Images[i].Title
		s.Images[i].Description = v.Images[i].Description
		s.Images[i].URL = v.Images[i].URL
	}
	return
}

func dashboardToSchemaV1(v domain.Dashboard) (s schema.DashboardSummaryV1) {
	s.TotalProducts = int64(v.TotalProducts)
	s.AveragePrice = v.AveragePrice
	s.AffordableShare = int32(v.AffordableShare)

	s.PriceDistribution = make([]schema.PriceBucketV1, len(v.PriceDistribution))
	for i, b := range v.PriceDistribution {
		s.PriceDistribution[i].Range = b.Range
		s.PriceDistribution[i].Count = int64(b.Count)
	}

	s.TopTags = make([]schema.TagShareV1, len(v.TopTags))
	for i, t := range v.TopTags {
		s.TopTags[i].Tag = t.Tag
		s.TopTags[i].Count = int64(t.Count)
		s.TopTags[i].Percent = int32(t.Percent)
	}
	return
}

func nonNil(vs []string) []string {
	if vs == nil {
		return []string{}
	}
	return vs
}
