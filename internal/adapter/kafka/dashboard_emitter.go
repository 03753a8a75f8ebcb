package kafka

import (
	"context"
	"crypto/tls"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/niksmo/product-dashboard/internal/core/domain"
	"github.com/niksmo/product-dashboard/internal/core/port"
	"github.com/niksmo/product-dashboard/pkg/schema"
)

var _ port.DashboardEmitter = (*DashboardEmitter)(nil)

// DashboardKey is the message key of every emitted dashboard summary.
const DashboardKey = "catalog"

// A DashboardEmitter emits [schema.DashboardSummaryV1] to a goka stream.
type DashboardEmitter struct {
	ge       EmitterClient
	opPrefix string
}

func NewDashboardEmitter(
	seedBrokers []string, topic string, serde Serde, tlsConfig *tls.Config,
) (DashboardEmitter, error) {
	const op = "NewDashboardEmitter"

	ge, err := goka.NewEmitter(
		seedBrokers,
		goka.Stream(topic),
		newDashboardSummaryCodec(serde),
		goka.WithEmitterProducerBuilder(
			goka.ProducerBuilderWithConfig(emitterConfig(tlsConfig)),
		),
	)
	if err != nil {
		return DashboardEmitter{}, opErr(err, op)
	}
	return NewDashboardEmitterWithClient(ge), nil
}

func NewDashboardEmitterWithClient(ge EmitterClient) DashboardEmitter {
	return DashboardEmitter{ge: ge, opPrefix: "DashboardEmitter"}
}

func (e DashboardEmitter) EmitDashboard(
	ctx context.Context, d domain.Dashboard,
) error {
	const op = "EmitDashboard"

	if err := ctx.Err(); err != nil {
		return opErr(err, e.opPrefix, op)
	}

	if err := e.ge.EmitSync(DashboardKey, dashboardToSchemaV1(d)); err != nil {
		return opErr(err, e.opPrefix, op)
	}
	return nil
}

func (e DashboardEmitter) Close() {
	const op = "Close"
	log := slog.With("op", makeOp(e.opPrefix, op))

	log.Info("closing emitter...")
	if err := e.ge.Finish(); err != nil {
		log.Error("failed to finish gracefully", "err", err)
		return
	}
	log.Info("emitter is closed")
}

// A dashboardSummaryCodec used for serde [schema.DashboardSummaryV1]
type dashboardSummaryCodec struct {
	serde Serde
}

func newDashboardSummaryCodec(s Serde) dashboardSummaryCodec {
	return dashboardSummaryCodec{s}
}

func (c dashboardSummaryCodec) Encode(v any) ([]byte, error) {
	const op = "dashboardSummaryCodec.Encode"
	if _, ok := v.(schema.DashboardSummaryV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c dashboardSummaryCodec) Decode(data []byte) (any, error) {
	const op = "dashboardSummaryCodec.Decode"
	var s schema.DashboardSummaryV1
	if err := c.serde.Decode(data, &s); err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}
