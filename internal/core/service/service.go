package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/product-dashboard/internal/core/aggregator"
	"github.com/niksmo/product-dashboard/internal/core/domain"
	"github.com/niksmo/product-dashboard/internal/core/port"
)

var _ port.DashboardBuilder = (*Service)(nil)
var _ port.ProductsLister = (*Service)(nil)

type Opt func(*Service)

// SnapshotsStorageOpt enables archiving of every computed dashboard.
func SnapshotsStorageOpt(s port.SnapshotsStorage) Opt {
	return func(svc *Service) {
		svc.snapshotsStorage = s
	}
}

func ProductsProducerOpt(p port.ProductsProducer) Opt {
	return func(svc *Service) {
		svc.productsProducer = p
	}
}

func DashboardEmitterOpt(e port.DashboardEmitter) Opt {
	return func(svc *Service) {
		svc.dashboardEmitter = e
	}
}

func ClockOpt(now func() time.Time) Opt {
	return func(svc *Service) {
		svc.now = now
	}
}

type Service struct {
	productsFetcher  port.ProductsFetcher
	aggregatorOpts   aggregator.Options
	snapshotsStorage port.SnapshotsStorage
	productsProducer port.ProductsProducer
	dashboardEmitter port.DashboardEmitter
	now              func() time.Time
}

func New(
	productsFetcher port.ProductsFetcher,
	aggregatorOpts aggregator.Options,
	opts ...Opt,
) Service {
	s := Service{
		productsFetcher: productsFetcher,
		aggregatorOpts:  aggregatorOpts,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Dashboard fetches the catalog and computes the dashboard.
//
// Archiving and publishing are best effort: their failures are logged
// and the dashboard is still returned.
func (s Service) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	const op = "Service.Dashboard"
	log := slog.With("op", op)

	ps, err := s.fetch(ctx)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("%s: %w", op, err)
	}

	d, err := aggregator.Summarize(ps, s.aggregatorOpts)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.archive(ctx, d, ps); err != nil {
		log.Error("failed to archive snapshot", "err", err)
	}

	if err := s.publish(ctx, d, ps); err != nil {
		log.Error("failed to publish dashboard", "err", err)
	}

	log.Info("dashboard computed", "nProducts", d.TotalProducts)
	return d, nil
}

// Products fetches the catalog and returns it as table rows sorted by price.
func (s Service) Products(ctx context.Context) ([]domain.ProductRow, error) {
	const op = "Service.Products"

	ps, err := s.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := aggregator.Rows(ps, s.aggregatorOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rows, nil
}

func (s Service) fetch(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.productsFetcher.FetchProducts(ctx)
}

func (s Service) archive(
	ctx context.Context, d domain.Dashboard, ps []domain.Product,
) error {
	const op = "Service.archive"

	if s.snapshotsStorage == nil {
		return nil
	}

	snapshot := domain.Snapshot{
		TakenAt:   s.now().UTC(),
		Dashboard: d,
		Products:  ps,
	}

	id, err := s.snapshotsStorage.StoreSnapshot(ctx, snapshot)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	slog.Debug("snapshot archived", "op", op, "snapshotID", id)
	return nil
}

func (s Service) publish(
	ctx context.Context, d domain.Dashboard, ps []domain.Product,
) error {
	const op = "Service.publish"

	if s.productsProducer != nil {
		if err := s.productsProducer.ProduceProducts(ctx, ps); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if s.dashboardEmitter != nil {
		if err := s.dashboardEmitter.EmitDashboard(ctx, d); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}
