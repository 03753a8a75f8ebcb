package port

import (
	"context"

	"github.com/niksmo/product-dashboard/internal/core/domain"
)

type DashboardBuilder interface {
	Dashboard(context.Context) (domain.Dashboard, error)
}

type ProductsLister interface {
	Products(context.Context) ([]domain.ProductRow, error)
}

type ProductsFetcher interface {
	FetchProducts(context.Context) ([]domain.Product, error)
}

type SnapshotsStorage interface {
	StoreSnapshot(context.Context, domain.Snapshot) (int64, error)
}

type ProductsProducer interface {
	ProduceProducts(context.Context, []domain.Product) error
}

type DashboardEmitter interface {
	EmitDashboard(context.Context, domain.Dashboard) error
}
