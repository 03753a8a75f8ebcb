package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/product-dashboard/internal/core/domain"
	"github.com/niksmo/product-dashboard/internal/core/port"
	"github.com/niksmo/product-dashboard/pkg/retry"
)

var _ port.SnapshotsStorage = (*SnapshotsRepository)(nil)

const storeAttempts = 3

type SnapshotsRepository struct {
	sqldb sqldb
}

func NewSnapshotsRepository(sqldb sqldb) SnapshotsRepository {
	return SnapshotsRepository{sqldb}
}

// StoreSnapshot saves the dashboard with its products in one transaction
// and returns the snapshot id. Serialization failures are retried.
func (r SnapshotsRepository) StoreSnapshot(
	ctx context.Context, s domain.Snapshot,
) (int64, error) {
	const op = "SnapshotsRepository.StoreSnapshot"

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	dashboardB, err := json.Marshal(toDashboardRecord(s.Dashboard))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	retryCfg := retry.RetryConfig{
		MaxAttempts: storeAttempts,
		Backoff:     retry.ExponentialBackoff(20 * time.Millisecond),
		ShouldRetry: isSerializationFailure,
	}

	id, err := retry.DoWithResult(ctx, retryCfg, func() (int64, error) {
		return r.storeTx(ctx, s, string(dashboardB))
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

func (r SnapshotsRepository) storeTx(
	ctx context.Context, s domain.Snapshot, dashboard string,
) (id int64, storeErr error) {
	const op = "SnapshotsRepository.storeTx"
	log := slog.With("op", op)

	tx, err := r.sqldb.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to begin tx: %w", err)
	}

	defer func() {
		if storeErr == nil {
			if err := tx.Commit(); err != nil {
				storeErr = fmt.Errorf("failed to commit: %w", err)
			}
			return
		}

		if err := tx.Rollback(); err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	query := `
		INSERT INTO dashboard_snapshots (
			taken_at, total_products, average_price, affordable_share, dashboard
		)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;`

	err = tx.QueryRowContext(ctx, query,
		s.TakenAt, s.Dashboard.TotalProducts, s.Dashboard.AveragePrice,
		s.Dashboard.AffordableShare, dashboard,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	if err := r.storeProducts(ctx, tx, id, s.Products); err != nil {
		return 0, err
	}

	return id, nil
}

func (r SnapshotsRepository) storeProducts(
	ctx context.Context, tx *sql.Tx, snapshotID int64, ps []domain.Product,
) error {
	const op = "SnapshotsRepository.storeProducts"
	log := slog.With("op", op)

	query := `
		INSERT INTO snapshot_products (
			snapshot_id, position, product_id, name, description, ean, upc,
			image, images, net_price, taxes, price, categories, tags
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare stmt: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Error("failed to close prepared stmt", "err", err)
		}
	}()

	for i, p := range ps {
		images, err := marshalList(toImageRecords(p.Images))
		if err != nil {
			return err
		}
		categories, err := marshalList(p.Categories)
		if err != nil {
			return err
		}
		tags, err := marshalList(p.Tags)
		if err != nil {
			return err
		}

		_, err = stmt.ExecContext(ctx,
			snapshotID, i, p.ID, p.Name, p.Description, p.EAN, p.UPC,
			p.Image, images, p.NetPrice, p.Taxes, p.Price, categories, tags,
		)
		if err != nil {
			return fmt.Errorf("failed to insert product %d: %w", i, err)
		}
	}
	return nil
}

// ReadSnapshot returns the snapshot with its products in the stored order.
func (r SnapshotsRepository) ReadSnapshot(
	ctx context.Context, id int64,
) (domain.Snapshot, error) {
	const op = "SnapshotsRepository.ReadSnapshot"

	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT id, taken_at, dashboard
		FROM dashboard_snapshots
		WHERE id = $1;`

	var (
		s          domain.Snapshot
		dashboardS string
	)
	err := r.sqldb.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.TakenAt, &dashboardS,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Snapshot{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return domain.Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	s.TakenAt = s.TakenAt.UTC()

	var dr dashboardRecord
	if err := json.Unmarshal([]byte(dashboardS), &dr); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	s.Dashboard = dr.toDomain()

	s.Products, err = r.readProducts(ctx, id)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

func (r SnapshotsRepository) readProducts(
	ctx context.Context, snapshotID int64,
) (ps []domain.Product, readErr error) {
	const op = "SnapshotsRepository.readProducts"

	query := `
		SELECT
			product_id, name, description, ean, upc,
			image, images, net_price, taxes, price, categories, tags
		FROM snapshot_products
		WHERE snapshot_id = $1
		ORDER BY position ASC;`

	rows, err := r.sqldb.QueryContext(ctx, query, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "op", op, "err", err)
		}
	}()

	ps = make([]domain.Product, 0)
	for rows.Next() {
		var (
			p                           domain.Product
			imagesS, categoriesS, tagsS string
			images                      []imageRecord
		)
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.EAN, &p.UPC,
			&p.Image, &imagesS, &p.NetPrice, &p.Taxes, &p.Price,
			&categoriesS, &tagsS,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan: %w", op, err)
		}

		if err := json.Unmarshal([]byte(imagesS), &images); err != nil {
			return nil, fmt.Errorf("%s: images: %w", op, err)
		}
		if err := json.Unmarshal([]byte(categoriesS), &p.Categories); err != nil {
			return nil, fmt.Errorf("%s: categories: %w", op, err)
		}
		if err := json.Unmarshal([]byte(tagsS), &p.Tags); err != nil {
			return nil, fmt.Errorf("%s: tags: %w", op, err)
		}
		p.Images = fromImageRecords(images)

		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}
