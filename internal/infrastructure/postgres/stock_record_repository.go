package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

// StockRecordRepo implementación de StockRecordRepository sobre PostgreSQL (usable con pool o tx).
type StockRecordRepo struct {
	q Querier
}

// NewStockRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRecordRepository(q Querier) *StockRecordRepo {
	return &StockRecordRepo{q: q}
}

const stockRecordColumns = `sku, current_stock, reserved_stock, min_stock_level, max_stock_level, reorder_point,
	unit_cost, supplier, location, last_restocked_at, updated_at, created_at`

func scanStockRecord(row pgx.Row) (*entity.StockRecord, error) {
	var r entity.StockRecord
	err := row.Scan(
		&r.SKU, &r.CurrentStock, &r.ReservedStock,
		&r.Thresholds.MinStockLevel, &r.Thresholds.MaxStockLevel, &r.Thresholds.ReorderPoint,
		&r.UnitCost, &r.Supplier, &r.Location, &r.LastRestockedAt, &r.UpdatedAt, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Get obtiene el registro de un SKU; (nil, nil) si no existe.
func (r *StockRecordRepo) Get(ctx context.Context, sku string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockRecordColumns + ` FROM stock_records WHERE sku = $1`
	rec, err := scanStockRecord(r.q.QueryRow(ctx, query, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock record: %w", err)
	}
	return rec, nil
}

// Upsert inserta o reemplaza el registro del SKU.
func (r *StockRecordRepo) Upsert(ctx context.Context, rec *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (` + stockRecordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (sku) DO UPDATE SET
			current_stock = EXCLUDED.current_stock,
			reserved_stock = EXCLUDED.reserved_stock,
			min_stock_level = EXCLUDED.min_stock_level,
			max_stock_level = EXCLUDED.max_stock_level,
			reorder_point = EXCLUDED.reorder_point,
			unit_cost = EXCLUDED.unit_cost,
			supplier = EXCLUDED.supplier,
			location = EXCLUDED.location,
			last_restocked_at = EXCLUDED.last_restocked_at,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		rec.SKU, rec.CurrentStock, rec.ReservedStock,
		rec.Thresholds.MinStockLevel, rec.Thresholds.MaxStockLevel, rec.Thresholds.ReorderPoint,
		rec.UnitCost, rec.Supplier, rec.Location, rec.LastRestockedAt, rec.UpdatedAt, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock record: %w", err)
	}
	return nil
}

// List devuelve todos los registros ordenados por SKU.
func (r *StockRecordRepo) List(ctx context.Context) ([]*entity.StockRecord, error) {
	query := `SELECT ` + stockRecordColumns + ` FROM stock_records ORDER BY sku`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stock records: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockRecord
	for rows.Next() {
		rec, err := scanStockRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}
