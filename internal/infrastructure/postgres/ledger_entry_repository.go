package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.LedgerEntryRepository = (*LedgerEntryRepo)(nil)

// LedgerEntryRepo log de movimientos sobre PostgreSQL. Solo INSERT y SELECT.
type LedgerEntryRepo struct {
	q Querier
}

// NewLedgerEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerEntryRepository(q Querier) *LedgerEntryRepo {
	return &LedgerEntryRepo{q: q}
}

// Append inserta la entrada; el ID lo asigna la secuencia BIGSERIAL.
func (r *LedgerEntryRepo) Append(ctx context.Context, e *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (sku, kind, quantity, stock_before, stock_after, reserved_before, reserved_after,
			reason, unit_cost, supplier, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		e.SKU, string(e.Kind), e.Quantity, e.StockBefore, e.StockAfter, e.ReservedBefore, e.ReservedAfter,
		e.Reason, e.UnitCost, e.Supplier, e.CreatedAt,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

// List devuelve las entradas filtradas de la más reciente a la más antigua y el total sin paginar.
func (r *LedgerEntryRepo) List(ctx context.Context, filter entity.LedgerFilter, limit, offset int) ([]*entity.LedgerEntry, int, error) {
	where := ` WHERE 1=1`
	var args []any
	pos := 1
	if filter.SKU != "" {
		where += fmt.Sprintf(" AND sku = $%d", pos)
		args = append(args, filter.SKU)
		pos++
	}
	if filter.Kind != "" {
		where += fmt.Sprintf(" AND kind = $%d", pos)
		args = append(args, string(filter.Kind))
		pos++
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM ledger_entries`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ledger entries: %w", err)
	}

	query := `
		SELECT id, sku, kind, quantity, stock_before, stock_after, reserved_before, reserved_after,
			reason, unit_cost, supplier, created_at
		FROM ledger_entries` + where + fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.LedgerEntry, 0)
	for rows.Next() {
		var e entity.LedgerEntry
		var kind string
		if err := rows.Scan(&e.ID, &e.SKU, &kind, &e.Quantity, &e.StockBefore, &e.StockAfter,
			&e.ReservedBefore, &e.ReservedAfter, &e.Reason, &e.UnitCost, &e.Supplier, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.Kind = entity.TransitionKind(kind)
		list = append(list, &e)
	}
	return list, total, rows.Err()
}
