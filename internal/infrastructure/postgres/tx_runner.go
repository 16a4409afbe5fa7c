package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, toma el advisory lock del SKU, ejecuta fn con repos atados a la tx
// y hace Commit o Rollback. El lock se libera al terminar la transacción y funciona aunque el
// registro todavía no exista (no hay fila que bloquear con FOR UPDATE).
func (r *TxRunner) Run(ctx context.Context, sku string, fn func(
	records repository.StockRecordRepository,
	entries repository.LedgerEntryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, sku); err != nil {
		return fmt.Errorf("lock sku %s: %w", sku, err)
	}

	if err := fn(NewStockRecordRepository(tx), NewLedgerEntryRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
