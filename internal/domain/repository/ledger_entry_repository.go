package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// LedgerEntryRepository define el puerto del log de movimientos (append-only).
// No expone operaciones de edición ni borrado.
type LedgerEntryRepository interface {
	// Append asigna ID a la entrada y la persiste.
	Append(ctx context.Context, entry *entity.LedgerEntry) error
	// List devuelve las entradas que cumplen el filtro, de la más reciente a la más antigua,
	// junto con el total sin paginar.
	List(ctx context.Context, filter entity.LedgerFilter, limit, offset int) ([]*entity.LedgerEntry, int, error)
}
