package memory

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.LedgerEntryRepository = (*entryRepo)(nil)

type entryRepo struct {
	s  *Store
	tx *stagedTx
}

// Append asigna el ID en e y guarda una copia.
func (r *entryRepo) Append(ctx context.Context, e *entity.LedgerEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.ID = r.s.nextID()
	c := *e
	if r.tx != nil {
		r.tx.entries = append(r.tx.entries, &c)
		return nil
	}
	r.s.mu.Lock()
	r.s.insertEntry(&c)
	r.s.mu.Unlock()
	return nil
}

// List recorre el log de la entrada más reciente a la más antigua.
func (r *entryRepo) List(ctx context.Context, filter entity.LedgerFilter, limit, offset int) ([]*entity.LedgerEntry, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	var out []*entity.LedgerEntry
	total := 0
	collect := func(e *entity.LedgerEntry) {
		if !filter.Matches(e) {
			return
		}
		if total >= offset && (limit <= 0 || len(out) < limit) {
			c := *e
			out = append(out, &c)
		}
		total++
	}

	// Las entradas pendientes de la unidad en curso son siempre las más nuevas.
	if r.tx != nil {
		for i := len(r.tx.entries) - 1; i >= 0; i-- {
			collect(r.tx.entries[i])
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for i := len(r.s.entries) - 1; i >= 0; i-- {
		collect(r.s.entries[i])
	}
	if out == nil {
		out = []*entity.LedgerEntry{}
	}
	return out, total, nil
}
