package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.StockRecordRepository = (*recordRepo)(nil)

type recordRepo struct {
	s  *Store
	tx *stagedTx
}

func (r *recordRepo) Get(ctx context.Context, sku string) (*entity.StockRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.tx != nil {
		if rec, ok := r.tx.records[sku]; ok {
			return rec.Clone(), nil
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.records[sku]
	if !ok {
		return nil, nil
	}
	return rec.Clone(), nil
}

func (r *recordRepo) Upsert(ctx context.Context, rec *entity.StockRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.tx != nil {
		r.tx.records[rec.SKU] = rec.Clone()
		return nil
	}
	r.s.mu.Lock()
	r.s.records[rec.SKU] = rec.Clone()
	r.s.mu.Unlock()
	return nil
}

func (r *recordRepo) List(ctx context.Context) ([]*entity.StockRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	out := make([]*entity.StockRecord, 0, len(r.s.records))
	for sku, rec := range r.s.records {
		if r.tx != nil {
			if _, staged := r.tx.records[sku]; staged {
				continue
			}
		}
		out = append(out, rec.Clone())
	}
	r.s.mu.RUnlock()
	if r.tx != nil {
		for _, rec := range r.tx.records {
			out = append(out, rec.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}
