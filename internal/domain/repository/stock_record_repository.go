package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// StockRecordRepository define el puerto de persistencia para StockRecord (DIP).
// Usado dentro de TxRunner para las mutaciones y fuera de él para lecturas.
type StockRecordRepository interface {
	// Get devuelve (nil, nil) si el SKU no tiene registro.
	Get(ctx context.Context, sku string) (*entity.StockRecord, error)
	// Upsert inserta o reemplaza el registro completo.
	Upsert(ctx context.Context, record *entity.StockRecord) error
	// List devuelve todos los registros ordenados por SKU.
	List(ctx context.Context) ([]*entity.StockRecord, error)
}
