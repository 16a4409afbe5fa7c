package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función como unidad atómica sobre el stock de un SKU, pasando
// repositorios atados a esa unidad. Garantiza:
//   - a lo sumo una mutación en curso por SKU (las de SKUs distintos corren en paralelo);
//   - registro y entrada de log se confirman juntos, o ninguno si fn devuelve error.
type TxRunner interface {
	Run(ctx context.Context, sku string, fn func(
		records repository.StockRecordRepository,
		entries repository.LedgerEntryRepository,
	) error) error
}

// StockChangedEvent notificación emitida tras confirmar una transición.
type StockChangedEvent struct {
	SKU           string    `json:"sku_id"`
	Kind          string    `json:"type"`
	Outcome       string    `json:"outcome"`
	EntryID       int64     `json:"entry_id"`
	CurrentStock  int64     `json:"current_stock"`
	ReservedStock int64     `json:"reserved_stock"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// EventPublisher publica cambios de stock hacia otros procesos (broadcast a la tienda, cachés).
// Un error de publicación no revierte la transición ya confirmada.
type EventPublisher interface {
	PublishStockChanged(ctx context.Context, evt StockChangedEvent) error
}

// TransitionObserver recibe la métrica de cada intento de transición.
// result es "created", "updated" o el código del error.
type TransitionObserver interface {
	ObserveTransition(kind, result string, elapsed time.Duration)
}

// ReorderReportRenderer genera la representación imprimible del reporte de reposición.
type ReorderReportRenderer interface {
	RenderReorderReport(ctx context.Context, report *dto.ReorderReportDTO) ([]byte, error)
}
