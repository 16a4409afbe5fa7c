package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ErrNoRenderer se devuelve al pedir el PDF sin un renderer configurado.
var ErrNoRenderer = errors.New("reporte de reposición: renderer no configurado")

// ReplenishmentUseCase genera el reporte de reposición: SKUs en o bajo su punto de reorden
// con la cantidad sugerida para volver al nivel máximo y su costo estimado.
type ReplenishmentUseCase struct {
	records  repository.StockRecordRepository
	renderer ReorderReportRenderer
	now      func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición. renderer puede ser nil
// si no se expone el PDF.
func NewReplenishmentUseCase(records repository.StockRecordRepository, renderer ReorderReportRenderer) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{records: records, renderer: renderer, now: time.Now}
}

// ReorderReport devuelve las líneas ordenadas por stock actual ascendente y el resumen
// (total, urgentes, costo estimado redondeado a 2 decimales).
func (uc *ReplenishmentUseCase) ReorderReport(ctx context.Context) (*dto.ReorderReportDTO, error) {
	list, err := uc.records.List(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]inventory.ReorderLine, 0)
	for _, r := range list {
		if line, ok := inventory.ReorderLineFor(r); ok {
			lines = append(lines, line)
		}
	}
	inventory.SortReorderLines(lines)

	total := decimal.Zero
	summary := dto.ReorderSummaryDTO{TotalItems: len(lines)}
	items := make([]dto.ReorderItemDTO, 0, len(lines))
	for _, l := range lines {
		if l.Priority == entity.PriorityUrgent {
			summary.UrgentItems++
		}
		total = total.Add(l.EstimatedCost)
		items = append(items, dto.ReorderItemDTO{
			SKU:               l.SKU,
			CurrentStock:      l.CurrentStock,
			ReorderPoint:      l.ReorderPoint,
			SuggestedOrderQty: l.SuggestedQty,
			UnitCost:          l.UnitCost,
			EstimatedCost:     l.EstimatedCost,
			Supplier:          l.Supplier,
			Priority:          string(l.Priority),
		})
	}
	summary.TotalEstimatedCost = total.Round(2)

	return &dto.ReorderReportDTO{
		Items:       items,
		Summary:     summary,
		GeneratedAt: uc.now().UTC(),
	}, nil
}

// ReorderReportPDF genera el reporte y lo renderiza como hoja de compra.
func (uc *ReplenishmentUseCase) ReorderReportPDF(ctx context.Context) ([]byte, error) {
	if uc.renderer == nil {
		return nil, ErrNoRenderer
	}
	report, err := uc.ReorderReport(ctx)
	if err != nil {
		return nil, err
	}
	return uc.renderer.RenderReorderReport(ctx, report)
}
