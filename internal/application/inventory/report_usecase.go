package inventory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// StockReportUseCase consultas de solo lectura sobre todos los registros: listado y alertas.
type StockReportUseCase struct {
	records      repository.StockRecordRepository
	listPageSize int
}

// NewStockReportUseCase construye el caso de uso. listPageSize <= 0 usa 20.
func NewStockReportUseCase(records repository.StockRecordRepository, listPageSize int) *StockReportUseCase {
	if listPageSize <= 0 {
		listPageSize = 20
	}
	return &StockReportUseCase{records: records, listPageSize: listPageSize}
}

// ListRecords filtra, ordena por stock actual ascendente y pagina. El resumen se calcula
// sobre el conjunto filtrado completo, no solo sobre la página.
func (uc *StockReportUseCase) ListRecords(ctx context.Context, req dto.InventoryListRequest) (*dto.InventoryListResponse, error) {
	list, err := uc.records.List(ctx)
	if err != nil {
		return nil, err
	}

	fold := cases.Fold()
	location := fold.String(strings.TrimSpace(req.Location))
	sku := strings.TrimSpace(req.SKU)

	filtered := make([]*entity.StockRecord, 0, len(list))
	for _, r := range list {
		if req.LowStock && !inventory.NeedsReorder(r) {
			continue
		}
		if req.OutOfStock && r.CurrentStock != 0 {
			continue
		}
		if sku != "" && r.SKU != sku {
			continue
		}
		if location != "" && !strings.Contains(fold.String(r.Location), location) {
			continue
		}
		filtered = append(filtered, r)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].CurrentStock != filtered[j].CurrentStock {
			return filtered[i].CurrentStock < filtered[j].CurrentStock
		}
		return filtered[i].SKU < filtered[j].SKU
	})

	summary := dto.InventorySummaryDTO{TotalItems: len(filtered), TotalValue: decimal.Zero}
	for _, r := range filtered {
		if inventory.NeedsReorder(r) {
			summary.LowStockItems++
		}
		if r.CurrentStock == 0 {
			summary.OutOfStockItems++
		}
		summary.TotalValue = summary.TotalValue.Add(r.Value())
	}

	page := req.PageRequest
	page.Normalize(uc.listPageSize)
	from := page.Offset()
	if from > len(filtered) {
		from = len(filtered)
	}
	to := from + page.Limit
	if to > len(filtered) {
		to = len(filtered)
	}
	items := make([]dto.StockRecordDTO, 0, to-from)
	for _, r := range filtered[from:to] {
		items = append(items, toStockRecordDTO(r))
	}

	return &dto.InventoryListResponse{
		Inventory:  items,
		Summary:    summary,
		Pagination: dto.NewPageResponse(page, len(filtered)),
	}, nil
}

// ListAlerts devuelve las alertas de todos los registros ordenadas por severidad descendente.
func (uc *StockReportUseCase) ListAlerts(ctx context.Context) (*dto.AlertsResponse, error) {
	list, err := uc.records.List(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]inventory.Alert, 0)
	for _, r := range list {
		alerts = append(alerts, inventory.AlertsFor(r)...)
	}
	inventory.SortAlerts(alerts)

	out := &dto.AlertsResponse{
		Alerts:  make([]dto.AlertDTO, 0, len(alerts)),
		Summary: dto.AlertSummaryDTO{Total: len(alerts)},
	}
	for _, a := range alerts {
		switch a.Severity {
		case entity.SeverityCritical:
			out.Summary.Critical++
		case entity.SeverityWarning:
			out.Summary.Warning++
		case entity.SeverityInfo:
			out.Summary.Info++
		}
		out.Alerts = append(out.Alerts, dto.AlertDTO{
			Type:         string(a.Type),
			SKU:          a.SKU,
			Severity:     string(a.Severity),
			CurrentStock: a.CurrentStock,
			Threshold:    a.Threshold,
			Message:      a.Message,
		})
	}
	return out, nil
}
