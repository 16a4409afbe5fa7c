package inventory

import (
	"fmt"
	"sort"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// Classify devuelve el estado del registro. Prioridad: out_of_stock > low_stock > overstock > in_stock.
func Classify(r *entity.StockRecord) entity.StockStatus {
	switch {
	case r.CurrentStock == 0:
		return entity.StatusOutOfStock
	case r.CurrentStock <= r.Thresholds.ReorderPoint:
		return entity.StatusLowStock
	case r.CurrentStock > r.Thresholds.MaxStockLevel:
		return entity.StatusOverstock
	default:
		return entity.StatusInStock
	}
}

// Alert alerta de inventario para un SKU.
type Alert struct {
	Type         entity.StockStatus
	SKU          string
	Severity     entity.AlertSeverity
	CurrentStock int64
	Threshold    int64 // punto de reorden (low_stock) o nivel máximo (overstock)
	Message      string
}

// AlertsFor evalúa los tres chequeos de forma independiente: a lo sumo uno de
// low_stock/out_of_stock, y overstock por separado.
func AlertsFor(r *entity.StockRecord) []Alert {
	var alerts []Alert
	if r.CurrentStock > 0 && r.CurrentStock <= r.Thresholds.ReorderPoint {
		alerts = append(alerts, Alert{
			Type:         entity.StatusLowStock,
			SKU:          r.SKU,
			Severity:     entity.SeverityWarning,
			CurrentStock: r.CurrentStock,
			Threshold:    r.Thresholds.ReorderPoint,
			Message:      fmt.Sprintf("Stock bajo (quedan %d unidades)", r.CurrentStock),
		})
	}
	if r.CurrentStock == 0 {
		alerts = append(alerts, Alert{
			Type:     entity.StatusOutOfStock,
			SKU:      r.SKU,
			Severity: entity.SeverityCritical,
			Message:  "Producto agotado",
		})
	}
	if r.CurrentStock > r.Thresholds.MaxStockLevel {
		alerts = append(alerts, Alert{
			Type:         entity.StatusOverstock,
			SKU:          r.SKU,
			Severity:     entity.SeverityInfo,
			CurrentStock: r.CurrentStock,
			Threshold:    r.Thresholds.MaxStockLevel,
			Message:      fmt.Sprintf("Stock supera el nivel máximo (%d/%d)", r.CurrentStock, r.Thresholds.MaxStockLevel),
		})
	}
	return alerts
}

// SortAlerts ordena por severidad descendente; a igual severidad, por SKU.
func SortAlerts(alerts []Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		ri, rj := alerts[i].Severity.Rank(), alerts[j].Severity.Rank()
		if ri != rj {
			return ri > rj
		}
		return alerts[i].SKU < alerts[j].SKU
	})
}
