package inventory

import (
	"sort"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ReorderLine sugerencia de reposición para un SKU en o bajo su punto de reorden.
type ReorderLine struct {
	SKU           string
	CurrentStock  int64
	ReorderPoint  int64
	SuggestedQty  int64
	UnitCost      decimal.Decimal
	EstimatedCost decimal.Decimal
	Supplier      string
	Priority      entity.ReorderPriority
}

// NeedsReorder informa si el registro está en o bajo su punto de reorden.
func NeedsReorder(r *entity.StockRecord) bool {
	return r.CurrentStock <= r.Thresholds.ReorderPoint
}

// ReorderLineFor calcula la sugerencia: llevar el stock hasta MaxStockLevel.
// Con umbrales incoherentes (máximo bajo el stock actual) la cantidad sugerida se acota a 0.
func ReorderLineFor(r *entity.StockRecord) (ReorderLine, bool) {
	if !NeedsReorder(r) {
		return ReorderLine{}, false
	}
	qty := r.Thresholds.MaxStockLevel - r.CurrentStock
	if qty < 0 {
		qty = 0
	}
	priority := entity.PriorityNormal
	if r.CurrentStock == 0 {
		priority = entity.PriorityUrgent
	}
	return ReorderLine{
		SKU:           r.SKU,
		CurrentStock:  r.CurrentStock,
		ReorderPoint:  r.Thresholds.ReorderPoint,
		SuggestedQty:  qty,
		UnitCost:      r.UnitCost,
		EstimatedCost: r.UnitCost.Mul(decimal.NewFromInt(qty)),
		Supplier:      r.Supplier,
		Priority:      priority,
	}, true
}

// SortReorderLines ordena por stock actual ascendente (más urgente primero); desempate por SKU.
func SortReorderLines(lines []ReorderLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].CurrentStock != lines[j].CurrentStock {
			return lines[i].CurrentStock < lines[j].CurrentStock
		}
		return lines[i].SKU < lines[j].SKU
	})
}
