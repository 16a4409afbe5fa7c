package inventory

import (
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

func toStockRecordDTO(r *entity.StockRecord) dto.StockRecordDTO {
	return dto.StockRecordDTO{
		SKU:             r.SKU,
		CurrentStock:    r.CurrentStock,
		ReservedStock:   r.ReservedStock,
		MinStockLevel:   r.Thresholds.MinStockLevel,
		MaxStockLevel:   r.Thresholds.MaxStockLevel,
		ReorderPoint:    r.Thresholds.ReorderPoint,
		UnitCost:        r.UnitCost,
		Supplier:        r.Supplier,
		Location:        r.Location,
		LastRestockedAt: r.LastRestockedAt,
		UpdatedAt:       r.UpdatedAt,
		CreatedAt:       r.CreatedAt,
	}
}

func toLedgerEntryDTO(e *entity.LedgerEntry) dto.LedgerEntryDTO {
	return dto.LedgerEntryDTO{
		EntryID:        e.ID,
		SKU:            e.SKU,
		Type:           string(e.Kind),
		Quantity:       e.Quantity,
		StockBefore:    e.StockBefore,
		StockAfter:     e.StockAfter,
		ReservedBefore: e.ReservedBefore,
		ReservedAfter:  e.ReservedAfter,
		Reason:         e.Reason,
		UnitCost:       e.UnitCost,
		Supplier:       e.Supplier,
		Timestamp:      e.CreatedAt,
	}
}
