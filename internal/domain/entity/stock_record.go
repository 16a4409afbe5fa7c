package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Umbrales por defecto para registros creados sin configuración explícita.
const (
	DefaultMinStockLevel = 5
	DefaultMaxStockLevel = 200
	DefaultReorderPoint  = 20

	DefaultSupplier = "Unknown"
	DefaultLocation = "Main Warehouse"
)

// Thresholds agrupa los niveles de gestión de un SKU.
// Se espera MinStockLevel <= ReorderPoint <= MaxStockLevel, pero no se exige.
type Thresholds struct {
	MinStockLevel int64
	MaxStockLevel int64
	ReorderPoint  int64
}

// DefaultThresholds devuelve los umbrales por defecto (5 / 200 / 20).
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinStockLevel: DefaultMinStockLevel,
		MaxStockLevel: DefaultMaxStockLevel,
		ReorderPoint:  DefaultReorderPoint,
	}
}

// StockRecord representa los contadores de stock de un SKU (uno por SKU).
// CurrentStock son unidades disponibles para la venta; ReservedStock unidades retenidas
// por pedidos pendientes, ya descontadas de CurrentStock.
type StockRecord struct {
	SKU             string
	CurrentStock    int64
	ReservedStock   int64
	Thresholds      Thresholds
	UnitCost        decimal.Decimal // costo base para valorización
	Supplier        string
	Location        string
	LastRestockedAt *time.Time
	UpdatedAt       time.Time
	CreatedAt       time.Time
}

// Value devuelve la valorización del stock disponible (CurrentStock * UnitCost).
func (r *StockRecord) Value() decimal.Decimal {
	return r.UnitCost.Mul(decimal.NewFromInt(r.CurrentStock))
}

// Clone devuelve una copia independiente del registro.
func (r *StockRecord) Clone() *StockRecord {
	if r == nil {
		return nil
	}
	c := *r
	if r.LastRestockedAt != nil {
		t := *r.LastRestockedAt
		c.LastRestockedAt = &t
	}
	return &c
}
