package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockTransitionRequest body para PUT /api/inventory/:sku/stock.
// Quantity se recibe como decimal para poder rechazar cantidades no enteras con un error tipado;
// nil = ausente en el body.
type StockTransitionRequest struct {
	Type     string           `json:"type"`
	Quantity *decimal.Decimal `json:"quantity"`
	Reason   string           `json:"reason,omitempty" validate:"max=500"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
	Supplier string           `json:"supplier,omitempty" validate:"max=120"`
	Location string           `json:"location,omitempty" validate:"max=120"`
	// Umbrales opcionales, solo se usan si la transición crea el registro.
	Thresholds *ThresholdsRequest `json:"thresholds,omitempty"`
}

// ThresholdsRequest actualización parcial de umbrales (PUT /api/inventory/:sku/reorder-levels).
type ThresholdsRequest struct {
	MinStockLevel *int64 `json:"min_stock_level,omitempty" yaml:"min_stock_level"`
	MaxStockLevel *int64 `json:"max_stock_level,omitempty" yaml:"max_stock_level"`
	ReorderPoint  *int64 `json:"reorder_point,omitempty" yaml:"reorder_point"`
}

// SeedRecordRequest alta de un SKU en el ledger desde el catálogo (POST /api/inventory o archivo de seed).
type SeedRecordRequest struct {
	SKU           string          `json:"sku_id" yaml:"sku_id" validate:"required,max=64"`
	InitialStock  int64           `json:"initial_stock" yaml:"initial_stock"`
	MinStockLevel *int64          `json:"min_stock_level,omitempty" yaml:"min_stock_level"`
	MaxStockLevel *int64          `json:"max_stock_level,omitempty" yaml:"max_stock_level"`
	ReorderPoint  *int64          `json:"reorder_point,omitempty" yaml:"reorder_point"`
	UnitCost      decimal.Decimal `json:"unit_cost" yaml:"unit_cost"`
	Supplier      string          `json:"supplier,omitempty" yaml:"supplier" validate:"max=120"`
	Location      string          `json:"location,omitempty" yaml:"location" validate:"max=120"`
}

// InventoryListRequest filtros de GET /api/inventory.
type InventoryListRequest struct {
	LowStock   bool   `query:"low_stock"`
	OutOfStock bool   `query:"out_of_stock"`
	SKU        string `query:"sku_id"`
	Location   string `query:"location"`
	PageRequest
}

// LedgerHistoryRequest filtros de GET /api/inventory/logs.
type LedgerHistoryRequest struct {
	SKU  string `query:"sku_id"`
	Kind string `query:"kind"`
	PageRequest
}

// StockRecordDTO estado de stock de un SKU.
type StockRecordDTO struct {
	SKU             string          `json:"sku_id"`
	CurrentStock    int64           `json:"current_stock"`
	ReservedStock   int64           `json:"reserved_stock"`
	MinStockLevel   int64           `json:"min_stock_level"`
	MaxStockLevel   int64           `json:"max_stock_level"`
	ReorderPoint    int64           `json:"reorder_point"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	Supplier        string          `json:"supplier"`
	Location        string          `json:"location"`
	LastRestockedAt *time.Time      `json:"last_restocked_at,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at"`
	CreatedAt       time.Time       `json:"created_at"`
}

// LedgerEntryDTO una entrada del log de movimientos.
type LedgerEntryDTO struct {
	EntryID        int64           `json:"entry_id"`
	SKU            string          `json:"sku_id"`
	Type           string          `json:"type"`
	Quantity       int64           `json:"quantity"`
	StockBefore    int64           `json:"stock_before"`
	StockAfter     int64           `json:"stock_after"`
	ReservedBefore int64           `json:"reserved_before"`
	ReservedAfter  int64           `json:"reserved_after"`
	Reason         string          `json:"reason"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	Supplier       string          `json:"supplier"`
	Timestamp      time.Time       `json:"timestamp"`
}

// TransitionResponse resultado de una transición aceptada.
// Outcome es "created" si la transición creó el registro, "updated" en otro caso.
type TransitionResponse struct {
	Outcome   string         `json:"outcome"`
	Inventory StockRecordDTO `json:"inventory"`
	Log       LedgerEntryDTO `json:"log"`
	Status    string         `json:"status"`
}

// StockStatusResponse estado derivado de un SKU.
type StockStatusResponse struct {
	SKU           string `json:"sku_id"`
	Status        string `json:"status"`
	CurrentStock  int64  `json:"current_stock"`
	ReservedStock int64  `json:"reserved_stock"`
}

// StockDetailResponse detalle de un SKU con su actividad reciente.
type StockDetailResponse struct {
	Inventory      StockRecordDTO   `json:"inventory"`
	Status         string           `json:"status"`
	RecentActivity []LedgerEntryDTO `json:"recent_activity"`
}

// InventorySummaryDTO totales del listado filtrado.
type InventorySummaryDTO struct {
	TotalItems      int             `json:"total_items"`
	LowStockItems   int             `json:"low_stock_items"`
	OutOfStockItems int             `json:"out_of_stock_items"`
	TotalValue      decimal.Decimal `json:"total_value"` // Σ current_stock * unit_cost
}

// InventoryListResponse respuesta de GET /api/inventory.
type InventoryListResponse struct {
	Inventory  []StockRecordDTO    `json:"inventory"`
	Summary    InventorySummaryDTO `json:"summary"`
	Pagination PageResponse        `json:"pagination"`
}

// LedgerHistoryResponse respuesta de GET /api/inventory/logs.
type LedgerHistoryResponse struct {
	Logs       []LedgerEntryDTO `json:"logs"`
	Pagination PageResponse     `json:"pagination"`
}

// AlertDTO alerta de inventario.
type AlertDTO struct {
	Type         string `json:"type"`
	SKU          string `json:"sku_id"`
	Severity     string `json:"severity"`
	CurrentStock int64  `json:"current_stock"`
	Threshold    int64  `json:"threshold,omitempty"`
	Message      string `json:"message"`
}

// AlertSummaryDTO conteo de alertas por severidad.
type AlertSummaryDTO struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Info     int `json:"info"`
}

// AlertsResponse respuesta de GET /api/inventory/alerts.
type AlertsResponse struct {
	Alerts  []AlertDTO      `json:"alerts"`
	Summary AlertSummaryDTO `json:"summary"`
}

// ReorderItemDTO sugerencia de reposición para un SKU en o bajo su punto de reorden.
type ReorderItemDTO struct {
	SKU               string          `json:"sku_id"`
	CurrentStock      int64           `json:"current_stock"`
	ReorderPoint      int64           `json:"reorder_point"`
	SuggestedOrderQty int64           `json:"suggested_order_qty"` // MaxStockLevel - CurrentStock
	UnitCost          decimal.Decimal `json:"unit_cost"`
	EstimatedCost     decimal.Decimal `json:"estimated_cost"` // SuggestedOrderQty * UnitCost
	Supplier          string          `json:"supplier"`
	Priority          string          `json:"priority"` // urgent | normal
}

// ReorderSummaryDTO totales del reporte de reposición.
type ReorderSummaryDTO struct {
	TotalItems         int             `json:"total_items"`
	UrgentItems        int             `json:"urgent_items"`
	TotalEstimatedCost decimal.Decimal `json:"total_estimated_cost"`
}

// ReorderReportDTO respuesta de GET /api/inventory/reorder-report.
type ReorderReportDTO struct {
	Items       []ReorderItemDTO  `json:"reorder_items"`
	Summary     ReorderSummaryDTO `json:"summary"`
	GeneratedAt time.Time         `json:"generated_at"`
}
