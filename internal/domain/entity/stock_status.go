package entity

// StockStatus estado derivado de un StockRecord.
type StockStatus string

const (
	StatusInStock    StockStatus = "in_stock"
	StatusLowStock   StockStatus = "low_stock"
	StatusOutOfStock StockStatus = "out_of_stock"
	StatusOverstock  StockStatus = "overstock"
)

// AlertSeverity severidad de una alerta de inventario.
type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "critical"
	SeverityWarning  AlertSeverity = "warning"
	SeverityInfo     AlertSeverity = "info"
)

// Rank devuelve el peso de la severidad (critical > warning > info).
func (s AlertSeverity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	}
	return 0
}

// ReorderPriority prioridad de una línea del reporte de reposición.
type ReorderPriority string

const (
	PriorityUrgent ReorderPriority = "urgent"
	PriorityNormal ReorderPriority = "normal"
)

// RecordOutcome distingue si una transición creó el registro o actualizó uno existente.
type RecordOutcome string

const (
	OutcomeCreated RecordOutcome = "created"
	OutcomeUpdated RecordOutcome = "updated"
)
