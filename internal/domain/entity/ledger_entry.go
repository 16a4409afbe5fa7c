package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransitionKind tipo de movimiento aplicado sobre un StockRecord.
type TransitionKind string

// Tipos de movimiento de stock.
const (
	KindRestock    TransitionKind = "restock"    // entrada de proveedor
	KindSale       TransitionKind = "sale"       // venta confirmada
	KindReturn     TransitionKind = "return"     // devolución de cliente
	KindAdjustment TransitionKind = "adjustment" // conteo físico (valor absoluto)
	KindReserve    TransitionKind = "reserve"    // retención para pedido pendiente
	KindRelease    TransitionKind = "release"    // liberación de una reserva
)

// TransitionKinds lista los tipos válidos en orden estable.
func TransitionKinds() []TransitionKind {
	return []TransitionKind{KindRestock, KindSale, KindReturn, KindAdjustment, KindReserve, KindRelease}
}

// IsValid informa si k es uno de los seis tipos conocidos.
func (k TransitionKind) IsValid() bool {
	switch k {
	case KindRestock, KindSale, KindReturn, KindAdjustment, KindReserve, KindRelease:
		return true
	}
	return false
}

// CreatesRecord informa si el tipo puede crear un registro inexistente.
// Una venta, reserva o liberación nunca crea stock de la nada.
func (k TransitionKind) CreatesRecord() bool {
	return k == KindRestock || k == KindReturn || k == KindAdjustment
}

// LedgerEntry registro inmutable de un movimiento aceptado.
// Guarda los contadores antes y después para auditoría y replay sin recomputar.
type LedgerEntry struct {
	ID             int64
	SKU            string
	Kind           TransitionKind
	Quantity       int64
	StockBefore    int64
	StockAfter     int64
	ReservedBefore int64
	ReservedAfter  int64
	Reason         string
	UnitCost       decimal.Decimal
	Supplier       string
	CreatedAt      time.Time
}

// LedgerFilter criterios de consulta del historial. Campos vacíos no filtran.
type LedgerFilter struct {
	SKU  string
	Kind TransitionKind
}

// Matches informa si la entrada cumple el filtro.
func (f LedgerFilter) Matches(e *LedgerEntry) bool {
	if f.SKU != "" && e.SKU != f.SKU {
		return false
	}
	if f.Kind != "" && e.Kind != f.Kind {
		return false
	}
	return true
}
