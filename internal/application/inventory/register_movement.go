package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// ApplyTransitionFromRequest adapta el body de PUT /:sku/stock al caso de uso ApplyTransition.
// La cantidad es obligatoria para todos los tipos, adjustment incluido.
// Un valor ausente, no entero o fuera de rango se rechaza como InvalidQuantity.
func (uc *LedgerUseCase) ApplyTransitionFromRequest(ctx context.Context, sku, userID string, in dto.StockTransitionRequest) (*dto.TransitionResponse, error) {
	if in.Quantity == nil || !in.Quantity.IsInteger() || !in.Quantity.BigInt().IsInt64() {
		return nil, domain.NewLedgerError("apply", sku, "quantity", domain.ErrInvalidQuantity)
	}
	input := TransitionInput{
		SKU:      sku,
		Kind:     entity.TransitionKind(strings.ToLower(strings.TrimSpace(in.Type))),
		Quantity: in.Quantity.IntPart(),
		Reason:   strings.TrimSpace(in.Reason),
		UnitCost: in.UnitCost,
		Supplier: strings.TrimSpace(in.Supplier),
		Location: strings.TrimSpace(in.Location),
		UserID:   userID,
	}
	if in.Thresholds != nil {
		input.Thresholds = PatchFromRequest(*in.Thresholds)
	}
	return uc.ApplyTransition(ctx, input)
}

// PatchFromRequest convierte el body de umbrales al patch del caso de uso.
func PatchFromRequest(in dto.ThresholdsRequest) *ThresholdsPatch {
	return &ThresholdsPatch{
		MinStockLevel: in.MinStockLevel,
		MaxStockLevel: in.MaxStockLevel,
		ReorderPoint:  in.ReorderPoint,
	}
}
