package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
	"github.com/shopspring/decimal"
)

const initialStockReason = "stock inicial"

// unit_cost se persiste como NUMERIC(14,4): a lo sumo 4 decimales y menor que 10^10.
const costScale = 4

var costLimit = decimal.New(1, 10)

func validCost(c decimal.Decimal) bool {
	return !c.IsNegative() && c.LessThan(costLimit) && c.Equal(c.Round(costScale))
}

// LedgerConfig parámetros de operación del ledger.
type LedgerConfig struct {
	DefaultThresholds entity.Thresholds // umbrales de registros creados sin configuración explícita
	HistoryPageSize   int               // tamaño de página por defecto de /logs
	RecentActivity    int               // entradas recientes en el detalle de un SKU
}

// DefaultLedgerConfig valores por defecto (5 / 200 / 20, páginas de 50, 10 entradas recientes).
func DefaultLedgerConfig() LedgerConfig {
	return LedgerConfig{
		DefaultThresholds: entity.DefaultThresholds(),
		HistoryPageSize:   50,
		RecentActivity:    10,
	}
}

// LedgerUseCase registra movimientos de stock de forma transaccional por SKU
// (restock, sale, return, adjustment, reserve, release) y expone las consultas por SKU.
type LedgerUseCase struct {
	txRunner  TxRunner
	records   repository.StockRecordRepository
	entries   repository.LedgerEntryRepository
	publisher EventPublisher
	observer  TransitionObserver
	log       *logger.Logger
	cfg       LedgerConfig
	now       func() time.Time
}

// LedgerOption configura dependencias opcionales del caso de uso.
type LedgerOption func(*LedgerUseCase)

// WithPublisher publica un StockChangedEvent tras cada transición confirmada.
func WithPublisher(p EventPublisher) LedgerOption {
	return func(uc *LedgerUseCase) { uc.publisher = p }
}

// WithObserver registra métricas de cada intento de transición.
func WithObserver(o TransitionObserver) LedgerOption {
	return func(uc *LedgerUseCase) { uc.observer = o }
}

// WithLogger inyecta el logger de la aplicación.
func WithLogger(l *logger.Logger) LedgerOption {
	return func(uc *LedgerUseCase) { uc.log = l }
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) LedgerOption {
	return func(uc *LedgerUseCase) { uc.now = now }
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	records repository.StockRecordRepository,
	entries repository.LedgerEntryRepository,
	cfg LedgerConfig,
	opts ...LedgerOption,
) *LedgerUseCase {
	if cfg.HistoryPageSize <= 0 {
		cfg.HistoryPageSize = 50
	}
	if cfg.RecentActivity <= 0 {
		cfg.RecentActivity = 10
	}
	uc := &LedgerUseCase{
		txRunner: txRunner,
		records:  records,
		entries:  entries,
		log:      logger.Nop(),
		cfg:      cfg,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ThresholdsPatch actualización parcial de umbrales; nil = sin cambio.
type ThresholdsPatch struct {
	MinStockLevel *int64
	MaxStockLevel *int64
	ReorderPoint  *int64
}

func (p ThresholdsPatch) validate(op, sku string) error {
	check := func(field string, v *int64) error {
		if v != nil && *v < 0 {
			return domain.NewLedgerError(op, sku, field, domain.ErrInvalidThreshold)
		}
		return nil
	}
	if err := check("min_stock_level", p.MinStockLevel); err != nil {
		return err
	}
	if err := check("max_stock_level", p.MaxStockLevel); err != nil {
		return err
	}
	return check("reorder_point", p.ReorderPoint)
}

func (p ThresholdsPatch) applyTo(t entity.Thresholds) entity.Thresholds {
	if p.MinStockLevel != nil {
		t.MinStockLevel = *p.MinStockLevel
	}
	if p.MaxStockLevel != nil {
		t.MaxStockLevel = *p.MaxStockLevel
	}
	if p.ReorderPoint != nil {
		t.ReorderPoint = *p.ReorderPoint
	}
	return t
}

// TransitionInput entrada de ApplyTransition. Reason, UnitCost y Supplier son metadatos opcionales;
// Location y Thresholds solo se usan si la transición crea el registro.
type TransitionInput struct {
	SKU        string
	Kind       entity.TransitionKind
	Quantity   int64
	Reason     string
	UnitCost   *decimal.Decimal
	Supplier   string
	Location   string
	Thresholds *ThresholdsPatch
	UserID     string
}

// ApplyTransition valida el movimiento, lo aplica de forma atómica sobre el SKU y agrega la
// entrada al log. Si algo falla no se modifica el registro ni se escribe entrada.
func (uc *LedgerUseCase) ApplyTransition(ctx context.Context, in TransitionInput) (*dto.TransitionResponse, error) {
	start := time.Now()
	out, err := uc.applyTransition(ctx, in)
	if uc.observer != nil {
		result := ""
		if err != nil {
			result = strings.ToLower(domain.Code(err))
		} else {
			result = out.Outcome
		}
		uc.observer.ObserveTransition(kindLabel(in.Kind), result, time.Since(start))
	}
	if err != nil {
		return nil, err
	}
	uc.log.Debug().
		Str("sku", out.Inventory.SKU).
		Str("type", out.Log.Type).
		Int64("entry_id", out.Log.EntryID).
		Str("user_id", in.UserID).
		Msg("movimiento registrado")
	uc.publish(ctx, out)
	return out, nil
}

// kindLabel acota la etiqueta de métricas a los seis tipos conocidos más "invalid".
func kindLabel(k entity.TransitionKind) string {
	if !k.IsValid() {
		return "invalid"
	}
	return string(k)
}

func (uc *LedgerUseCase) applyTransition(ctx context.Context, in TransitionInput) (*dto.TransitionResponse, error) {
	const op = "apply"
	in.SKU = strings.TrimSpace(in.SKU)
	if in.SKU == "" {
		return nil, domain.NewLedgerError(op, "", "sku_id", domain.ErrInvalidInput)
	}
	tr, err := inventory.NewTransition(in.Kind, in.Quantity)
	if err != nil {
		field := "quantity"
		if errors.Is(err, domain.ErrInvalidKind) {
			field = "type"
		}
		return nil, domain.NewLedgerError(op, in.SKU, field, err)
	}
	if in.UnitCost != nil && !validCost(*in.UnitCost) {
		return nil, domain.NewLedgerError(op, in.SKU, "unit_cost", domain.ErrInvalidInput)
	}
	if in.Thresholds != nil {
		if err := in.Thresholds.validate(op, in.SKU); err != nil {
			return nil, err
		}
	}

	var out *dto.TransitionResponse
	err = uc.txRunner.Run(ctx, in.SKU, func(
		records repository.StockRecordRepository,
		entries repository.LedgerEntryRepository,
	) error {
		now := uc.now().UTC()
		current, err := records.Get(ctx, in.SKU)
		if err != nil {
			return err
		}
		outcome := entity.OutcomeUpdated
		if current == nil {
			// Una venta, reserva o liberación no puede crear stock de la nada.
			if !tr.Kind().CreatesRecord() {
				return domain.NewLedgerError(op, in.SKU, "sku_id", domain.ErrRecordNotFound)
			}
			current = uc.newRecord(in.SKU, in, now)
			outcome = entity.OutcomeCreated
		}

		rec, entry, err := uc.transition(current, tr, in.Reason, in.UnitCost, in.Supplier, now)
		if err != nil {
			return domain.NewLedgerError(op, in.SKU, "quantity", err)
		}
		if err := records.Upsert(ctx, rec); err != nil {
			return err
		}
		if err := entries.Append(ctx, entry); err != nil {
			return err
		}
		out = &dto.TransitionResponse{
			Outcome:   string(outcome),
			Inventory: toStockRecordDTO(rec),
			Log:       toLedgerEntryDTO(entry),
			Status:    string(inventory.Classify(rec)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// transition aplica tr sobre una copia de current y construye la entrada de log.
// current no se modifica.
func (uc *LedgerUseCase) transition(
	current *entity.StockRecord,
	tr inventory.Transition,
	reason string,
	unitCost *decimal.Decimal,
	supplier string,
	now time.Time,
) (*entity.StockRecord, *entity.LedgerEntry, error) {
	before := inventory.LevelsOf(current)
	after, err := inventory.Apply(tr, before)
	if err != nil {
		return nil, nil, err
	}

	rec := current.Clone()
	rec.CurrentStock = after.Current
	rec.ReservedStock = after.Reserved
	rec.UpdatedAt = now
	if tr.Kind() == entity.KindRestock {
		rec.LastRestockedAt = &now
		if unitCost != nil {
			rec.UnitCost = *unitCost
		}
		if supplier != "" {
			rec.Supplier = supplier
		}
	}

	entry := &entity.LedgerEntry{
		SKU:            rec.SKU,
		Kind:           tr.Kind(),
		Quantity:       tr.Quantity(),
		StockBefore:    before.Current,
		StockAfter:     after.Current,
		ReservedBefore: before.Reserved,
		ReservedAfter:  after.Reserved,
		Reason:         reason,
		UnitCost:       rec.UnitCost,
		Supplier:       rec.Supplier,
		CreatedAt:      now,
	}
	if unitCost != nil {
		entry.UnitCost = *unitCost
	}
	if supplier != "" {
		entry.Supplier = supplier
	}
	return rec, entry, nil
}

func (uc *LedgerUseCase) newRecord(sku string, in TransitionInput, now time.Time) *entity.StockRecord {
	thresholds := uc.cfg.DefaultThresholds
	if in.Thresholds != nil {
		thresholds = in.Thresholds.applyTo(thresholds)
	}
	rec := &entity.StockRecord{
		SKU:        sku,
		Thresholds: thresholds,
		UnitCost:   decimal.Zero,
		Supplier:   entity.DefaultSupplier,
		Location:   entity.DefaultLocation,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.UnitCost != nil {
		rec.UnitCost = *in.UnitCost
	}
	if in.Supplier != "" {
		rec.Supplier = in.Supplier
	}
	if in.Location != "" {
		rec.Location = in.Location
	}
	return rec
}

func (uc *LedgerUseCase) publish(ctx context.Context, out *dto.TransitionResponse) {
	if uc.publisher == nil {
		return
	}
	evt := StockChangedEvent{
		SKU:           out.Inventory.SKU,
		Kind:          out.Log.Type,
		Outcome:       out.Outcome,
		EntryID:       out.Log.EntryID,
		CurrentStock:  out.Inventory.CurrentStock,
		ReservedStock: out.Inventory.ReservedStock,
		Status:        out.Status,
		OccurredAt:    out.Log.Timestamp,
	}
	if err := uc.publisher.PublishStockChanged(ctx, evt); err != nil {
		uc.log.Warn().Err(err).Str("sku", evt.SKU).Int64("entry_id", evt.EntryID).Msg("publicar cambio de stock")
	}
}

// GetStatus devuelve el estado derivado del SKU.
func (uc *LedgerUseCase) GetStatus(ctx context.Context, sku string) (*dto.StockStatusResponse, error) {
	rec, err := uc.mustGet(ctx, "status", sku)
	if err != nil {
		return nil, err
	}
	return &dto.StockStatusResponse{
		SKU:           rec.SKU,
		Status:        string(inventory.Classify(rec)),
		CurrentStock:  rec.CurrentStock,
		ReservedStock: rec.ReservedStock,
	}, nil
}

// GetRecord devuelve el registro, su estado y las entradas más recientes del log.
func (uc *LedgerUseCase) GetRecord(ctx context.Context, sku string) (*dto.StockDetailResponse, error) {
	rec, err := uc.mustGet(ctx, "get", sku)
	if err != nil {
		return nil, err
	}
	recent, _, err := uc.entries.List(ctx, entity.LedgerFilter{SKU: rec.SKU}, uc.cfg.RecentActivity, 0)
	if err != nil {
		return nil, err
	}
	activity := make([]dto.LedgerEntryDTO, 0, len(recent))
	for _, e := range recent {
		activity = append(activity, toLedgerEntryDTO(e))
	}
	return &dto.StockDetailResponse{
		Inventory:      toStockRecordDTO(rec),
		Status:         string(inventory.Classify(rec)),
		RecentActivity: activity,
	}, nil
}

// SetThresholds actualiza parcialmente los umbrales del SKU. No valida el orden
// min <= reorden <= max (comportamiento permisivo), solo que cada valor sea no negativo.
func (uc *LedgerUseCase) SetThresholds(ctx context.Context, sku string, patch ThresholdsPatch) (*dto.StockRecordDTO, error) {
	const op = "thresholds"
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, domain.NewLedgerError(op, "", "sku_id", domain.ErrInvalidInput)
	}
	if err := patch.validate(op, sku); err != nil {
		return nil, err
	}
	var out dto.StockRecordDTO
	err := uc.txRunner.Run(ctx, sku, func(
		records repository.StockRecordRepository,
		_ repository.LedgerEntryRepository,
	) error {
		current, err := records.Get(ctx, sku)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.NewLedgerError(op, sku, "sku_id", domain.ErrRecordNotFound)
		}
		rec := current.Clone()
		rec.Thresholds = patch.applyTo(rec.Thresholds)
		rec.UpdatedAt = uc.now().UTC()
		if err := records.Upsert(ctx, rec); err != nil {
			return err
		}
		out = toStockRecordDTO(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SeedRecord da de alta un SKU desde el catálogo. Si InitialStock > 0 escribe una entrada
// restock en la misma unidad atómica, de modo que el log reproduce el stock desde cero.
func (uc *LedgerUseCase) SeedRecord(ctx context.Context, in dto.SeedRecordRequest) (*dto.StockRecordDTO, error) {
	const op = "seed"
	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		return nil, domain.NewLedgerError(op, "", "sku_id", domain.ErrInvalidInput)
	}
	if in.InitialStock < 0 {
		return nil, domain.NewLedgerError(op, sku, "initial_stock", domain.ErrInvalidQuantity)
	}
	if !validCost(in.UnitCost) {
		return nil, domain.NewLedgerError(op, sku, "unit_cost", domain.ErrInvalidInput)
	}
	patch := ThresholdsPatch{
		MinStockLevel: in.MinStockLevel,
		MaxStockLevel: in.MaxStockLevel,
		ReorderPoint:  in.ReorderPoint,
	}
	if err := patch.validate(op, sku); err != nil {
		return nil, err
	}

	var out dto.StockRecordDTO
	err := uc.txRunner.Run(ctx, sku, func(
		records repository.StockRecordRepository,
		entries repository.LedgerEntryRepository,
	) error {
		existing, err := records.Get(ctx, sku)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.NewLedgerError(op, sku, "sku_id", domain.ErrDuplicate)
		}
		now := uc.now().UTC()
		unitCost := in.UnitCost
		rec := uc.newRecord(sku, TransitionInput{
			UnitCost:   &unitCost,
			Supplier:   in.Supplier,
			Location:   in.Location,
			Thresholds: &patch,
		}, now)

		if in.InitialStock > 0 {
			next, entry, err := uc.transition(rec, inventory.Restock{Units: in.InitialStock}, initialStockReason, nil, "", now)
			if err != nil {
				return domain.NewLedgerError(op, sku, "initial_stock", err)
			}
			if err := records.Upsert(ctx, next); err != nil {
				return err
			}
			if err := entries.Append(ctx, entry); err != nil {
				return err
			}
			rec = next
		} else if err := records.Upsert(ctx, rec); err != nil {
			return err
		}
		out = toStockRecordDTO(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SeedCatalog da de alta varios SKUs; los ya existentes se omiten sin error.
func (uc *LedgerUseCase) SeedCatalog(ctx context.Context, items []dto.SeedRecordRequest) (created, skipped int, err error) {
	for _, item := range items {
		if _, err := uc.SeedRecord(ctx, item); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				skipped++
				continue
			}
			return created, skipped, err
		}
		created++
	}
	uc.log.Info().Int("created", created).Int("skipped", skipped).Msg("catálogo de stock sembrado")
	return created, skipped, nil
}

// ListHistory devuelve las entradas del log filtradas por SKU y/o tipo, de la más reciente a la más antigua.
func (uc *LedgerUseCase) ListHistory(ctx context.Context, req dto.LedgerHistoryRequest) (*dto.LedgerHistoryResponse, error) {
	filter := entity.LedgerFilter{SKU: strings.TrimSpace(req.SKU)}
	if req.Kind != "" {
		kind := entity.TransitionKind(req.Kind)
		if !kind.IsValid() {
			return nil, domain.NewLedgerError("history", filter.SKU, "kind", domain.ErrInvalidKind)
		}
		filter.Kind = kind
	}
	page := req.PageRequest
	page.Normalize(uc.cfg.HistoryPageSize)

	list, total, err := uc.entries.List(ctx, filter, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	logs := make([]dto.LedgerEntryDTO, 0, len(list))
	for _, e := range list {
		logs = append(logs, toLedgerEntryDTO(e))
	}
	return &dto.LedgerHistoryResponse{
		Logs:       logs,
		Pagination: dto.NewPageResponse(page, total),
	}, nil
}

func (uc *LedgerUseCase) mustGet(ctx context.Context, op, sku string) (*entity.StockRecord, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, domain.NewLedgerError(op, "", "sku_id", domain.ErrInvalidInput)
	}
	rec, err := uc.records.Get(ctx, sku)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.NewLedgerError(op, sku, "sku_id", domain.ErrRecordNotFound)
	}
	return rec, nil
}
