package inventory_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

type fakePublisher struct {
	mu     sync.Mutex
	events []inventory.StockChangedEvent
	err    error
}

func (p *fakePublisher) PublishStockChanged(_ context.Context, evt inventory.StockChangedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

type fakeObserver struct {
	mu      sync.Mutex
	results []string
}

func (o *fakeObserver) ObserveTransition(kind, result string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results = append(o.results, kind+":"+result)
}

type fixture struct {
	store *memory.Store
	uc    *inventory.LedgerUseCase
	pub   *fakePublisher
	obs   *fakeObserver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	pub := &fakePublisher{}
	obs := &fakeObserver{}
	uc := inventory.NewLedgerUseCase(store, store.Records(), store.Entries(), inventory.DefaultLedgerConfig(),
		inventory.WithPublisher(pub),
		inventory.WithObserver(obs),
		inventory.WithClock(func() time.Time { return fixedNow }),
	)
	return &fixture{store: store, uc: uc, pub: pub, obs: obs}
}

func (f *fixture) apply(t *testing.T, sku string, kind entity.TransitionKind, qty int64) (*dto.TransitionResponse, error) {
	t.Helper()
	return f.uc.ApplyTransition(context.Background(), inventory.TransitionInput{SKU: sku, Kind: kind, Quantity: qty})
}

func (f *fixture) mustApply(t *testing.T, sku string, kind entity.TransitionKind, qty int64) *dto.TransitionResponse {
	t.Helper()
	out, err := f.apply(t, sku, kind, qty)
	require.NoError(t, err)
	return out
}

func (f *fixture) record(t *testing.T, sku string) *entity.StockRecord {
	t.Helper()
	rec, err := f.store.Records().Get(context.Background(), sku)
	require.NoError(t, err)
	return rec
}

func (f *fixture) entryCount(t *testing.T, sku string) int {
	t.Helper()
	_, total, err := f.store.Entries().List(context.Background(), entity.LedgerFilter{SKU: sku}, 1, 0)
	require.NoError(t, err)
	return total
}

func TestApplyTransition_RestockCreaRegistro(t *testing.T) {
	f := newFixture(t)

	out := f.mustApply(t, "x", entity.KindRestock, 50)

	assert.Equal(t, string(entity.OutcomeCreated), out.Outcome)
	assert.Equal(t, int64(50), out.Inventory.CurrentStock)
	assert.Equal(t, int64(0), out.Inventory.ReservedStock)
	assert.Equal(t, int64(entity.DefaultMinStockLevel), out.Inventory.MinStockLevel)
	assert.Equal(t, int64(entity.DefaultMaxStockLevel), out.Inventory.MaxStockLevel)
	assert.Equal(t, int64(entity.DefaultReorderPoint), out.Inventory.ReorderPoint)
	assert.Equal(t, entity.DefaultSupplier, out.Inventory.Supplier)
	assert.Equal(t, entity.DefaultLocation, out.Inventory.Location)
	require.NotNil(t, out.Inventory.LastRestockedAt)
	assert.Equal(t, fixedNow, *out.Inventory.LastRestockedAt)

	assert.Equal(t, int64(0), out.Log.StockBefore)
	assert.Equal(t, int64(50), out.Log.StockAfter)
	assert.Equal(t, "restock", out.Log.Type)
	assert.Equal(t, 1, f.entryCount(t, "x"))
	assert.Equal(t, string(entity.StatusInStock), out.Status)

	second := f.mustApply(t, "x", entity.KindRestock, 5)
	assert.Equal(t, string(entity.OutcomeUpdated), second.Outcome)
	assert.Equal(t, int64(55), second.Inventory.CurrentStock)
	assert.Greater(t, second.Log.EntryID, out.Log.EntryID)
}

func TestApplyTransition_VentaSinStockNoModifica(t *testing.T) {
	f := newFixture(t)
	f.mustApply(t, "sku", entity.KindAdjustment, 10)

	_, err := f.apply(t, "sku", entity.KindSale, 15)

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, "quantity", domain.FieldOf(err))
	assert.Equal(t, int64(10), f.record(t, "sku").CurrentStock)
	assert.Equal(t, 1, f.entryCount(t, "sku"))
}

func TestApplyTransition_ReservaYLiberacion(t *testing.T) {
	f := newFixture(t)
	f.mustApply(t, "sku", entity.KindRestock, 20)

	out := f.mustApply(t, "sku", entity.KindReserve, 5)
	assert.Equal(t, int64(15), out.Inventory.CurrentStock)
	assert.Equal(t, int64(5), out.Inventory.ReservedStock)
	assert.Equal(t, int64(0), out.Log.ReservedBefore)
	assert.Equal(t, int64(5), out.Log.ReservedAfter)

	out = f.mustApply(t, "sku", entity.KindRelease, 5)
	assert.Equal(t, int64(20), out.Inventory.CurrentStock)
	assert.Equal(t, int64(0), out.Inventory.ReservedStock)

	_, err := f.apply(t, "sku", entity.KindRelease, 1)
	require.ErrorIs(t, err, domain.ErrInsufficientReserved)
}

func TestApplyTransition_SinStockGeneraAlertaYReposicion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.mustApply(t, "sku", entity.KindAdjustment, 0)

	status, err := f.uc.GetStatus(ctx, "sku")
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusOutOfStock), status.Status)

	alerts, err := inventory.NewStockReportUseCase(f.store.Records(), 0).ListAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts.Alerts, 1)
	assert.Equal(t, "critical", alerts.Alerts[0].Severity)
	assert.Equal(t, "sku", alerts.Alerts[0].SKU)
	assert.Equal(t, 1, alerts.Summary.Critical)

	report, err := inventory.NewReplenishmentUseCase(f.store.Records(), nil).ReorderReport(ctx)
	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	assert.Equal(t, int64(200), report.Items[0].SuggestedOrderQty)
	assert.Equal(t, "urgent", report.Items[0].Priority)
}

func TestApplyTransition_AjusteNegativoRechazado(t *testing.T) {
	f := newFixture(t)
	f.mustApply(t, "sku", entity.KindRestock, 7)

	_, err := f.apply(t, "sku", entity.KindAdjustment, -5)

	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, int64(7), f.record(t, "sku").CurrentStock)
	assert.Equal(t, 1, f.entryCount(t, "sku"))
}

func TestApplyTransition_Validaciones(t *testing.T) {
	tests := []struct {
		name  string
		sku   string
		kind  entity.TransitionKind
		qty   int64
		want  error
		field string
	}{
		{"tipo desconocido", "a", entity.TransitionKind("transfer"), 1, domain.ErrInvalidKind, "type"},
		{"cantidad cero", "a", entity.KindRestock, 0, domain.ErrInvalidQuantity, "quantity"},
		{"cantidad negativa", "a", entity.KindSale, -1, domain.ErrInvalidQuantity, "quantity"},
		{"sku vacío", "  ", entity.KindRestock, 1, domain.ErrInvalidInput, "sku_id"},
		{"venta sobre sku inexistente", "nuevo", entity.KindSale, 1, domain.ErrRecordNotFound, "sku_id"},
		{"reserva sobre sku inexistente", "nuevo", entity.KindReserve, 1, domain.ErrRecordNotFound, "sku_id"},
		{"liberación sobre sku inexistente", "nuevo", entity.KindRelease, 1, domain.ErrRecordNotFound, "sku_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.apply(t, tt.sku, tt.kind, tt.qty)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.field, domain.FieldOf(err))
			assert.Nil(t, f.record(t, "nuevo"))
			assert.Empty(t, f.pub.events)
		})
	}
}

func TestApplyTransition_RecordNotFoundEsNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.apply(t, "nada", entity.KindSale, 1)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestApplyTransition_MetadatosDeRestock(t *testing.T) {
	f := newFixture(t)
	cost := decimal.RequireFromString("1250.50")
	out, err := f.uc.ApplyTransition(context.Background(), inventory.TransitionInput{
		SKU:      "IPH-15",
		Kind:     entity.KindRestock,
		Quantity: 10,
		Reason:   "pedido #88",
		UnitCost: &cost,
		Supplier: "Apple Distribution",
		Location: "Bodega Norte",
		Thresholds: &inventory.ThresholdsPatch{
			ReorderPoint: ptr(int64(3)),
		},
	})
	require.NoError(t, err)
	assert.True(t, cost.Equal(out.Inventory.UnitCost))
	assert.Equal(t, "Apple Distribution", out.Inventory.Supplier)
	assert.Equal(t, "Bodega Norte", out.Inventory.Location)
	assert.Equal(t, int64(3), out.Inventory.ReorderPoint)
	assert.Equal(t, "pedido #88", out.Log.Reason)
	assert.True(t, cost.Equal(out.Log.UnitCost))

	// Un restock posterior actualiza costo y proveedor, no la ubicación.
	newCost := decimal.NewFromInt(1300)
	out, err = f.uc.ApplyTransition(context.Background(), inventory.TransitionInput{
		SKU: "IPH-15", Kind: entity.KindRestock, Quantity: 1,
		UnitCost: &newCost, Supplier: "Otro", Location: "Ignorada",
	})
	require.NoError(t, err)
	assert.True(t, newCost.Equal(out.Inventory.UnitCost))
	assert.Equal(t, "Otro", out.Inventory.Supplier)
	assert.Equal(t, "Bodega Norte", out.Inventory.Location)

	// Una venta con costo no cambia el costo base pero queda en la entrada.
	saleCost := decimal.NewFromInt(1)
	out, err = f.uc.ApplyTransition(context.Background(), inventory.TransitionInput{
		SKU: "IPH-15", Kind: entity.KindSale, Quantity: 1, UnitCost: &saleCost,
	})
	require.NoError(t, err)
	assert.True(t, newCost.Equal(out.Inventory.UnitCost))
	assert.True(t, saleCost.Equal(out.Log.UnitCost))
	assert.Equal(t, "Otro", out.Log.Supplier)
}

func TestApplyTransition_CostoNegativoRechazado(t *testing.T) {
	f := newFixture(t)
	cost := decimal.NewFromInt(-1)
	_, err := f.uc.ApplyTransition(context.Background(), inventory.TransitionInput{
		SKU: "a", Kind: entity.KindRestock, Quantity: 1, UnitCost: &cost,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "unit_cost", domain.FieldOf(err))
	assert.Nil(t, f.record(t, "a"))
}

func TestUnitCost_EscalaDeAlmacenamiento(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, raw := range []string{"0.00001", "12.12345", "10000000000"} {
		cost := decimal.RequireFromString(raw)
		_, err := f.uc.ApplyTransition(ctx, inventory.TransitionInput{
			SKU: "a", Kind: entity.KindRestock, Quantity: 1, UnitCost: &cost,
		})
		require.ErrorIs(t, err, domain.ErrInvalidInput, raw)
		assert.Equal(t, "unit_cost", domain.FieldOf(err))

		_, err = f.uc.SeedRecord(ctx, dto.SeedRecordRequest{SKU: "b", InitialStock: 1, UnitCost: cost})
		require.ErrorIs(t, err, domain.ErrInvalidInput, raw)
		assert.Equal(t, "unit_cost", domain.FieldOf(err))
	}
	assert.Nil(t, f.record(t, "a"))
	assert.Nil(t, f.record(t, "b"))

	// Ceros a la derecha no cuentan como decimales.
	cost := decimal.RequireFromString("9999999999.123400")
	out, err := f.uc.ApplyTransition(ctx, inventory.TransitionInput{
		SKU: "a", Kind: entity.KindRestock, Quantity: 1, UnitCost: &cost,
	})
	require.NoError(t, err)
	assert.True(t, out.Inventory.UnitCost.Equal(decimal.RequireFromString("9999999999.1234")))
}

func TestApplyTransition_PublicaYObserva(t *testing.T) {
	f := newFixture(t)
	out := f.mustApply(t, "sku", entity.KindRestock, 3)
	_, err := f.apply(t, "sku", entity.KindSale, 10)
	require.Error(t, err)

	require.Len(t, f.pub.events, 1)
	evt := f.pub.events[0]
	assert.Equal(t, "sku", evt.SKU)
	assert.Equal(t, "restock", evt.Kind)
	assert.Equal(t, "created", evt.Outcome)
	assert.Equal(t, out.Log.EntryID, evt.EntryID)
	assert.Equal(t, int64(3), evt.CurrentStock)
	assert.Equal(t, string(entity.StatusLowStock), evt.Status)

	assert.Equal(t, []string{"restock:created", "sale:insufficient_stock"}, f.obs.results)
}

func TestApplyTransition_TipoDesconocidoNoGeneraEtiquetas(t *testing.T) {
	f := newFixture(t)
	for _, kind := range []string{"zzz1", "zzz2", "TRANSFER"} {
		_, err := f.apply(t, "sku", entity.TransitionKind(kind), 1)
		require.ErrorIs(t, err, domain.ErrInvalidKind)
	}
	assert.Equal(t, []string{"invalid:invalid_kind", "invalid:invalid_kind", "invalid:invalid_kind"}, f.obs.results)
	assert.Empty(t, f.pub.events)
}

func TestApplyTransition_ErrorDePublicacionNoFalla(t *testing.T) {
	f := newFixture(t)
	f.pub.err = errors.New("redis caído")

	out, err := f.apply(t, "sku", entity.KindRestock, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Inventory.CurrentStock)
}

func TestApplyTransition_LogReproduceElEstado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	steps := []struct {
		kind entity.TransitionKind
		qty  int64
	}{
		{entity.KindRestock, 40},
		{entity.KindReserve, 10},
		{entity.KindSale, 5},
		{entity.KindSale, 100}, // rechazada
		{entity.KindReturn, 2},
		{entity.KindRelease, 4},
		{entity.KindAdjustment, 30},
		{entity.KindReserve, 31}, // rechazada
		{entity.KindReserve, 30},
	}
	for _, s := range steps {
		_, _ = f.apply(t, "sku", s.kind, s.qty)
	}

	history, err := f.uc.ListHistory(ctx, dto.LedgerHistoryRequest{SKU: "sku", PageRequest: dto.PageRequest{Limit: 100}})
	require.NoError(t, err)
	assert.Equal(t, 7, history.Pagination.Total)

	// Recorrido del más antiguo al más reciente: cada entrada parte del estado de la anterior.
	var current, reserved int64
	for i := len(history.Logs) - 1; i >= 0; i-- {
		e := history.Logs[i]
		assert.Equal(t, current, e.StockBefore, "entrada %d", e.EntryID)
		assert.Equal(t, reserved, e.ReservedBefore, "entrada %d", e.EntryID)
		current, reserved = e.StockAfter, e.ReservedAfter
	}
	rec := f.record(t, "sku")
	assert.Equal(t, rec.CurrentStock, current)
	assert.Equal(t, rec.ReservedStock, reserved)
	assert.Equal(t, int64(0), rec.CurrentStock)
	assert.Equal(t, int64(36), rec.ReservedStock)
}

func TestApplyTransition_ConcurrenteMismoSKU(t *testing.T) {
	f := newFixture(t)
	f.mustApply(t, "sku", entity.KindRestock, 100)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, insufficient := 0, 0
	for i := 0; i < 150; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.apply(t, "sku", entity.KindSale, 1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				insufficient++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, ok)
	assert.Equal(t, 50, insufficient)
	assert.Equal(t, int64(0), f.record(t, "sku").CurrentStock)
	assert.Equal(t, 101, f.entryCount(t, "sku"))
}

func TestApplyTransition_ConcurrenteCreacionUnica(t *testing.T) {
	f := newFixture(t)

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := f.apply(t, "nuevo", entity.KindRestock, 1)
			if !assert.NoError(t, err) {
				return
			}
			if out.Outcome == string(entity.OutcomeCreated) {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, int64(20), f.record(t, "nuevo").CurrentStock)
}

func TestApplyTransitionFromRequest_CantidadNoEntera(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.ApplyTransitionFromRequest(context.Background(), "sku", "u1", dto.StockTransitionRequest{
		Type:     "restock",
		Quantity: ptr(decimal.RequireFromString("2.5")),
	})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, "quantity", domain.FieldOf(err))

	out, err := f.uc.ApplyTransitionFromRequest(context.Background(), "sku", "u1", dto.StockTransitionRequest{
		Type:     " Restock ",
		Quantity: ptr(decimal.NewFromInt(4)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), out.Inventory.CurrentStock)
}

func TestApplyTransitionFromRequest_CantidadAusente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.ApplyTransitionFromRequest(ctx, "sku", "u1", dto.StockTransitionRequest{
		Type: "restock", Quantity: ptr(decimal.NewFromInt(50)),
	})
	require.NoError(t, err)

	for _, kind := range []string{"adjustment", "restock", "sale", "reserve"} {
		_, err = f.uc.ApplyTransitionFromRequest(ctx, "sku", "u1", dto.StockTransitionRequest{Type: kind})
		require.ErrorIs(t, err, domain.ErrInvalidQuantity, kind)
		assert.Equal(t, "quantity", domain.FieldOf(err))
	}

	rec := f.record(t, "sku")
	assert.Equal(t, int64(50), rec.CurrentStock)
	_, total, err := f.store.Entries().List(ctx, entity.LedgerFilter{SKU: "sku"}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestSetThresholds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.SetThresholds(ctx, "sku", inventory.ThresholdsPatch{ReorderPoint: ptr(int64(1))})
	require.ErrorIs(t, err, domain.ErrRecordNotFound)

	f.mustApply(t, "sku", entity.KindRestock, 10)
	out, err := f.uc.SetThresholds(ctx, "sku", inventory.ThresholdsPatch{ReorderPoint: ptr(int64(8))})
	require.NoError(t, err)
	assert.Equal(t, int64(8), out.ReorderPoint)
	assert.Equal(t, int64(entity.DefaultMinStockLevel), out.MinStockLevel)
	assert.Equal(t, int64(entity.DefaultMaxStockLevel), out.MaxStockLevel)

	// Orden incoherente aceptado; valores negativos no.
	_, err = f.uc.SetThresholds(ctx, "sku", inventory.ThresholdsPatch{MaxStockLevel: ptr(int64(1))})
	require.NoError(t, err)
	_, err = f.uc.SetThresholds(ctx, "sku", inventory.ThresholdsPatch{MinStockLevel: ptr(int64(-1))})
	require.ErrorIs(t, err, domain.ErrInvalidThreshold)
	assert.Equal(t, "min_stock_level", domain.FieldOf(err))

	status, err := f.uc.GetStatus(ctx, "sku")
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusOverstock), status.Status)
	assert.Equal(t, 1, f.entryCount(t, "sku"))
}

func TestSeedRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.uc.SeedRecord(ctx, dto.SeedRecordRequest{
		SKU:          "SAM-S24",
		InitialStock: 12,
		ReorderPoint: ptr(int64(4)),
		UnitCost:     decimal.NewFromInt(900),
		Supplier:     "Samsung",
		Location:     "Bodega Sur",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), rec.CurrentStock)
	assert.Equal(t, int64(4), rec.ReorderPoint)
	assert.Equal(t, "Samsung", rec.Supplier)

	history, err := f.uc.ListHistory(ctx, dto.LedgerHistoryRequest{SKU: "SAM-S24"})
	require.NoError(t, err)
	require.Len(t, history.Logs, 1)
	assert.Equal(t, "restock", history.Logs[0].Type)
	assert.Equal(t, "stock inicial", history.Logs[0].Reason)
	assert.Equal(t, int64(0), history.Logs[0].StockBefore)

	_, err = f.uc.SeedRecord(ctx, dto.SeedRecordRequest{SKU: "SAM-S24"})
	require.ErrorIs(t, err, domain.ErrDuplicate)

	// Sin stock inicial no hay entrada.
	_, err = f.uc.SeedRecord(ctx, dto.SeedRecordRequest{SKU: "PIX-8"})
	require.NoError(t, err)
	assert.Equal(t, 0, f.entryCount(t, "PIX-8"))

	_, err = f.uc.SeedRecord(ctx, dto.SeedRecordRequest{SKU: "X", InitialStock: -1})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestSeedCatalog_OmiteDuplicados(t *testing.T) {
	f := newFixture(t)
	items := []dto.SeedRecordRequest{
		{SKU: "A", InitialStock: 1},
		{SKU: "B", InitialStock: 2},
		{SKU: "A", InitialStock: 9},
	}
	created, skipped, err := f.uc.SeedCatalog(context.Background(), items)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, int64(1), f.record(t, "A").CurrentStock)
}

func TestSeedCatalog_UnaLineaDeResumen(t *testing.T) {
	var buf bytes.Buffer
	store := memory.NewStore()
	uc := inventory.NewLedgerUseCase(store, store.Records(), store.Entries(), inventory.DefaultLedgerConfig(),
		inventory.WithLogger(logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})),
	)
	_, _, err := uc.SeedCatalog(context.Background(), []dto.SeedRecordRequest{{SKU: "A"}, {SKU: "A"}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, float64(1), entry["created"])
	assert.Equal(t, float64(1), entry["skipped"])
}

func TestGetRecord_ActividadReciente(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 15; i++ {
		f.mustApply(t, "sku", entity.KindRestock, 1)
	}

	detail, err := f.uc.GetRecord(context.Background(), "sku")
	require.NoError(t, err)
	assert.Equal(t, int64(15), detail.Inventory.CurrentStock)
	assert.Equal(t, string(entity.StatusLowStock), detail.Status)
	require.Len(t, detail.RecentActivity, 10)
	assert.Equal(t, int64(15), detail.RecentActivity[0].StockAfter)

	_, err = f.uc.GetRecord(context.Background(), "otro")
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestListHistory_FiltrosYPaginas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		f.mustApply(t, fmt.Sprintf("sku-%d", i), entity.KindRestock, 10)
		f.mustApply(t, fmt.Sprintf("sku-%d", i), entity.KindSale, 1)
	}

	sales, err := f.uc.ListHistory(ctx, dto.LedgerHistoryRequest{Kind: "sale", PageRequest: dto.PageRequest{Page: 2, Limit: 2}})
	require.NoError(t, err)
	assert.Equal(t, dto.PageResponse{Page: 2, Limit: 2, Total: 3, Pages: 2}, sales.Pagination)
	require.Len(t, sales.Logs, 1)
	assert.Equal(t, "sku-0", sales.Logs[0].SKU)

	_, err = f.uc.ListHistory(ctx, dto.LedgerHistoryRequest{Kind: "transfer"})
	require.ErrorIs(t, err, domain.ErrInvalidKind)
}

func ptr[T any](v T) *T { return &v }
