package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Run_ConfirmaRegistroYEntradaJuntos(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	err := s.Run(ctx, "IPH-15", func(records repository.StockRecordRepository, entries repository.LedgerEntryRepository) error {
		require.NoError(t, records.Upsert(ctx, &entity.StockRecord{SKU: "IPH-15", CurrentStock: 10}))
		e := &entity.LedgerEntry{SKU: "IPH-15", Kind: entity.KindRestock, Quantity: 10, StockAfter: 10}
		require.NoError(t, entries.Append(ctx, e))
		assert.Equal(t, int64(1), e.ID)

		// Dentro de la unidad se ven las escrituras pendientes; fuera todavía no.
		got, err := records.Get(ctx, "IPH-15")
		require.NoError(t, err)
		assert.Equal(t, int64(10), got.CurrentStock)
		outside, err := s.Records().Get(ctx, "IPH-15")
		require.NoError(t, err)
		assert.Nil(t, outside)
		return nil
	})
	require.NoError(t, err)

	got, err := s.Records().Get(ctx, "IPH-15")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(10), got.CurrentStock)

	list, total, err := s.Entries().List(ctx, entity.LedgerFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "IPH-15", list[0].SKU)
}

func TestStore_Run_ErrorDescartaTodo(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	boom := errors.New("boom")

	err := s.Run(ctx, "SAM-S24", func(records repository.StockRecordRepository, entries repository.LedgerEntryRepository) error {
		_ = records.Upsert(ctx, &entity.StockRecord{SKU: "SAM-S24", CurrentStock: 3})
		_ = entries.Append(ctx, &entity.LedgerEntry{SKU: "SAM-S24", Kind: entity.KindRestock, Quantity: 3})
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Records().Get(ctx, "SAM-S24")
	require.NoError(t, err)
	assert.Nil(t, got)
	_, total, err := s.Entries().List(ctx, entity.LedgerFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestStore_Get_DevuelveCopia(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Records().Upsert(ctx, &entity.StockRecord{SKU: "PIX-8", CurrentStock: 4}))

	got, err := s.Records().Get(ctx, "PIX-8")
	require.NoError(t, err)
	got.CurrentStock = 999

	again, err := s.Records().Get(ctx, "PIX-8")
	require.NoError(t, err)
	assert.Equal(t, int64(4), again.CurrentStock)
}

func TestEntries_List_RecientesPrimeroYPaginado(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	entries := s.Entries()
	for i := 0; i < 5; i++ {
		sku := "A"
		if i%2 == 1 {
			sku = "B"
		}
		require.NoError(t, entries.Append(ctx, &entity.LedgerEntry{SKU: sku, Kind: entity.KindRestock, Quantity: int64(i + 1)}))
	}

	page, total, err := entries.List(ctx, entity.LedgerFilter{}, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, int64(5), page[0].ID)
	assert.Equal(t, int64(4), page[1].ID)

	page, total, err = entries.List(ctx, entity.LedgerFilter{SKU: "A"}, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, int64(3), page[0].ID)
	assert.Equal(t, int64(1), page[1].ID)

	page, total, err = entries.List(ctx, entity.LedgerFilter{Kind: entity.KindSale}, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, page)
}

func TestStore_Run_SerializaPorSKU(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Run(ctx, "IPH-15", func(records repository.StockRecordRepository, _ repository.LedgerEntryRepository) error {
				rec, err := records.Get(ctx, "IPH-15")
				if err != nil {
					return err
				}
				if rec == nil {
					rec = &entity.StockRecord{SKU: "IPH-15"}
				}
				rec.CurrentStock++
				return records.Upsert(ctx, rec)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.Records().Get(ctx, "IPH-15")
	require.NoError(t, err)
	assert.Equal(t, int64(50), got.CurrentStock)
}

func TestKeyedMutex_ClavesIndependientesYCancelacion(t *testing.T) {
	km := memory.NewKeyedMutex()
	ctx := context.Background()

	unlockA, err := km.Lock(ctx, "A")
	require.NoError(t, err)

	// Otra clave no espera.
	unlockB, err := km.Lock(ctx, "B")
	require.NoError(t, err)
	unlockB()

	// La misma clave respeta la cancelación del contexto.
	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = km.Lock(waitCtx, "A")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	unlockA()
	unlockA()
	assert.Zero(t, km.Len())
}
