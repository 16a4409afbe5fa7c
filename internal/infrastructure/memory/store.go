package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store backend en memoria del ledger: registros por SKU y log de entradas ordenado por ID.
// Las lecturas y escrituras copian los valores; nadie fuera del store comparte punteros con él.
type Store struct {
	mu      sync.RWMutex
	records map[string]*entity.StockRecord
	entries []*entity.LedgerEntry // ascendente por ID
	seq     int64

	locks *KeyedMutex
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		records: make(map[string]*entity.StockRecord),
		locks:   NewKeyedMutex(),
	}
}

// Records repositorio de registros fuera de transacción (lecturas de reportes).
func (s *Store) Records() repository.StockRecordRepository {
	return &recordRepo{s: s}
}

// Entries repositorio del log fuera de transacción.
func (s *Store) Entries() repository.LedgerEntryRepository {
	return &entryRepo{s: s}
}

// Run serializa fn con las demás mutaciones del mismo SKU. Lo que fn escribe queda en un
// área temporal y se confirma completo bajo el lock del store solo si fn devuelve nil,
// así un lector nunca ve un contador sin su entrada.
func (s *Store) Run(ctx context.Context, sku string, fn func(
	records repository.StockRecordRepository,
	entries repository.LedgerEntryRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	unlock, err := s.locks.Lock(ctx, sku)
	if err != nil {
		return err
	}
	defer unlock()

	tx := &stagedTx{records: make(map[string]*entity.StockRecord)}
	if err := fn(&recordRepo{s: s, tx: tx}, &entryRepo{s: s, tx: tx}); err != nil {
		return err
	}
	s.commit(tx)
	return nil
}

// stagedTx escrituras pendientes de una unidad atómica.
type stagedTx struct {
	records map[string]*entity.StockRecord
	entries []*entity.LedgerEntry
}

func (s *Store) commit(tx *stagedTx) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sku, r := range tx.records {
		s.records[sku] = r
	}
	for _, e := range tx.entries {
		s.insertEntry(e)
	}
}

// insertEntry mantiene s.entries ordenado por ID. Los IDs se asignan en Append y dos SKUs
// distintos pueden confirmar en orden inverso. Requiere s.mu.
func (s *Store) insertEntry(e *entity.LedgerEntry) {
	n := len(s.entries)
	if n == 0 || s.entries[n-1].ID < e.ID {
		s.entries = append(s.entries, e)
		return
	}
	i := sort.Search(n, func(i int) bool { return s.entries[i].ID > e.ID })
	s.entries = append(s.entries, nil)
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = e
}

func (s *Store) nextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}
