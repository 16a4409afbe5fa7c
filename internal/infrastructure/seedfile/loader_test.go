package seedfile_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/infrastructure/seedfile"
)

const catalog = `
records:
  - sku_id: IPH-15-128-BLK
    initial_stock: 40
    reorder_point: 10
    unit_cost: "3200000.50"
    supplier: Apple Distribution
    location: Bodega Norte
  - sku_id: PIX-8-256
    initial_stock: 0
`

func TestDecode(t *testing.T) {
	items, err := seedfile.Decode(strings.NewReader(catalog))
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "IPH-15-128-BLK", first.SKU)
	assert.Equal(t, int64(40), first.InitialStock)
	require.NotNil(t, first.ReorderPoint)
	assert.Equal(t, int64(10), *first.ReorderPoint)
	assert.Nil(t, first.MaxStockLevel)
	assert.True(t, decimal.RequireFromString("3200000.50").Equal(first.UnitCost))
	assert.Equal(t, "Bodega Norte", first.Location)

	assert.True(t, items[1].UnitCost.IsZero())
}

func TestDecode_Errores(t *testing.T) {
	_, err := seedfile.Decode(strings.NewReader("records:\n  - initial_stock: 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sku_id")

	_, err = seedfile.Decode(strings.NewReader("records:\n  - sku_id: A\n    color: rojo\n"))
	require.Error(t, err)

	items, err := seedfile.Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalog), 0o600))

	items, err := seedfile.Load(path)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = seedfile.Load(filepath.Join(t.TempDir(), "no-existe.yaml"))
	require.Error(t, err)
}
