// Package seedfile carga el catálogo inicial de stock desde YAML.
package seedfile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
)

// File forma del archivo:
//
//	records:
//	  - sku_id: IPH-15-128-BLK
//	    initial_stock: 40
//	    unit_cost: "3200000.00"
//	    supplier: Apple Distribution
//	    location: Bodega Norte
type File struct {
	Records []dto.SeedRecordRequest `yaml:"records"`
}

// Load lee y decodifica path.
func Load(path string) ([]dto.SeedRecordRequest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer seed %s: %w", path, err)
	}
	items, err := Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return items, nil
}

// Decode decodifica un catálogo; campos desconocidos son error.
func Decode(r io.Reader) ([]dto.SeedRecordRequest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return []dto.SeedRecordRequest{}, nil
		}
		return nil, fmt.Errorf("decodificar yaml: %w", err)
	}
	for i, rec := range f.Records {
		if rec.SKU == "" {
			return nil, fmt.Errorf("registro %d: sku_id vacío", i)
		}
	}
	return f.Records, nil
}
