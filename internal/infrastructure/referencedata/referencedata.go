// Package referencedata carga categorías y estados desde CSV en ISO-8859-1 (separador ';').
package referencedata

import (
	"context"
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

//go:embed estados.csv categorias.csv
var defaults embed.FS

// Target destino de la carga; las operaciones deben ser idempotentes.
type Target interface {
	UpsertCategory(ctx context.Context, name string) error
	UpsertState(ctx context.Context, name, abbreviation string) error
}

// ReadStates lee filas "nome;sigla" (con encabezado).
func ReadStates(r io.Reader) ([]entity.State, error) {
	rows, err := readRows(r, 2)
	if err != nil {
		return nil, err
	}
	out := make([]entity.State, 0, len(rows))
	for _, row := range rows {
		abbr := strings.ToUpper(row[1])
		if len(abbr) != 2 {
			return nil, fmt.Errorf("sigla inválida %q", row[1])
		}
		out = append(out, entity.State{Name: row[0], Abbreviation: abbr})
	}
	return out, nil
}

// ReadCategories lee filas "nome" (con encabezado).
func ReadCategories(r io.Reader) ([]string, error) {
	rows, err := readRows(r, 1)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row[0])
	}
	return out, nil
}

// DefaultStates las 27 unidades federativas embebidas.
func DefaultStates() ([]entity.State, error) {
	f, err := defaults.Open("estados.csv")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadStates(f)
}

// DefaultCategories categorías iniciales embebidas.
func DefaultCategories() ([]string, error) {
	f, err := defaults.Open("categorias.csv")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCategories(f)
}

// Apply carga estados y categorías en el destino.
func Apply(ctx context.Context, t Target, states []entity.State, categories []string) error {
	for _, s := range states {
		if err := t.UpsertState(ctx, s.Name, s.Abbreviation); err != nil {
			return fmt.Errorf("estado %s: %w", s.Abbreviation, err)
		}
	}
	for _, c := range categories {
		if err := t.UpsertCategory(ctx, c); err != nil {
			return fmt.Errorf("categoría %s: %w", c, err)
		}
	}
	return nil
}

func readRows(r io.Reader, fields int) ([][]string, error) {
	cr := csv.NewReader(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	cr.Comma = ';'
	cr.FieldsPerRecord = fields
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("leer csv: %w", err)
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		if rec[0] == "" {
			continue
		}
		rows = append(rows, rec)
	}
}
