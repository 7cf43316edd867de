package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/postgres"
	"github.com/jhoicas/estoque-api/internal/infrastructure/referencedata"
)

func newSeedCmd(opts *options) *cobra.Command {
	var statesPath, categoriesPath string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Carga estados y categorías",
		Long: `Carga estados y categorías de referencia de forma idempotente.

Sin flags usa los datos embebidos (27 unidades federativas y categorías iniciales).
Los archivos externos deben estar en ISO-8859-1 con separador ';' y encabezado:
  estados:    nome;sigla
  categorias: nome`,
		RunE: func(cmd *cobra.Command, args []string) error {
			states, categories, err := loadReferenceData(statesPath, categoriesPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, _, err := opts.openPool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := referencedata.Apply(ctx, postgres.NewReferenceRepository(pool), states, categories); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cargados %d estados y %d categorías\n", len(states), len(categories))
			return nil
		},
	}
	cmd.Flags().StringVar(&statesPath, "states", "", "CSV de estados (ISO-8859-1)")
	cmd.Flags().StringVar(&categoriesPath, "categories", "", "CSV de categorías (ISO-8859-1)")
	return cmd
}

func loadReferenceData(statesPath, categoriesPath string) ([]entity.State, []string, error) {
	var (
		states     []entity.State
		categories []string
		err        error
	)
	if statesPath == "" {
		states, err = referencedata.DefaultStates()
	} else {
		states, err = readFile(statesPath, referencedata.ReadStates)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("estados: %w", err)
	}
	if categoriesPath == "" {
		categories, err = referencedata.DefaultCategories()
	} else {
		categories, err = readFile(categoriesPath, referencedata.ReadCategories)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("categorías: %w", err)
	}
	return states, categories, nil
}

func readFile[T any](path string, read func(r io.Reader) (T, error)) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, err
	}
	defer f.Close()
	return read(f)
}
