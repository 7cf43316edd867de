package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/estoque-api/internal/infrastructure/postgres"
	"github.com/jhoicas/estoque-api/pkg/config"
)

// options flags globales compartidas por los subcomandos.
type options struct {
	dbURL string
}

// NewRootCmd construye el árbol de comandos.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "estoquectl",
		Short: "Administración de estoque-api",
		Long: `Herramientas de administración de estoque-api.

Subcomandos:
  migrate      - aplica las migraciones pendientes
  seed         - carga estados y categorías (CSV ISO-8859-1)
  user create  - crea un usuario con nivel de permiso explícito`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.dbURL, "db", "", "URL de PostgreSQL (por defecto DATABASE_URL / DB_*)")

	root.AddCommand(newMigrateCmd(opts), newSeedCmd(opts), newUserCmd(opts))
	return root
}

// Execute ejecuta el comando raíz.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openPool resuelve la configuración de BD (flag --db con prioridad) y abre el pool.
func (o *options) openPool(ctx context.Context) (*pgxpool.Pool, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if o.dbURL != "" {
		cfg.DB.DatabaseURL = o.dbURL
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return pool, cfg, nil
}
