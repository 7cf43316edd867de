package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/infrastructure/postgres"
)

func newUserCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Gestión de usuarios",
	}
	cmd.AddCommand(newUserCreateCmd(opts))
	return cmd
}

func newUserCreateCmd(opts *options) *cobra.Command {
	var (
		in    dto.RegisterRequest
		level int
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crea un usuario con nivel de permiso (1 lectura, 2 estándar, 3 elevado)",
		Example: `  estoquectl user create --name "Ana" --email ana@empresa.com.br --password segredo --level 3`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !domain.PermissionLevel(level).Valid() {
				return fmt.Errorf("--level debe ser 1, 2 o 3 (recibido %d)", level)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, cfg, err := opts.openPool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
				Secret:     cfg.JWT.Secret,
				ExpMinutes: cfg.JWT.Expiration,
				Issuer:     cfg.JWT.Issuer,
			})
			user, err := uc.CreateUser(ctx, in, domain.PermissionLevel(level))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Usuario %d creado: %s (nivel %d)\n", user.ID, user.Email, user.Level)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "Nombre")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email (login)")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password")
	cmd.Flags().IntVar(&level, "level", int(domain.LevelReadOnly), "Nivel de permiso")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
