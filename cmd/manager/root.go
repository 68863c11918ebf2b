package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/renanb12/Projeto-Integrador/internal/infrastructure/postgres"
	"github.com/renanb12/Projeto-Integrador/pkg/config"
	"github.com/renanb12/Projeto-Integrador/pkg/logger"
)

var version = "1.0.0"

// env recursos compartidos por los subcomandos; se cargan solo cuando un comando los pide.
type env struct {
	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:   "manager",
		Short: "Herramientas de operación del inventario",
		Long: `manager importa notas fiscales (NFe) desde archivos locales y administra
el esquema de la base de datos. Lee la misma configuración que la API
(DATABASE_URL o DB_*, LOG_LEVEL, APP_ENV).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: cmd.ErrOrStderr()})
			return nil
		},
	}
	root.AddCommand(newImportCmd(e), newMigrateCmd(e))
	return root
}

func (e *env) pool(ctx context.Context) (*pgxpool.Pool, error) {
	return postgres.NewPool(ctx, e.cfg.DB)
}
