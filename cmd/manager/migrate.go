package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/renanb12/Projeto-Integrador/internal/infrastructure/postgres"
)

func newMigrateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Administra el esquema de la base de datos",
	}

	run := func(fn func(*postgres.Migrator, *cobra.Command) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			mg, err := postgres.NewMigrator(e.cfg.DB.ConnectionString(), e.log.Component("migrate"))
			if err != nil {
				return err
			}
			defer func() { _ = mg.Close() }()
			return fn(mg, cmd)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplica las migraciones pendientes",
			Args:  cobra.NoArgs,
			RunE:  run(func(mg *postgres.Migrator, _ *cobra.Command) error { return mg.Up() }),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revierte todas las migraciones (borra los datos)",
			Args:  cobra.NoArgs,
			RunE:  run(func(mg *postgres.Migrator, _ *cobra.Command) error { return mg.Down() }),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Muestra la versión actual del esquema",
			Args:  cobra.NoArgs,
			RunE: run(func(mg *postgres.Migrator, cmd *cobra.Command) error {
				v, dirty, err := mg.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "versión %d (dirty=%t)\n", v, dirty)
				return nil
			}),
		},
	)
	return cmd
}
