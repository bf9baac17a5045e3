// inmo-velar/cmd/velar-migrate/main.go

// velar-migrate aplica o revierte las migraciones del esquema sin levantar
// el servidor. Útil en despliegues y en las bases locales de SQLite.
package main

import (
	"fmt"
	"os"

	"github.com/JSUARCAR/inmo-velar-sub001/config"
	"github.com/JSUARCAR/inmo-velar-sub001/internal/migration"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func nuevoMigrador() *migration.Migrator {
	_ = godotenv.Load()
	config.ConnectDB()
	migrator := migration.NewMigrator(config.DB)
	migration.Registrar(migrator)
	return migrator
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "velar-migrate",
		Short: "Gestiona el esquema de la base de datos de Inmobiliaria Velar",
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return nuevoMigrador().Up()
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Revierte la última migración aplicada",
		RunE: func(cmd *cobra.Command, args []string) error {
			return nuevoMigrador().Down()
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Muestra las migraciones aplicadas",
		RunE: func(cmd *cobra.Command, args []string) error {
			aplicadas, err := nuevoMigrador().AppliedVersions()
			if err != nil {
				return err
			}
			for version := range aplicadas {
				fmt.Println(version)
			}
			return nil
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
