package main

import (
	"errors"
	"fmt"
	"os"

	"fitness-tracker/models"
	"fitness-tracker/utils"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	databaseURL string
	sqlitePath  string
)

var rootCmd = &cobra.Command{
	Use:           "fitctl",
	Short:         "fitctl manages the fitness tracker database",
	Long:          "fitctl migrates and seeds the fitness tracker database, recomputes derived profile metrics and runs achievement checks outside the HTTP server.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	_ = godotenv.Load()
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "Postgres connection string")
	rootCmd.PersistentFlags().StringVar(&sqlitePath, "sqlite", "", "Path to a SQLite database (overrides --database-url)")
}

func openDB() (*gorm.DB, error) {
	if sqlitePath != "" {
		return utils.OpenSQLite(sqlitePath, true)
	}
	if databaseURL == "" {
		return nil, errors.New("no database: pass --database-url, --sqlite or set DATABASE_URL")
	}
	return utils.OpenPostgres(databaseURL)
}

// withDB opens and migrates the selected database, then runs fn.
func withDB(fn func(*gorm.DB) error) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := models.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return fn(db)
}
