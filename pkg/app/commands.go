package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/helmet-store/app/repositories"
	"github.com/shashiranjanraj/helmet-store/config"
	"github.com/shashiranjanraj/helmet-store/database/seeders"
	"github.com/shashiranjanraj/helmet-store/pkg/database"
	"github.com/shashiranjanraj/helmet-store/pkg/migration"
)

// withGorm loads config and runs fn on a short-lived gorm pool.
func withGorm(ctx context.Context, fn func(db *gorm.DB) error) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	db, err := database.OpenGorm(ctx, database.OptionsFromConfig())
	if err != nil {
		return err
	}
	defer database.CloseGorm(db)
	return fn(db)
}

// Migrate runs every pending migration.
func Migrate(ctx context.Context, out io.Writer) error {
	return withGorm(ctx, func(db *gorm.DB) error {
		return migration.New(db).WithOutput(out).Run()
	})
}

// Rollback reverses the last migration batch.
func Rollback(ctx context.Context, out io.Writer) error {
	return withGorm(ctx, func(db *gorm.DB) error {
		return migration.New(db).WithOutput(out).Rollback()
	})
}

// MigrationStatus prints each migration and whether it ran.
func MigrationStatus(ctx context.Context, out io.Writer) error {
	return withGorm(ctx, func(db *gorm.DB) error {
		return migration.New(db).WithOutput(out).Status()
	})
}

// Seed runs every registered seeder.
func Seed(ctx context.Context, out io.Writer) error {
	return withGorm(ctx, func(db *gorm.DB) error {
		return seeders.RunAll(db, out)
	})
}

// PrintRoutes writes the route table. No database is needed.
func PrintRoutes(out io.Writer) error {
	a, err := New(Stores{SQLDriver: config.DatabaseDriver(), Tables: repositories.TablesFromConfig()})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tNAME")
	fmt.Fprintf(w, "%s\t%s\t%s\n", strings.Repeat("-", 6), strings.Repeat("-", 4), strings.Repeat("-", 4))
	for _, ri := range a.Routes() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
	}
	return w.Flush()
}
