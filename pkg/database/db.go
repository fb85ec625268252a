// Package database opens the two connection pools the helmet store runs on:
// a plain database/sql pool for the raw SQL backend and a gorm pool for the
// ORM backend. Nothing here is global; the caller owns both and closes them.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/microsoft/go-mssqldb"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/helmet-store/config"
)

// Options describes one pool.
type Options struct {
	Driver  string // sqlite, postgres, mysql, sqlserver
	DSN     string
	MaxOpen int
}

// OptionsFromConfig reads DB_DRIVER, DATABASE_DSN and MYSQL_CONN_LIMIT.
func OptionsFromConfig() Options {
	return Options{
		Driver:  config.DatabaseDriver(),
		DSN:     config.DatabaseDSN(),
		MaxOpen: config.ConnLimit(),
	}
}

// SQLDriverName maps a DB_DRIVER value to the database/sql driver name.
func SQLDriverName(driver string) (string, error) {
	switch driver {
	case "sqlite":
		return "sqlite3", nil
	case "postgres":
		return "postgres", nil
	case "mysql":
		return "mysql", nil
	case "sqlserver":
		return "sqlserver", nil
	default:
		return "", fmt.Errorf("unsupported DB_DRIVER %q (supported: sqlite, postgres, mysql, sqlserver)", driver)
	}
}

// OpenSQL opens and pings a database/sql pool.
func OpenSQL(ctx context.Context, opts Options) (*sql.DB, error) {
	name, err := SQLDriverName(opts.Driver)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	db, err := sql.Open(name, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", name, err)
	}
	configurePool(db, opts.MaxOpen)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: ping %s: %w", name, err)
	}
	return db, nil
}

// OpenGorm opens and pings a gorm pool. GORM's own logger is silenced;
// the repositories log through pkg/logger.
func OpenGorm(ctx context.Context, opts Options) (*gorm.DB, error) {
	dialector, err := buildDialector(opts.Driver, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("database: build dialector: %w", err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: get sql.DB: %w", err)
	}
	configurePool(sqlDB, opts.MaxOpen)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}
	return db, nil
}

// CloseGorm releases the pool behind db.
func CloseGorm(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func configurePool(db *sql.DB, maxOpen int) {
	if maxOpen <= 0 {
		maxOpen = 10
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)
}

func buildDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlserver":
		return sqlserver.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: sqlite, postgres, mysql, sqlserver)", driver)
	}
}

// Rebind rewrites '?' placeholders for drivers that use numbered ones.
func Rebind(driver, query string) string {
	var prefix string
	switch driver {
	case "postgres":
		prefix = "$"
	case "sqlserver":
		prefix = "@p"
	default:
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString(prefix)
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
