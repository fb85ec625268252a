package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/helmet-store/app/models"
	"github.com/shashiranjanraj/helmet-store/pkg/database"
)

const backendSQL = "sql"

type sqlQueries struct {
	listHelmets  string
	listTypes    string
	addHelmet    string
	editHelmet   string
	deleteHelmet string
}

func buildQueries(driver string, t Tables) sqlQueries {
	return sqlQueries{
		listHelmets: fmt.Sprintf(
			"SELECT h.id, h.type_id, h.name, h.price, h.stock, t.name FROM %s h INNER JOIN %s t ON h.type_id = t.id ORDER BY h.id",
			t.Helmet, t.Type),
		listTypes:    fmt.Sprintf("SELECT id, name FROM %s ORDER BY id", t.Type),
		addHelmet:    database.Rebind(driver, fmt.Sprintf("INSERT INTO %s (type_id, name, price, stock) VALUES (?, ?, ?, ?)", t.Helmet)),
		editHelmet:   database.Rebind(driver, fmt.Sprintf("UPDATE %s SET price = ?, stock = ? WHERE id = ?", t.Helmet)),
		deleteHelmet: database.Rebind(driver, fmt.Sprintf("DELETE FROM %s WHERE id = ?", t.Helmet)),
	}
}

// SQLHelmetRepository runs hand-written, parameterized statements over
// database/sql. Each call checks one connection out of the pool and returns
// it before the call ends.
type SQLHelmetRepository struct {
	db *sql.DB
	q  sqlQueries
}

// NewSQLHelmetRepository prepares the statement text for driver (sqlite,
// postgres, mysql, sqlserver) and tables.
func NewSQLHelmetRepository(db *sql.DB, driver string, tables Tables) (*SQLHelmetRepository, error) {
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	return &SQLHelmetRepository{db: db, q: buildQueries(driver, tables)}, nil
}

func (r *SQLHelmetRepository) ListHelmets(ctx context.Context) (_ []models.Helmet, err error) {
	ctx = detach(ctx)
	defer observe(ctx, backendSQL, opListHelmets, time.Now(), &err)

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, r.q.listHelmets)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var helmets []models.Helmet
	for rows.Next() {
		var h models.Helmet
		if err := rows.Scan(&h.ID, &h.TypeID, &h.Name, &h.Price, &h.Stock, &h.Type.Name); err != nil {
			return nil, err
		}
		h.Type.ID = h.TypeID
		helmets = append(helmets, h)
	}
	return helmets, rows.Err()
}

func (r *SQLHelmetRepository) ListTypes(ctx context.Context) (_ []models.HelmetType, err error) {
	ctx = detach(ctx)
	defer observe(ctx, backendSQL, opListTypes, time.Now(), &err)

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, r.q.listTypes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []models.HelmetType
	for rows.Next() {
		var t models.HelmetType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *SQLHelmetRepository) AddHelmet(ctx context.Context, typeID uint, name string, price decimal.Decimal, stock int) (err error) {
	ctx = detach(ctx)
	defer observe(ctx, backendSQL, opAddHelmet, time.Now(), &err)

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.ExecContext(ctx, r.q.addHelmet, typeID, name, price, stock)
	return err
}

func (r *SQLHelmetRepository) EditHelmet(ctx context.Context, id uint, price decimal.Decimal, stock int) (_ bool, err error) {
	ctx = detach(ctx)
	defer observe(ctx, backendSQL, opEditHelmet, time.Now(), &err)

	return r.execOne(ctx, r.q.editHelmet, price, stock, id)
}

func (r *SQLHelmetRepository) DeleteHelmet(ctx context.Context, id uint) (_ bool, err error) {
	ctx = detach(ctx)
	defer observe(ctx, backendSQL, opDeleteHelmet, time.Now(), &err)

	return r.execOne(ctx, r.q.deleteHelmet, id)
}

// execOne runs a statement keyed by primary key and reports whether it hit
// exactly one row.
func (r *SQLHelmetRepository) execOne(ctx context.Context, query string, args ...any) (bool, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Ping checks the pool. Used by /healthz.
func (r *SQLHelmetRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
