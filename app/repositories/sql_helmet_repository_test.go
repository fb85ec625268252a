package repositories_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/helmet-store/app/repositories"
)

var defaultTables = repositories.Tables{Helmet: "helmets", Type: "type"}

func newMockRepo(t *testing.T, driver string) (*repositories.SQLHelmetRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := repositories.NewSQLHelmetRepository(db, driver, defaultTables)
	require.NoError(t, err)
	return repo, mock, db
}

func TestSQLListHelmets(t *testing.T) {
	repo, mock, db := newMockRepo(t, "mysql")

	mock.ExpectQuery("SELECT h.id, h.type_id, h.name, h.price, h.stock, t.name FROM helmets h INNER JOIN type t ON h.type_id = t.id ORDER BY h.id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "type_id", "name", "price", "stock", "name"}).
			AddRow(1, 2, "Shoei RF", "52.55", 10, "Open Face").
			AddRow(2, 1, "Arai RX", "2000000", 0, "Full Face"))

	helmets, err := repo.ListHelmets(context.Background())
	require.NoError(t, err)
	require.Len(t, helmets, 2)

	assert.Equal(t, uint(1), helmets[0].ID)
	assert.Equal(t, uint(2), helmets[0].Type.ID)
	assert.Equal(t, "Open Face", helmets[0].Type.Name)
	assert.Equal(t, "52.55", helmets[0].Price.String())
	assert.Equal(t, "2000000", helmets[1].Price.String())
	assert.Zero(t, db.Stats().InUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLListTypes(t *testing.T) {
	repo, mock, db := newMockRepo(t, "mysql")

	mock.ExpectQuery("SELECT id, name FROM type ORDER BY id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Full Face"))

	types, err := repo.ListTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "Full Face", types[0].Name)
	assert.Zero(t, db.Stats().InUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLAddHelmet(t *testing.T) {
	repo, mock, db := newMockRepo(t, "mysql")

	mock.ExpectExec("INSERT INTO helmets (type_id, name, price, stock) VALUES (?, ?, ?, ?)").
		WithArgs(3, "Bell MX", decimal.RequireFromString("52.55"), 7).
		WillReturnResult(sqlmock.NewResult(9, 1))

	err := repo.AddHelmet(context.Background(), 3, "Bell MX", decimal.RequireFromString("52.55"), 7)
	require.NoError(t, err)
	assert.Zero(t, db.Stats().InUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLEditHelmetRowsAffected(t *testing.T) {
	cases := []struct {
		name     string
		affected int64
		want     bool
	}{
		{"hit", 1, true},
		{"miss", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, db := newMockRepo(t, "mysql")
			mock.ExpectExec("UPDATE helmets SET price = ?, stock = ? WHERE id = ?").
				WithArgs(decimal.NewFromInt(100), 5, 4).
				WillReturnResult(sqlmock.NewResult(0, tc.affected))

			ok, err := repo.EditHelmet(context.Background(), 4, decimal.NewFromInt(100), 5)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
			assert.Zero(t, db.Stats().InUse)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLDeleteHelmet(t *testing.T) {
	repo, mock, db := newMockRepo(t, "mysql")

	mock.ExpectExec("DELETE FROM helmets WHERE id = ?").
		WithArgs(8).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.DeleteHelmet(context.Background(), 8)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, db.Stats().InUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLFaultsPropagateAndReleaseHandle(t *testing.T) {
	fault := errors.New("constraint violation")

	t.Run("query", func(t *testing.T) {
		repo, mock, db := newMockRepo(t, "mysql")
		mock.ExpectQuery("SELECT id, name FROM type ORDER BY id").WillReturnError(fault)

		_, err := repo.ListTypes(context.Background())
		assert.ErrorIs(t, err, fault)
		assert.Zero(t, db.Stats().InUse)
	})

	t.Run("scan", func(t *testing.T) {
		repo, mock, db := newMockRepo(t, "mysql")
		mock.ExpectQuery("SELECT id, name FROM type ORDER BY id").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("not-a-number", "x"))

		_, err := repo.ListTypes(context.Background())
		assert.Error(t, err)
		assert.Zero(t, db.Stats().InUse)
	})

	t.Run("exec", func(t *testing.T) {
		repo, mock, db := newMockRepo(t, "mysql")
		mock.ExpectExec("INSERT INTO helmets (type_id, name, price, stock) VALUES (?, ?, ?, ?)").WillReturnError(fault)

		err := repo.AddHelmet(context.Background(), 99, "x", decimal.Zero, 0)
		assert.ErrorIs(t, err, fault)
		assert.Zero(t, db.Stats().InUse)
	})

	t.Run("rows affected", func(t *testing.T) {
		repo, mock, db := newMockRepo(t, "mysql")
		mock.ExpectExec("DELETE FROM helmets WHERE id = ?").
			WillReturnResult(sqlmock.NewErrorResult(fault))

		ok, err := repo.DeleteHelmet(context.Background(), 1)
		assert.ErrorIs(t, err, fault)
		assert.False(t, ok)
		assert.Zero(t, db.Stats().InUse)
	})
}

func TestSQLRunsAfterClientCancel(t *testing.T) {
	repo, mock, db := newMockRepo(t, "mysql")
	mock.ExpectExec("DELETE FROM helmets WHERE id = ?").
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := repo.DeleteHelmet(ctx, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, db.Stats().InUse)
}

func TestSQLPlaceholdersPerDialect(t *testing.T) {
	repo, mock, _ := newMockRepo(t, "postgres")
	mock.ExpectExec("UPDATE helmets SET price = $1, stock = $2 WHERE id = $3").
		WithArgs(decimal.NewFromInt(1), 1, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.EditHelmet(context.Background(), 1, decimal.NewFromInt(1), 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRejectsBadTableNames(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = repositories.NewSQLHelmetRepository(db, "mysql", repositories.Tables{Helmet: "helmets; DROP TABLE x", Type: "type"})
	assert.Error(t, err)
}
