package migration

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type widget struct {
	ID   uint
	Name string
}

type createWidgets struct{}

func (createWidgets) Up(db *gorm.DB) error   { return db.AutoMigrate(&widget{}) }
func (createWidgets) Down(db *gorm.DB) error { return db.Migrator().DropTable(&widget{}) }

type brokenUp struct{}

func (brokenUp) Up(*gorm.DB) error   { return errors.New("nope") }
func (brokenUp) Down(*gorm.DB) error { return nil }

func withRegistry(t *testing.T, regs ...registeredMigration) {
	t.Helper()
	mu.Lock()
	saved := registry
	registry = regs
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		registry = saved
		mu.Unlock()
	})
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "m.db")), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	return db
}

func TestRunRollbackStatus(t *testing.T) {
	withRegistry(t, registeredMigration{name: "20240101000000_create_widgets", m: createWidgets{}})
	db := openDB(t)
	var out bytes.Buffer
	r := New(db).WithOutput(&out)

	require.NoError(t, r.Run())
	assert.True(t, db.Migrator().HasTable(&widget{}))

	pending, err := r.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)

	require.NoError(t, r.Run())
	assert.Contains(t, out.String(), "Nothing to migrate.")

	out.Reset()
	require.NoError(t, r.Status())
	assert.Contains(t, out.String(), "20240101000000_create_widgets")
	assert.Contains(t, out.String(), "Ran")

	require.NoError(t, r.Rollback())
	assert.False(t, db.Migrator().HasTable(&widget{}))

	pending, err = r.Pending()
	require.NoError(t, err)
	assert.Equal(t, []string{"20240101000000_create_widgets"}, pending)

	out.Reset()
	require.NoError(t, r.Rollback())
	assert.Contains(t, out.String(), "Nothing to roll back.")
}

func TestRunStopsOnFailure(t *testing.T) {
	withRegistry(t,
		registeredMigration{name: "20240101000001_broken", m: brokenUp{}},
		registeredMigration{name: "20240101000000_create_widgets", m: createWidgets{}},
	)
	r := New(openDB(t)).WithOutput(&bytes.Buffer{})

	err := r.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "20240101000001_broken")

	pending, err := r.Pending()
	require.NoError(t, err)
	assert.Equal(t, []string{"20240101000001_broken"}, pending)
}
