package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/helmet-store/app/models"
	"github.com/shashiranjanraj/helmet-store/app/repositories"
	"github.com/shashiranjanraj/helmet-store/pkg/cache"
)

type countingRepo struct {
	repositories.HelmetRepository
	types []models.HelmetType
	err   error
	calls int
}

func (r *countingRepo) ListTypes(context.Context) ([]models.HelmetType, error) {
	r.calls++
	return r.types, r.err
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string, interface{}) (bool, error) {
	return false, errors.New("cache down")
}
func (brokenStore) Set(context.Context, string, interface{}, time.Duration) error {
	return errors.New("cache down")
}
func (brokenStore) Del(context.Context, ...string) error { return nil }

func TestCachedTypesReadThrough(t *testing.T) {
	ctx := context.Background()
	inner := &countingRepo{types: []models.HelmetType{{ID: 1, Name: "Full Face"}, {ID: 2, Name: "Open Face"}}}
	repo := repositories.NewCachedHelmetRepository(inner, cache.NewMemoryStore(), "sql", time.Minute)

	for i := 0; i < 3; i++ {
		got, err := repo.ListTypes(ctx)
		require.NoError(t, err)
		assert.Equal(t, inner.types, got)
	}
	assert.Equal(t, 1, inner.calls)
}

func TestCachedTypesSkipsEmptyAndErrors(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()

	empty := &countingRepo{}
	repo := repositories.NewCachedHelmetRepository(empty, store, "gorm", time.Minute)
	_, _ = repo.ListTypes(ctx)
	_, _ = repo.ListTypes(ctx)
	assert.Equal(t, 2, empty.calls)

	fault := errors.New("connection refused")
	failing := &countingRepo{err: fault}
	repo = repositories.NewCachedHelmetRepository(failing, store, "gorm", time.Minute)
	_, err := repo.ListTypes(ctx)
	assert.ErrorIs(t, err, fault)
}

func TestCachedTypesBackendsDoNotShareKeys(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()

	sqlInner := &countingRepo{types: []models.HelmetType{{ID: 1, Name: "Full Face"}}}
	gormInner := &countingRepo{types: []models.HelmetType{{ID: 5, Name: "Off-Road"}}}

	sqlTypes, err := repositories.NewCachedHelmetRepository(sqlInner, store, "sql", 0).ListTypes(ctx)
	require.NoError(t, err)
	gormTypes, err := repositories.NewCachedHelmetRepository(gormInner, store, "gorm", 0).ListTypes(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Full Face", sqlTypes[0].Name)
	assert.Equal(t, "Off-Road", gormTypes[0].Name)
}

func TestCachedTypesFallsBackWhenCacheFails(t *testing.T) {
	inner := &countingRepo{types: []models.HelmetType{{ID: 1, Name: "Full Face"}}}
	repo := repositories.NewCachedHelmetRepository(inner, brokenStore{}, "sql", time.Minute)

	got, err := repo.ListTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, inner.types, got)
}
