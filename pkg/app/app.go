// Package app wires the helmet store together: storage pools, the two
// repositories, the shared service layer and the HTTP kernel.
//
//	a, err := app.Open(ctx)
//	if err != nil { ... }
//	defer a.Close()
//	err = a.Serve(ctx)
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/helmet-store/app/controllers"
	"github.com/shashiranjanraj/helmet-store/app/repositories"
	"github.com/shashiranjanraj/helmet-store/app/routes"
	"github.com/shashiranjanraj/helmet-store/app/services"
	"github.com/shashiranjanraj/helmet-store/config"
	"github.com/shashiranjanraj/helmet-store/pkg/cache"
	"github.com/shashiranjanraj/helmet-store/pkg/database"
	"github.com/shashiranjanraj/helmet-store/pkg/logger"
	"github.com/shashiranjanraj/helmet-store/pkg/router"
)

// Stores are the pools the application runs on. The Application owns them
// once passed to New.
type Stores struct {
	SQL       *sql.DB
	SQLDriver string
	Gorm      *gorm.DB
	Tables    repositories.Tables

	// Cache, when set, serves the type listings of both backends.
	Cache    cache.Store
	CacheTTL time.Duration
}

// Application is a fully wired helmet store.
type Application struct {
	stores  Stores
	router  *router.Router
	closers []func()
}

// Open loads config, connects both pools and attaches the optional Mongo
// log sink and type cache.
func Open(ctx context.Context) (*Application, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var closers []func()
	if uri := config.LogMongoURI(); uri != "" {
		closeSink, err := attachMongoSink(ctx, uri)
		if err != nil {
			logger.Warn("mongo log sink disabled", "error", err)
		} else {
			closers = append(closers, closeSink)
		}
	}

	store, closeCache, err := openCache(ctx)
	if err != nil {
		logger.Warn("type cache disabled", "error", err)
	}
	if closeCache != nil {
		closers = append(closers, closeCache)
	}

	opts := database.OptionsFromConfig()
	sqlDB, err := database.OpenSQL(ctx, opts)
	if err != nil {
		runClosers(closers)
		return nil, err
	}
	gormDB, err := database.OpenGorm(ctx, opts)
	if err != nil {
		_ = sqlDB.Close()
		runClosers(closers)
		return nil, err
	}

	a, err := New(Stores{
		SQL:       sqlDB,
		SQLDriver: opts.Driver,
		Gorm:      gormDB,
		Tables:    repositories.TablesFromConfig(),
		Cache:     store,
		CacheTTL:  config.CacheTTL(),
	})
	if err != nil {
		_ = sqlDB.Close()
		_ = database.CloseGorm(gormDB)
		runClosers(closers)
		return nil, err
	}
	a.closers = append(a.closers, closers...)

	logger.Info("storage ready", "driver", opts.Driver, "max_open", opts.MaxOpen)
	return a, nil
}

// New builds the application over s without touching the network.
func New(s Stores) (*Application, error) {
	sqlRepo, err := repositories.NewSQLHelmetRepository(s.SQL, s.SQLDriver, s.Tables)
	if err != nil {
		return nil, err
	}
	gormRepo := repositories.NewGormHelmetRepository(s.Gorm)

	health := controllers.NewHealthController(map[string]controllers.Pinger{
		"sql":  sqlRepo,
		"gorm": gormRepo,
	})

	var v1, v2 repositories.HelmetRepository = sqlRepo, gormRepo
	if s.Cache != nil {
		v1 = repositories.NewCachedHelmetRepository(sqlRepo, s.Cache, "sql", s.CacheTTL)
		v2 = repositories.NewCachedHelmetRepository(gormRepo, s.Cache, "gorm", s.CacheTTL)
	}

	r := buildRouter(func(r *router.Router) {
		routes.RegisterAPI(r, health,
			routes.Mount{
				Prefix:     "/api/v1/helmet",
				Name:       "helmet.v1",
				Controller: controllers.NewHelmetController(services.NewHelmetService(v1, "sql")),
			},
			routes.Mount{
				Prefix:     "/api/v2/helmet",
				Name:       "helmet.v2",
				Controller: controllers.NewHelmetController(services.NewHelmetService(v2, "gorm")),
			},
		)
	})

	return &Application{stores: s, router: r}, nil
}

// Handler returns the root HTTP handler.
func (a *Application) Handler() http.Handler {
	return a.router.Handler()
}

// Routes lists every mounted route.
func (a *Application) Routes() []router.RouteInfo {
	return a.router.Routes()
}

// Close releases both pools and flushes the log sink.
func (a *Application) Close() error {
	var errs []error
	if a.stores.SQL != nil {
		errs = append(errs, a.stores.SQL.Close())
	}
	errs = append(errs, database.CloseGorm(a.stores.Gorm))
	runClosers(a.closers)
	a.closers = nil
	return errors.Join(errs...)
}

func runClosers(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

// openCache builds the store named by CACHE_DRIVER. No driver means no
// cache and no error.
func openCache(ctx context.Context) (cache.Store, func(), error) {
	switch config.CacheDriver() {
	case "memory":
		return cache.NewMemoryStore(), nil, nil
	case "redis":
		rs, err := cache.Connect(ctx, cache.RedisOptions{
			Addr:     config.RedisAddr(),
			Password: config.RedisPassword(),
			DB:       config.RedisDB(),
		})
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { _ = rs.Close() }, nil
	}
	return nil, nil, nil
}

// attachMongoSink fans log records out to stdout and MongoDB.
func attachMongoSink(ctx context.Context, uri string) (func(), error) {
	level := slog.LevelDebug
	if env := config.AppEnv(); env == "production" || env == "prod" {
		level = slog.LevelInfo
	}

	h, err := logger.NewMongoHandler(ctx, uri, config.LogMongoDB(), config.LogMongoCollection(), level)
	if err != nil {
		return nil, err
	}

	stdout := logger.NewHandler(os.Stdout, config.AppEnv())
	logger.SetHandler(logger.NewMultiHandler(stdout, h))
	return func() {
		logger.SetHandler(stdout)
		h.Close()
	}, nil
}
