// Package repositories contains the two storage adapters of the helmet
// store. Both satisfy HelmetRepository so the service layer never knows
// which one it talks to.
package repositories

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/helmet-store/app/models"
	"github.com/shashiranjanraj/helmet-store/config"
	"github.com/shashiranjanraj/helmet-store/pkg/logger"
	"github.com/shashiranjanraj/helmet-store/pkg/metrics"
)

// HelmetRepository is the storage contract of the helmet store.
//
// EditHelmet and DeleteHelmet report false when no row has the id; that is
// not an error. Storage faults are returned unchanged.
type HelmetRepository interface {
	ListHelmets(ctx context.Context) ([]models.Helmet, error)
	ListTypes(ctx context.Context) ([]models.HelmetType, error)
	AddHelmet(ctx context.Context, typeID uint, name string, price decimal.Decimal, stock int) error
	EditHelmet(ctx context.Context, id uint, price decimal.Decimal, stock int) (bool, error)
	DeleteHelmet(ctx context.Context, id uint) (bool, error)
}

// Operation names used in logs and metrics.
const (
	opListHelmets  = "listHelmets"
	opListTypes    = "listHelmetTypes"
	opAddHelmet    = "addHelmet"
	opEditHelmet   = "editHelmet"
	opDeleteHelmet = "deleteHelmet"
)

// Tables names the two tables the adapters read and write.
type Tables struct {
	Helmet string
	Type   string
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// TablesFromConfig reads HELMET_TABLE and HELMET_TYPE_TABLE.
func TablesFromConfig() Tables {
	return Tables{Helmet: config.HelmetTable(), Type: config.HelmetTypeTable()}
}

// Validate rejects names that are not plain SQL identifiers; they are
// interpolated into statements.
func (t Tables) Validate() error {
	for _, name := range []string{t.Helmet, t.Type} {
		if !identRe.MatchString(name) {
			return fmt.Errorf("repositories: invalid table name %q", name)
		}
	}
	return nil
}

// detach keeps request values (logger, ids) but drops cancellation, so a
// client that hangs up does not abort a statement already in flight.
func detach(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return context.WithoutCancel(ctx)
}

// observe logs and records one adapter call. Use it deferred with a named
// error result.
func observe(ctx context.Context, backend, op string, start time.Time, errp *error) {
	metrics.ObserveDBQuery(backend, op, start, errp)

	log := logger.WithCtx(ctx)
	attrs := []any{"backend", backend, "op", op, "took_ms", time.Since(start).Milliseconds()}
	if errp != nil && *errp != nil {
		log.Error("storage operation failed", append(attrs, "error", (*errp).Error())...)
		return
	}
	log.Info("storage operation", attrs...)
}
