package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/helmet-store/app/models"
	"github.com/shashiranjanraj/helmet-store/pkg/logger"
)

const backendGorm = "gorm"

// GormHelmetRepository is the ORM adapter. Listing preloads each helmet's
// type; projecting it to a name is left to the caller.
type GormHelmetRepository struct {
	db *gorm.DB
}

func NewGormHelmetRepository(db *gorm.DB) *GormHelmetRepository {
	return &GormHelmetRepository{db: db}
}

func (r *GormHelmetRepository) ListHelmets(ctx context.Context) (_ []models.Helmet, err error) {
	ctx = detach(ctx)
	defer observe(ctx, backendGorm, opListHelmets, time.Now(), &err)

	var helmets []models.Helmet
	err = r.db.WithContext(ctx).Preload("Type").Order("id").Find(&helmets).Error
	return helmets, err
}

func (r *GormHelmetRepository) ListTypes(ctx context.Context) (_ []models.HelmetType, err error) {
	ctx = detach(ctx)
	defer observe(ctx, backendGorm, opListTypes, time.Now(), &err)

	var types []models.HelmetType
	err = r.db.WithContext(ctx).Order("id").Find(&types).Error
	return types, err
}

func (r *GormHelmetRepository) AddHelmet(ctx context.Context, typeID uint, name string, price decimal.Decimal, stock int) (err error) {
	ctx = detach(ctx)
	defer observe(ctx, backendGorm, opAddHelmet, time.Now(), &err)

	h := models.Helmet{TypeID: typeID, Name: name, Price: price, Stock: stock}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&h).Error
}

// EditHelmet loads the row first so an unchanged update still counts as a
// hit on every dialect.
func (r *GormHelmetRepository) EditHelmet(ctx context.Context, id uint, price decimal.Decimal, stock int) (_ bool, err error) {
	ctx = detach(ctx)
	defer observe(ctx, backendGorm, opEditHelmet, time.Now(), &err)

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var h models.Helmet
		if err := tx.First(&h, id).Error; err != nil {
			return err
		}
		return tx.Model(&h).Omit(clause.Associations).Updates(map[string]any{
			"price": price,
			"stock": stock,
		}).Error
	})
	return r.found(ctx, opEditHelmet, id, err)
}

func (r *GormHelmetRepository) DeleteHelmet(ctx context.Context, id uint) (_ bool, err error) {
	ctx = detach(ctx)
	defer observe(ctx, backendGorm, opDeleteHelmet, time.Now(), &err)

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var h models.Helmet
		if err := tx.First(&h, id).Error; err != nil {
			return err
		}
		return tx.Delete(&h).Error
	})
	return r.found(ctx, opDeleteHelmet, id, err)
}

// found turns gorm.ErrRecordNotFound into a miss.
func (r *GormHelmetRepository) found(ctx context.Context, op string, id uint, err error) (bool, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.WithCtx(ctx).Warn("helmet not found", "backend", backendGorm, "op", op, "id", id)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Ping checks the pool. Used by /healthz.
func (r *GormHelmetRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
