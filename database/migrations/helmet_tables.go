package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/helmet-store/app/models"
	"github.com/shashiranjanraj/helmet-store/pkg/migration"
)

func init() {
	migration.Register("20240301000000_create_type_table", &CreateTypeTable{})
	migration.Register("20240301000001_create_helmets_table", &CreateHelmetsTable{})
}

// -------- 0001: type --------

type CreateTypeTable struct{}

func (m *CreateTypeTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.HelmetType{})
}

func (m *CreateTypeTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.HelmetType{})
}

// -------- 0002: helmets --------

// CreateHelmetsTable depends on the type table for its foreign key.
type CreateHelmetsTable struct{}

func (m *CreateHelmetsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Helmet{})
}

func (m *CreateHelmetsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Helmet{})
}
