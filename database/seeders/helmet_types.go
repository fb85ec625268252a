package seeders

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/helmet-store/app/models"
)

// HelmetTypes are the categories every store starts with.
var HelmetTypes = []string{"Full Face", "Open Face", "Half Face", "Modular", "Off-Road"}

func init() {
	Register("helmet_types", SeedHelmetTypes)
}

// SeedHelmetTypes inserts the missing standard types. Running it twice is
// a no-op.
func SeedHelmetTypes(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, name := range HelmetTypes {
			t := models.HelmetType{Name: name}
			if err := tx.Where(models.HelmetType{Name: name}).FirstOrCreate(&t).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
