package models

import (
	"github.com/shashiranjanraj/helmet-store/config"
	"github.com/shopspring/decimal"
)

func init() {
	// Prices render as JSON numbers, matching what clients send.
	decimal.MarshalJSONWithoutQuotes = true
}

// HelmetType is a helmet category. It is read-only through the API.
type HelmetType struct {
	ID   uint   `gorm:"primaryKey"               json:"id"`
	Name string `gorm:"size:255;not null;unique" json:"name"`
}

func (HelmetType) TableName() string { return config.HelmetTypeTable() }

// Helmet is a stocked helmet. Name and TypeID are fixed at creation; only
// Price and Stock change afterwards.
type Helmet struct {
	ID     uint            `gorm:"primaryKey"                                       json:"id"`
	TypeID uint            `gorm:"column:type_id;not null;index"                    json:"type_id"`
	Type   HelmetType      `gorm:"foreignKey:TypeID;constraint:OnDelete:RESTRICT"   json:"type"`
	Name   string          `gorm:"size:255;not null"                                json:"name"`
	Price  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"            json:"price"`
	Stock  int             `gorm:"not null;default:0"                               json:"stock"`
}

func (Helmet) TableName() string { return config.HelmetTable() }

// HelmetListing is the list projection of a Helmet: the type is collapsed to
// its display name.
type HelmetListing struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
	Type  string          `json:"type"`
}

// Listing projects h for list responses.
func (h Helmet) Listing() HelmetListing {
	return HelmetListing{
		ID:    h.ID,
		Name:  h.Name,
		Price: h.Price,
		Stock: h.Stock,
		Type:  h.Type.Name,
	}
}
