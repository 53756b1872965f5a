package models

import (
	"github.com/google/uuid"

	"github.com/erp/sellerops/internal/domain/catalog"
)

// ProductModel is the persistence model for a catalog product
type ProductModel struct {
	BaseModel
	StoreID     *uuid.UUID `gorm:"type:uuid;index"`
	Barcode     string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	Title       string     `gorm:"type:varchar(500)"`
	MerchantSKU string     `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:  m.Entity(),
		StoreID:     m.StoreID,
		Barcode:     m.Barcode,
		Title:       m.Title,
		MerchantSKU: m.MerchantSKU,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		StoreID:     p.StoreID,
		Barcode:     p.Barcode,
		Title:       p.Title,
		MerchantSKU: p.MerchantSKU,
	}
	m.SetEntity(p.BaseEntity)
	return m
}
