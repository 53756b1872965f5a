package models

import (
	"github.com/erp/sellerops/internal/domain/integration"
)

// StoreModel is the persistence model for a marketplace store
type StoreModel struct {
	BaseModel
	Name      string `gorm:"type:varchar(200);not null"`
	SellerID  string `gorm:"type:varchar(50);not null;index"`
	APIKey    string `gorm:"type:varchar(200)"`
	APISecret string `gorm:"type:varchar(200)"`
	ProxyURL  string `gorm:"type:varchar(500)"`
	IsActive  bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (StoreModel) TableName() string {
	return "stores"
}

// ToDomain converts the persistence model to a domain Store
func (m *StoreModel) ToDomain() *integration.Store {
	return &integration.Store{
		BaseEntity: m.Entity(),
		Name:       m.Name,
		Credentials: integration.Credentials{
			SellerID:  m.SellerID,
			APIKey:    m.APIKey,
			APISecret: m.APISecret,
		},
		ProxyURL: m.ProxyURL,
		IsActive: m.IsActive,
	}
}

// StoreModelFromDomain creates a persistence model from a domain Store
func StoreModelFromDomain(s *integration.Store) *StoreModel {
	m := &StoreModel{
		Name:      s.Name,
		SellerID:  s.Credentials.SellerID,
		APIKey:    s.Credentials.APIKey,
		APISecret: s.Credentials.APISecret,
		ProxyURL:  s.ProxyURL,
		IsActive:  s.IsActive,
	}
	m.SetEntity(s.BaseEntity)
	return m
}
