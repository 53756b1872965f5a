// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns; repositories convert at the boundary.
//
// Structure:
// - base.go: shared columns (BaseModel, AggregateModel)
// - integration.go: marketplace stores
// - catalog.go: products, read by the existence gate
// - trade.go: orders and order lines
// - fulfillment.go: routes and their order links
package models
