package integration

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/erp/sellerops/internal/domain/shared"
)

// Credentials are the per-store marketplace API credentials
type Credentials struct {
	SellerID  string
	APIKey    string
	APISecret string
}

// IsComplete reports whether seller id, key and secret are all present
func (c Credentials) IsComplete() bool {
	return strings.TrimSpace(c.SellerID) != "" &&
		strings.TrimSpace(c.APIKey) != "" &&
		strings.TrimSpace(c.APISecret) != ""
}

// Store is a seller account on the marketplace
type Store struct {
	shared.BaseEntity
	Name        string
	Credentials Credentials
	ProxyURL    string
	IsActive    bool
}

// NewStore creates an active store. Credentials may be incomplete; such a
// store is kept but skipped by order sync.
func NewStore(name string, creds Credentials) (*Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("store name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("store name cannot exceed 200 characters")
	}
	return &Store{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Credentials: creds,
		IsActive:    true,
	}, nil
}

// IsSyncEligible reports whether the store takes part in order sync:
// it must be active and carry complete credentials.
func (s *Store) IsSyncEligible() bool {
	return s.IsActive && s.Credentials.IsComplete()
}

// HasProxy reports whether requests for this store go through a proxy
func (s *Store) HasProxy() bool {
	return strings.TrimSpace(s.ProxyURL) != ""
}

// StoreRepository provides read access to stores
type StoreRepository interface {
	// FindByID finds a store by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)

	// FindActive returns all active stores, ordered by name
	FindActive(ctx context.Context) ([]Store, error)

	// Save creates or updates a store
	Save(ctx context.Context, store *Store) error
}
