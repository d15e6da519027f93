package repository

import (
	"context"

	"github.com/medibill/billing-api/internal/domain/entity"
)

// StoreProfileRepository defines the interface for store profile data access.
// The application keeps a single profile row.
type StoreProfileRepository interface {
	Get(ctx context.Context) (*entity.StoreProfile, error)
	Create(ctx context.Context, profile *entity.StoreProfile) error
	Update(ctx context.Context, profile *entity.StoreProfile) error
}
