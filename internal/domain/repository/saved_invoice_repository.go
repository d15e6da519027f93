package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/medibill/billing-api/internal/domain/entity"
	"github.com/medibill/billing-api/pkg/pagination"
)

// SavedInvoiceFilterParams holds filters for listing saved invoices
type SavedInvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string // matches invoice number or customer name
}

// SavedInvoiceRepository defines the interface for saved invoice data access
type SavedInvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.SavedInvoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SavedInvoice, error)
	// List returns saved invoices newest first.
	List(ctx context.Context, params *SavedInvoiceFilterParams) ([]entity.SavedInvoice, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
