package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/medibill/billing-api/internal/domain/entity"
	"github.com/medibill/billing-api/internal/domain/repository"
	"github.com/medibill/billing-api/pkg/pagination"
	"gorm.io/gorm"
)

type savedInvoiceRepository struct {
	db *gorm.DB
}

// NewSavedInvoiceRepository creates a new saved invoice repository
func NewSavedInvoiceRepository(db *gorm.DB) repository.SavedInvoiceRepository {
	return &savedInvoiceRepository{db: db}
}

// Create persists a new saved invoice
func (r *savedInvoiceRepository) Create(ctx context.Context, invoice *entity.SavedInvoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

// GetByID retrieves a saved invoice by ID
func (r *savedInvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SavedInvoice, error) {
	var invoice entity.SavedInvoice
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&invoice).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

// List retrieves saved invoices newest first, with optional search
func (r *savedInvoiceRepository) List(ctx context.Context, params *repository.SavedInvoiceFilterParams) ([]entity.SavedInvoice, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.SavedInvoice{})

	if params.Search != "" {
		search := "%" + params.Search + "%"
		query = query.Where("invoice_no ILIKE ? OR customer ILIKE ?", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pag := params.Pagination
	if pag == nil {
		pag = pagination.DefaultPagination()
	}
	pag.Validate()

	var invoices []entity.SavedInvoice
	err := query.
		Order("saved_at DESC").
		Offset(pag.Offset()).
		Limit(pag.PerPage).
		Find(&invoices).Error
	if err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

// Delete soft-deletes a saved invoice
func (r *savedInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.SavedInvoice{}, "id = ?", id).Error
}
