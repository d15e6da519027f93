package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/medibill/billing-api/internal/domain/billing"
	"github.com/medibill/billing-api/internal/domain/entity"
	"github.com/medibill/billing-api/internal/domain/repository"
	"github.com/medibill/billing-api/pkg/apperror"
	"github.com/medibill/billing-api/pkg/pagination"
	"github.com/medibill/billing-api/pkg/utils"
)

// InvoiceService computes invoices and manages the saved-invoice list.
// The computation itself lives in the billing package; this service wires
// it to the store profile and the repositories.
type InvoiceService struct {
	invoiceRepo   repository.SavedInvoiceRepository
	profileRepo   repository.StoreProfileRepository
	invoicePrefix string
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.SavedInvoiceRepository,
	profileRepo repository.StoreProfileRepository,
	invoicePrefix string,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:   invoiceRepo,
		profileRepo:   profileRepo,
		invoicePrefix: invoicePrefix,
	}
}

// Preview computes an invoice without persisting it. The invoice number
// must be supplied by the caller.
func (s *InvoiceService) Preview(ctx context.Context, inv *entity.Invoice) (*entity.ComputedInvoice, error) {
	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return billing.Assemble(inv, profile)
}

// Create computes an invoice and appends it to the saved list. A missing
// invoice number is generated here, before the core ever sees the input.
func (s *InvoiceService) Create(ctx context.Context, inv *entity.Invoice) (*entity.SavedInvoice, error) {
	if inv.InvoiceNo == "" {
		numbered := *inv
		numbered.InvoiceNo = utils.GenerateInvoiceNo(s.invoicePrefix)
		inv = &numbered
	}

	doc, err := s.Preview(ctx, inv)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode invoice payload: %w", err)
	}

	saved := &entity.SavedInvoice{
		InvoiceNo: doc.InvoiceNo,
		Customer:  doc.CustomerName,
		Total:     int64(math.Round(doc.Totals.GrandTotal * 100)),
		Payload:   payload,
		SavedAt:   time.Now(),
	}
	if err := s.invoiceRepo.Create(ctx, saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// GetInvoice retrieves a saved invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.SavedInvoice, error) {
	saved, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return saved, nil
}

// GetDocument retrieves the computed document of a saved invoice
func (s *InvoiceService) GetDocument(ctx context.Context, id uuid.UUID) (*entity.ComputedInvoice, error) {
	saved, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	doc, err := saved.Document()
	if err != nil {
		return nil, fmt.Errorf("failed to decode invoice payload: %w", err)
	}
	return doc, nil
}

// ListInvoices lists saved invoices newest first
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.SavedInvoiceFilterParams) (*pagination.PaginatedResult[entity.SavedInvoice], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// DeleteInvoice removes a saved invoice from the list
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetInvoice(ctx, id); err != nil {
		return err
	}
	return s.invoiceRepo.Delete(ctx, id)
}

// exportEnvelope is the downloadable form of a computed invoice. The
// timestamp is applied here, at the export boundary, so the computation
// itself stays clock-free.
type exportEnvelope struct {
	*entity.ComputedInvoice
	GeneratedAt string `json:"generated_at"`
}

// ExportJSON renders a saved invoice as a downloadable JSON document and
// returns the bytes together with the suggested filename.
func (s *InvoiceService) ExportJSON(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return nil, "", err
	}

	data, err := json.MarshalIndent(exportEnvelope{
		ComputedInvoice: doc,
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode invoice export: %w", err)
	}

	return data, fmt.Sprintf("invoice-%s.json", doc.InvoiceNo), nil
}
