package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/medibill/billing-api/internal/domain/entity"
	"github.com/medibill/billing-api/internal/domain/repository"
	"github.com/medibill/billing-api/pkg/apperror"
	"github.com/medibill/billing-api/pkg/pagination"
)

// fakeInvoiceRepo is an in-memory SavedInvoiceRepository for service tests.
type fakeInvoiceRepo struct {
	invoices []entity.SavedInvoice
}

func (r *fakeInvoiceRepo) Create(_ context.Context, invoice *entity.SavedInvoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	r.invoices = append(r.invoices, *invoice)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.SavedInvoice, error) {
	for i := range r.invoices {
		if r.invoices[i].ID == id {
			inv := r.invoices[i]
			return &inv, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) List(_ context.Context, params *repository.SavedInvoiceFilterParams) ([]entity.SavedInvoice, int64, error) {
	var matched []entity.SavedInvoice
	for _, inv := range r.invoices {
		if params.Search != "" &&
			!strings.Contains(strings.ToLower(inv.InvoiceNo), strings.ToLower(params.Search)) &&
			!strings.Contains(strings.ToLower(inv.Customer), strings.ToLower(params.Search)) {
			continue
		}
		matched = append(matched, inv)
	}

	// Newest first
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}

	total := int64(len(matched))
	offset := params.Pagination.Offset()
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + params.Pagination.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.invoices {
		if r.invoices[i].ID == id {
			r.invoices = append(r.invoices[:i], r.invoices[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeProfileRepo is an in-memory StoreProfileRepository.
type fakeProfileRepo struct {
	profile *entity.StoreProfile
}

func (r *fakeProfileRepo) Get(_ context.Context) (*entity.StoreProfile, error) {
	return r.profile, nil
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *entity.StoreProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	r.profile = profile
	return nil
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *entity.StoreProfile) error {
	r.profile = profile
	return nil
}

func newTestInvoiceService() (*InvoiceService, *fakeInvoiceRepo, *fakeProfileRepo) {
	invoiceRepo := &fakeInvoiceRepo{}
	profileRepo := &fakeProfileRepo{}
	return NewInvoiceService(invoiceRepo, profileRepo, "INV"), invoiceRepo, profileRepo
}

func sampleInvoice() *entity.Invoice {
	return &entity.Invoice{
		InvoiceNo:      "INV-001",
		CustomerName:   "Asha Rao",
		TaxRatePercent: 5,
		Items: []entity.LineItem{
			{Name: "Paracetamol", UnitPrice: 100, Quantity: 2, DiscountPercent: 10},
		},
	}
}

func TestInvoiceServicePreview(t *testing.T) {
	svc, _, profileRepo := newTestInvoiceService()
	profileRepo.profile = &entity.StoreProfile{StoreName: "City Pharmacy"}

	doc, err := svc.Preview(context.Background(), sampleInvoice())
	if err != nil {
		t.Fatalf("Preview returned error: %v", err)
	}

	if doc.Store.StoreName != "City Pharmacy" {
		t.Errorf("Store.StoreName = %q, want profile value", doc.Store.StoreName)
	}
	if doc.Totals.GrandTotal != 189.00 {
		t.Errorf("GrandTotal = %v, want 189.00", doc.Totals.GrandTotal)
	}
}

func TestInvoiceServiceCreate(t *testing.T) {
	svc, repo, _ := newTestInvoiceService()

	saved, err := svc.Create(context.Background(), sampleInvoice())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if saved.InvoiceNo != "INV-001" {
		t.Errorf("InvoiceNo = %q, want INV-001", saved.InvoiceNo)
	}
	if saved.Customer != "Asha Rao" {
		t.Errorf("Customer = %q, want Asha Rao", saved.Customer)
	}
	if saved.Total != 18900 {
		t.Errorf("Total = %d paise, want 18900", saved.Total)
	}
	if len(repo.invoices) != 1 {
		t.Fatalf("repository holds %d invoices, want 1", len(repo.invoices))
	}

	doc, err := saved.Document()
	if err != nil {
		t.Fatalf("Document returned error: %v", err)
	}
	if doc.AmountInWords != "One Hundred and Eighty Nine Rupees Only" {
		t.Errorf("payload AmountInWords = %q", doc.AmountInWords)
	}
}

func TestInvoiceServiceCreateGeneratesNumber(t *testing.T) {
	svc, _, _ := newTestInvoiceService()

	inv := sampleInvoice()
	inv.InvoiceNo = ""

	saved, err := svc.Create(context.Background(), inv)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if !strings.HasPrefix(saved.InvoiceNo, "INV-") {
		t.Errorf("generated InvoiceNo = %q, want INV- prefix", saved.InvoiceNo)
	}
	if len(saved.InvoiceNo) != len("INV-")+8 {
		t.Errorf("generated InvoiceNo = %q, want 8-character suffix", saved.InvoiceNo)
	}
	// The caller's invoice stays untouched.
	if inv.InvoiceNo != "" {
		t.Errorf("input invoice number mutated to %q", inv.InvoiceNo)
	}
}

func TestInvoiceServiceGetNotFound(t *testing.T) {
	svc, _, _ := newTestInvoiceService()

	_, err := svc.GetInvoice(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 404 {
		t.Errorf("error code = %d, want 404", appErr.Code)
	}
}

func TestInvoiceServiceListSearch(t *testing.T) {
	svc, _, _ := newTestInvoiceService()
	ctx := context.Background()

	first := sampleInvoice()
	first.InvoiceNo = "INV-100"
	if _, err := svc.Create(ctx, first); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	second := sampleInvoice()
	second.InvoiceNo = "INV-200"
	second.CustomerName = "Ravi Kumar"
	if _, err := svc.Create(ctx, second); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	result, err := svc.ListInvoices(ctx, &repository.SavedInvoiceFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 15},
		Search:     "ravi",
	})
	if err != nil {
		t.Fatalf("ListInvoices returned error: %v", err)
	}

	if result.Pagination.Total != 1 {
		t.Fatalf("Total = %d, want 1", result.Pagination.Total)
	}
	if result.Items[0].InvoiceNo != "INV-200" {
		t.Errorf("matched InvoiceNo = %q, want INV-200", result.Items[0].InvoiceNo)
	}
}

func TestInvoiceServiceListDefaultsPagination(t *testing.T) {
	svc, _, _ := newTestInvoiceService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, sampleInvoice()); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	result, err := svc.ListInvoices(ctx, &repository.SavedInvoiceFilterParams{})
	if err != nil {
		t.Fatalf("ListInvoices returned error: %v", err)
	}

	if result.Pagination.CurrentPage != 1 || result.Pagination.PerPage != 15 {
		t.Errorf("pagination = page %d per_page %d, want defaults 1/15",
			result.Pagination.CurrentPage, result.Pagination.PerPage)
	}
	if result.Pagination.Total != 1 {
		t.Errorf("Total = %d, want 1", result.Pagination.Total)
	}
}

func TestInvoiceServiceDelete(t *testing.T) {
	svc, repo, _ := newTestInvoiceService()
	ctx := context.Background()

	saved, err := svc.Create(ctx, sampleInvoice())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := svc.DeleteInvoice(ctx, saved.ID); err != nil {
		t.Fatalf("DeleteInvoice returned error: %v", err)
	}
	if len(repo.invoices) != 0 {
		t.Errorf("repository holds %d invoices after delete, want 0", len(repo.invoices))
	}

	if err := svc.DeleteInvoice(ctx, saved.ID); err == nil {
		t.Error("deleting an absent invoice should fail")
	}
}

func TestInvoiceServiceExportJSON(t *testing.T) {
	svc, _, _ := newTestInvoiceService()
	ctx := context.Background()

	saved, err := svc.Create(ctx, sampleInvoice())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	data, filename, err := svc.ExportJSON(ctx, saved.ID)
	if err != nil {
		t.Fatalf("ExportJSON returned error: %v", err)
	}

	if filename != "invoice-INV-001.json" {
		t.Errorf("filename = %q, want invoice-INV-001.json", filename)
	}
	body := string(data)
	if !strings.Contains(body, `"generated_at"`) {
		t.Error("export missing generated_at timestamp")
	}
	if !strings.Contains(body, `"invoice_no": "INV-001"`) {
		t.Error("export missing invoice number")
	}
}
