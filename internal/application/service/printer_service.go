package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/medibill/billing-api/internal/domain/billing"
	"github.com/medibill/billing-api/internal/domain/entity"
	"github.com/medibill/billing-api/internal/domain/repository"
	"github.com/medibill/billing-api/pkg/apperror"
	"github.com/medibill/billing-api/pkg/money"
	"github.com/medibill/billing-api/pkg/printer"
)

// PrinterService formats computed invoices as ESC/POS receipts and sends
// them to the configured thermal printer.
type PrinterService struct {
	printer     printer.Printer
	invoiceRepo repository.SavedInvoiceRepository
	printerType string
	width       int
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	p printer.Printer,
	invoiceRepo repository.SavedInvoiceRepository,
	printerType string,
	width int,
) *PrinterService {
	if width <= 0 {
		width = 32
	}
	return &PrinterService{
		printer:     p,
		invoiceRepo: invoiceRepo,
		printerType: printerType,
		width:       width,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a sample invoice to the printer. The document is returned
// so the handler can show it as JSON when no printer is configured.
func (s *PrinterService) TestPrint() (*entity.ComputedInvoice, error) {
	inv := &entity.Invoice{
		InvoiceNo:      "TEST-001",
		CustomerName:   "Test Customer",
		TaxRatePercent: 5,
		Items: []entity.LineItem{
			{Name: "Test Item 1", UnitPrice: 10, Quantity: 1},
			{Name: "Test Item 2", UnitPrice: 5, Quantity: 2},
		},
	}

	doc, err := billing.Assemble(inv, nil)
	if err != nil {
		return nil, err
	}

	if err := s.printer.Print(FormatInvoice(doc, s.width)); err != nil {
		return doc, fmt.Errorf("test print failed: %w", err)
	}
	return doc, nil
}

// PrintInvoice prints a saved invoice on the thermal printer.
func (s *PrinterService) PrintInvoice(ctx context.Context, id uuid.UUID) (*entity.ComputedInvoice, error) {
	saved, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	doc, err := saved.Document()
	if err != nil {
		return nil, fmt.Errorf("failed to decode invoice payload: %w", err)
	}

	if err := s.printer.Print(FormatInvoice(doc, s.width)); err != nil {
		return doc, fmt.Errorf("print failed: %w", err)
	}
	return doc, nil
}

// receiptAmount renders an amount for the fixed-width receipt, falling back
// to a dash for values the formatter rejects.
func receiptAmount(v float64) string {
	s, err := money.FormatCurrency(v)
	if err != nil {
		return "-"
	}
	return s
}

// FormatInvoice builds the ESC/POS byte stream for a computed invoice.
func FormatInvoice(doc *entity.ComputedInvoice, width int) []byte {
	d := printer.NewDocument(width)

	d.SetAlign(printer.AlignCenter)
	d.SetFontSize(printer.FontDouble)
	d.Text(doc.Store.StoreName)
	d.SetFontSize(printer.FontNormal)
	d.Text(doc.Store.Address)
	d.Text(doc.Store.Phone)
	d.Separator('=')

	d.SetAlign(printer.AlignLeft)
	d.KeyValue("Invoice", doc.InvoiceNo)
	d.KeyValue("Date", money.FormatDate(time.Now()))
	if doc.CustomerName != "" {
		d.KeyValue("Customer", doc.CustomerName)
	}
	d.KeyValue("Payment", doc.PaymentMethod.String())
	d.Separator('-')

	for _, item := range doc.Items {
		d.TextF("%dx %s", item.Quantity, item.Name)
		detail := receiptAmount(item.UnitPrice)
		if item.DiscountPercent > 0 {
			detail += fmt.Sprintf(" -%g%%", item.DiscountPercent)
		}
		d.KeyValue("  "+detail, receiptAmount(item.NetAmount))
	}
	d.Separator('-')

	d.KeyValue("Subtotal", receiptAmount(doc.Totals.Subtotal))
	if doc.Totals.TotalDiscount > 0 {
		d.KeyValue("Discount", "-"+receiptAmount(doc.Totals.TotalDiscount))
	}
	d.KeyValue(fmt.Sprintf("Tax (%g%%)", doc.TaxRatePercent), receiptAmount(doc.Totals.TaxAmount))
	d.SetBold(true)
	d.KeyValue("TOTAL", receiptAmount(doc.Totals.GrandTotal))
	d.SetBold(false)
	d.Separator('-')

	d.SetAlign(printer.AlignCenter)
	d.Text(doc.AmountInWords)
	d.FeedLines(1)
	d.Text("Thank you!")
	d.FeedLines(3)
	d.Cut()

	return d.Bytes()
}
