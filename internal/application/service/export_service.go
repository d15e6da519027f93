package service

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/medibill/billing-api/internal/domain/entity"
	"github.com/medibill/billing-api/pkg/money"
)

// ExportService renders computed invoices into printable documents.
type ExportService struct{}

// NewExportService creates a new export service
func NewExportService() *ExportService {
	return &ExportService{}
}

// pdfAmount formats an amount for the PDF. The built-in PDF fonts lack the
// rupee glyph, so the symbol is replaced with "Rs." while keeping the
// Indian digit grouping.
func pdfAmount(v float64) string {
	s, err := money.FormatCurrency(v)
	if err != nil {
		return "-"
	}
	return strings.Replace(s, money.Symbol, "Rs.", 1)
}

// RenderPDF renders a computed invoice as an A4 tax-invoice PDF.
func (s *ExportService) RenderPDF(doc *entity.ComputedInvoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	// Title
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, "TAX INVOICE", "B", 1, "C", false, 0, "")
	pdf.Ln(3)

	// Store header
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 7, doc.Store.StoreName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, "Address: "+doc.Store.Address, "", 1, "C", false, 0, "")
	phone := "Phone no: " + doc.Store.Phone
	if doc.Store.AltPhone != "" {
		phone += "  " + doc.Store.AltPhone
	}
	pdf.CellFormat(0, 5, phone, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Party details, invoice metadata
	half := 93.0
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(half, 6, "Party's Name", "B", 0, "L", false, 0, "")
	pdf.CellFormat(half, 6, "", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)

	y := pdf.GetY()
	pdf.CellFormat(half, 5, "Name: "+orBlank(doc.CustomerName), "", 1, "L", false, 0, "")
	pdf.CellFormat(half, 5, "Address: "+orBlank(doc.CustomerAddress), "", 1, "L", false, 0, "")
	pdf.CellFormat(half, 5, "GSTIN No: "+orBlank(doc.CustomerTaxID), "", 1, "L", false, 0, "")

	pdf.SetXY(12+half, y)
	pdf.CellFormat(half, 5, "Invoice No: "+doc.InvoiceNo, "", 2, "R", false, 0, "")
	pdf.CellFormat(half, 5, "Date: "+money.FormatDate(time.Now()), "", 2, "R", false, 0, "")
	if doc.Store.TaxID != "" {
		pdf.CellFormat(half, 5, "Store GSTIN: "+doc.Store.TaxID, "", 2, "R", false, 0, "")
	}
	pdf.SetXY(12, y+18)
	pdf.Ln(4)

	// Items table
	colW := []float64{12, 53, 18, 24, 24, 27, 28}
	headers := []string{"S.No", "Items", "HSN", "Rate", "MRP", "Tax", "Amount"}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	for i, h := range headers {
		pdf.CellFormat(colW[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, item := range doc.Items {
		name := item.Name
		if item.BatchCode != "" {
			name += " (" + item.BatchCode + ")"
		}
		pdf.CellFormat(colW[0], 6, fmt.Sprintf("%d.", item.Serial), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[1], 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[2], 6, item.TaxClassCode, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[3], 6, pdfAmount(item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[4], 6, pdfAmount(item.ListPrice), "1", 0, "R", false, 0, "")
		tax := fmt.Sprintf("%g%% (%s)", doc.TaxRatePercent, pdfAmount(item.TaxAmount))
		pdf.CellFormat(colW[5], 6, tax, "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[6], 6, pdfAmount(item.LineTotal), "1", 1, "R", false, 0, "")

		if item.Description != "" {
			pdf.CellFormat(colW[0], 5, "", "1", 0, "L", false, 0, "")
			pdf.SetFont("Arial", "I", 8)
			pdf.CellFormat(186-colW[0], 5, item.Description, "1", 1, "L", false, 0, "")
			pdf.SetFont("Arial", "", 9)
		}
	}
	pdf.Ln(4)

	// Totals block, right aligned
	labelW, valueW := 146.0, 40.0
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(labelW, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, 6, pdfAmount(doc.Totals.Subtotal), "B", 1, "R", false, 0, "")
	if doc.Totals.TotalDiscount > 0 {
		pdf.CellFormat(labelW, 6, "Discount:", "", 0, "R", false, 0, "")
		pdf.CellFormat(valueW, 6, "-"+pdfAmount(doc.Totals.TotalDiscount), "B", 1, "R", false, 0, "")
	}
	pdf.CellFormat(labelW, 6, fmt.Sprintf("Tax (%g%%):", doc.TaxRatePercent), "", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, 6, pdfAmount(doc.Totals.TaxAmount), "B", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(labelW, 7, "Total:", "", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, 7, pdfAmount(doc.Totals.GrandTotal), "B", 1, "R", false, 0, "")
	pdf.Ln(4)

	// Amount in words
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "Amount in words", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "I", 10)
	pdf.MultiCell(0, 6, doc.AmountInWords, "1", "L", false)
	pdf.Ln(6)

	// Terms and signature
	y = pdf.GetY()
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(half, 6, "Terms and Conditions", "", 2, "L", false, 0, "")
	pdf.SetFont("Arial", "", 8)
	terms := "- Goods once sold will not be taken back\n" +
		"- Subject to Bengaluru jurisdiction\n" +
		"- E. & O.E.\n" +
		"- Please check medicines at the time of purchase"
	pdf.MultiCell(half-4, 4, terms, "1", "L", false)

	pdf.SetXY(12+half, y)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(half, 6, "Seal & Signature", "", 2, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(half, 5, "For "+doc.Store.StoreName+"\n\n____________________\nAuthorized Signatory", "1", "C", false)

	// Footer
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 4, "This is a computer generated invoice", "T", 1, "C", false, 0, "")
	pdf.CellFormat(0, 4, "Generated on: "+time.Now().Format("02/01/2006 15:04:05"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func orBlank(s string) string {
	if s == "" {
		return "____________________"
	}
	return s
}
