package entity

import "github.com/medibill/billing-api/internal/domain/enum"

// ComputedTotals holds the aggregate figures for one invoice, each rounded
// to two fraction digits after summation (not per line).
type ComputedTotals struct {
	Subtotal      float64 `json:"subtotal"`
	TotalDiscount float64 `json:"total_discount"`
	TaxAmount     float64 `json:"tax_amount"`
	GrandTotal    float64 `json:"grand_total"`
}

// ComputedLineItem is a line item enriched with the display figures shown on
// the printed document.
//
// TaxAmount and LineTotal here are presentational: TaxAmount is the line's
// net amount times the tax rate, rounded per line. The authoritative tax is
// ComputedTotals.TaxAmount, computed once over the subtotal; with per-line
// discounts the two reconcile only approximately.
type ComputedLineItem struct {
	Serial          int     `json:"serial"`
	Name            string  `json:"name"`
	BatchCode       string  `json:"batch_code,omitempty"`
	Description     string  `json:"description,omitempty"`
	TaxClassCode    string  `json:"tax_class_code"`
	UnitPrice       float64 `json:"unit_price"`
	ListPrice       float64 `json:"list_price"`
	Quantity        int     `json:"quantity"`
	DiscountPercent float64 `json:"discount_percent"`
	NetAmount       float64 `json:"net_amount"`
	TaxAmount       float64 `json:"tax_amount"`
	LineTotal       float64 `json:"line_total"`
}

// StoreInfo is the snapshot of the store profile embedded in a computed
// invoice, so the document stays stable even if the profile changes later.
type StoreInfo struct {
	StoreName   string `json:"store_name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	AltPhone    string `json:"alt_phone,omitempty"`
	TaxID       string `json:"tax_id,omitempty"`
	ManagerName string `json:"manager_name"`
}

// ComputedInvoice is the finalized invoice record: input fields with
// defaults applied, the store snapshot, computed totals and the spelled-out
// grand total. It is a plain serializable value, safe to hand to export,
// print or persistence collaborators.
type ComputedInvoice struct {
	InvoiceNo       string             `json:"invoice_no"`
	CustomerName    string             `json:"customer_name,omitempty"`
	CustomerAddress string             `json:"customer_address,omitempty"`
	CustomerTaxID   string             `json:"customer_tax_id,omitempty"`
	CustomerPhone   string             `json:"customer_phone,omitempty"`
	PaymentMethod   enum.PaymentMethod `json:"payment_method"`
	TaxRatePercent  float64            `json:"tax_rate_percent"`
	Store           StoreInfo          `json:"store_info"`
	Items           []ComputedLineItem `json:"items"`
	Totals          ComputedTotals     `json:"totals"`
	AmountInWords   string             `json:"amount_in_words"`
}
