package entity

import "github.com/medibill/billing-api/internal/domain/enum"

// LineItem is one purchasable unit entry on an invoice, as supplied by the
// caller. Values are immutable once constructed; defaults for the optional
// fields are applied during assembly, never written back here.
type LineItem struct {
	Name            string  `json:"name"`
	BatchCode       string  `json:"batch_code,omitempty"`
	Category        string  `json:"category,omitempty"`
	Description     string  `json:"description,omitempty"`
	UnitPrice       float64 `json:"unit_price"`
	Quantity        int     `json:"quantity"`
	DiscountPercent float64 `json:"discount_percent"`
	TaxClassCode    string  `json:"tax_class_code,omitempty"` // HSN code; defaults to "3004"
	ListPrice       float64 `json:"list_price,omitempty"`     // MRP; defaults to unit price x 1.2
}

// Invoice is the caller-supplied input for one invoice-generation request.
// It is read-only to the billing core, which derives a ComputedInvoice from
// it instead of mutating it in place.
type Invoice struct {
	InvoiceNo       string             `json:"invoice_no"`
	CustomerName    string             `json:"customer_name,omitempty"`
	CustomerAddress string             `json:"customer_address,omitempty"`
	CustomerTaxID   string             `json:"customer_tax_id,omitempty"`
	CustomerPhone   string             `json:"customer_phone,omitempty"`
	PaymentMethod   enum.PaymentMethod `json:"payment_method"`
	TaxRatePercent  float64            `json:"tax_rate_percent"`
	Items           []LineItem         `json:"items"` // display order, significant
}
