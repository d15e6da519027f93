package request

import (
	"github.com/medibill/billing-api/internal/domain/entity"
	"github.com/medibill/billing-api/internal/domain/enum"
)

// LineItemRequest is one line item in an invoice request. Range checks on
// price, quantity and discount are performed by the billing core so that
// out-of-range values produce its field-level errors, not binding errors.
type LineItemRequest struct {
	Name            string  `json:"name" binding:"required"`
	BatchCode       string  `json:"batch_code"`
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	UnitPrice       float64 `json:"unit_price"`
	Quantity        int     `json:"quantity"`
	DiscountPercent float64 `json:"discount_percent"`
	TaxClassCode    string  `json:"tax_class_code"`
	ListPrice       float64 `json:"list_price"`
}

// InvoiceRequest is the payload for computing or saving an invoice.
type InvoiceRequest struct {
	InvoiceNo       string            `json:"invoice_no"`
	CustomerName    string            `json:"customer_name"`
	CustomerAddress string            `json:"customer_address"`
	CustomerTaxID   string            `json:"customer_tax_id"`
	CustomerPhone   string            `json:"customer_phone"`
	PaymentMethod   string            `json:"payment_method"`
	TaxRatePercent  float64           `json:"tax_rate_percent"`
	Items           []LineItemRequest `json:"items" binding:"required"`
}

// ToEntity converts the request into the read-only invoice value consumed
// by the billing core.
func (r *InvoiceRequest) ToEntity() *entity.Invoice {
	items := make([]entity.LineItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, entity.LineItem{
			Name:            item.Name,
			BatchCode:       item.BatchCode,
			Category:        item.Category,
			Description:     item.Description,
			UnitPrice:       item.UnitPrice,
			Quantity:        item.Quantity,
			DiscountPercent: item.DiscountPercent,
			TaxClassCode:    item.TaxClassCode,
			ListPrice:       item.ListPrice,
		})
	}

	return &entity.Invoice{
		InvoiceNo:       r.InvoiceNo,
		CustomerName:    r.CustomerName,
		CustomerAddress: r.CustomerAddress,
		CustomerTaxID:   r.CustomerTaxID,
		CustomerPhone:   r.CustomerPhone,
		PaymentMethod:   enum.ParsePaymentMethod(r.PaymentMethod),
		TaxRatePercent:  r.TaxRatePercent,
		Items:           items,
	}
}
