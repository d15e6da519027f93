// Package billing is the invoice computation core: pure functions that turn
// a caller-supplied invoice and a store profile into a fully computed,
// render-ready document. It holds no state, performs no I/O and never
// mutates its inputs, so concurrent invocations need no coordination.
package billing

import (
	"fmt"
	"math"
	"strings"

	"github.com/medibill/billing-api/internal/domain/entity"
	"github.com/medibill/billing-api/pkg/apperror"
	"github.com/medibill/billing-api/pkg/money"
	"github.com/medibill/billing-api/pkg/numwords"
)

// Fixed fallbacks applied once during assembly for any missing optional
// field. They match the store header the documents have always carried.
const (
	DefaultStoreName    = "MEDICAL STORE"
	DefaultStoreAddress = "Church Street Bengaluru"
	DefaultStorePhone   = "+91-1075314648"
	DefaultStoreAlt     = "+91-8029924749"
	DefaultManagerName  = "Store Manager"

	// DefaultTaxClassCode is the HSN code assumed for medicine line items.
	DefaultTaxClassCode = "3004"

	// listPriceMarkup derives a list price (MRP) when none is supplied.
	listPriceMarkup = 1.2
)

// Aggregate computes the invoice totals over the item collection.
//
// Per item: gross = unit price x quantity, discount = gross x discount%,
// net = gross - discount. The four aggregates are summed first and rounded
// to two fraction digits once at the end, so per-line rounding drift cannot
// accumulate. An empty item slice yields all-zero totals.
func Aggregate(items []entity.LineItem, taxRatePercent float64) (entity.ComputedTotals, error) {
	if err := validateRate(taxRatePercent); err != nil {
		return entity.ComputedTotals{}, err
	}

	var subtotal, totalDiscount float64
	for i, item := range items {
		if err := validateLineItem(i, &item); err != nil {
			return entity.ComputedTotals{}, err
		}

		gross := item.UnitPrice * float64(item.Quantity)
		discount := gross * item.DiscountPercent / 100
		subtotal += gross - discount
		totalDiscount += discount
	}

	taxAmount := subtotal * taxRatePercent / 100

	return entity.ComputedTotals{
		Subtotal:      money.Round2(subtotal),
		TotalDiscount: money.Round2(totalDiscount),
		TaxAmount:     money.Round2(taxAmount),
		GrandTotal:    money.Round2(subtotal + taxAmount),
	}, nil
}

// Assemble merges the invoice with the store profile, applies the documented
// defaults to missing optional fields, aggregates the totals and spells out
// the grand total. The result is a fresh value; the inputs stay untouched.
//
// Each returned line item also carries its display tax (net x rate, rounded
// per line) and line total. These are presentational figures computed
// independently of the aggregate tax and are not summed into the totals.
func Assemble(inv *entity.Invoice, store *entity.StoreProfile) (*entity.ComputedInvoice, error) {
	if strings.TrimSpace(inv.InvoiceNo) == "" {
		return nil, apperror.ErrMissingInvoiceNo
	}

	totals, err := Aggregate(inv.Items, inv.TaxRatePercent)
	if err != nil {
		return nil, err
	}

	words, err := numwords.ToWords(totals.GrandTotal)
	if err != nil {
		return nil, err
	}

	items := make([]entity.ComputedLineItem, 0, len(inv.Items))
	for i, item := range inv.Items {
		items = append(items, computeLine(i, &item, inv.TaxRatePercent))
	}

	return &entity.ComputedInvoice{
		InvoiceNo:       inv.InvoiceNo,
		CustomerName:    inv.CustomerName,
		CustomerAddress: inv.CustomerAddress,
		CustomerTaxID:   inv.CustomerTaxID,
		CustomerPhone:   inv.CustomerPhone,
		PaymentMethod:   inv.PaymentMethod,
		TaxRatePercent:  inv.TaxRatePercent,
		Store:           storeSnapshot(store),
		Items:           items,
		Totals:          totals,
		AmountInWords:   words,
	}, nil
}

func computeLine(index int, item *entity.LineItem, taxRatePercent float64) entity.ComputedLineItem {
	gross := item.UnitPrice * float64(item.Quantity)
	net := gross - gross*item.DiscountPercent/100

	taxClass := item.TaxClassCode
	if taxClass == "" {
		taxClass = DefaultTaxClassCode
	}

	listPrice := item.ListPrice
	if listPrice == 0 {
		listPrice = item.UnitPrice * listPriceMarkup
	}

	description := item.Description
	if description == "" && item.Category != "" {
		description = item.Category + " Medicine"
	}

	return entity.ComputedLineItem{
		Serial:          index + 1,
		Name:            item.Name,
		BatchCode:       item.BatchCode,
		Description:     description,
		TaxClassCode:    taxClass,
		UnitPrice:       item.UnitPrice,
		ListPrice:       money.Round2(listPrice),
		Quantity:        item.Quantity,
		DiscountPercent: item.DiscountPercent,
		NetAmount:       money.Round2(net),
		TaxAmount:       money.Round2(net * taxRatePercent / 100),
		LineTotal:       money.Round2(net * (1 + taxRatePercent/100)),
	}
}

func storeSnapshot(store *entity.StoreProfile) entity.StoreInfo {
	var info entity.StoreInfo
	if store != nil {
		info = store.Snapshot()
	}
	if info.StoreName == "" {
		info.StoreName = DefaultStoreName
	}
	if info.Address == "" {
		info.Address = DefaultStoreAddress
	}
	if info.Phone == "" {
		info.Phone = DefaultStorePhone
	}
	if info.AltPhone == "" {
		info.AltPhone = DefaultStoreAlt
	}
	if info.ManagerName == "" {
		info.ManagerName = DefaultManagerName
	}
	return info
}

func validateLineItem(index int, item *entity.LineItem) error {
	field := func(name string) string {
		return fmt.Sprintf("items[%d].%s", index, name)
	}

	switch {
	case math.IsNaN(item.UnitPrice) || math.IsInf(item.UnitPrice, 0):
		return apperror.NewInvalidLineItemError(field("unit_price"), "must be a finite number")
	case item.UnitPrice < 0:
		return apperror.NewInvalidLineItemError(field("unit_price"), "must not be negative")
	case item.Quantity < 0:
		return apperror.NewInvalidLineItemError(field("quantity"), "must not be negative")
	case math.IsNaN(item.DiscountPercent) || item.DiscountPercent < 0 || item.DiscountPercent > 100:
		return apperror.NewInvalidLineItemError(field("discount_percent"), "must be between 0 and 100")
	case math.IsNaN(item.ListPrice) || math.IsInf(item.ListPrice, 0) || item.ListPrice < 0:
		return apperror.NewInvalidLineItemError(field("list_price"), "must be a finite, non-negative number")
	}
	return nil
}

func validateRate(taxRatePercent float64) error {
	if math.IsNaN(taxRatePercent) || math.IsInf(taxRatePercent, 0) || taxRatePercent < 0 {
		return apperror.ErrInvalidAmount
	}
	return nil
}
