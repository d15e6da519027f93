package billing

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/medibill/billing-api/internal/domain/entity"
	"github.com/medibill/billing-api/pkg/apperror"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAggregate(t *testing.T) {
	items := []entity.LineItem{
		{Name: "Paracetamol", UnitPrice: 100, Quantity: 2, DiscountPercent: 10},
	}

	totals, err := Aggregate(items, 5)
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}

	if !almostEqual(totals.Subtotal, 180.00) {
		t.Errorf("Subtotal = %v, want 180.00", totals.Subtotal)
	}
	if !almostEqual(totals.TotalDiscount, 20.00) {
		t.Errorf("TotalDiscount = %v, want 20.00", totals.TotalDiscount)
	}
	if !almostEqual(totals.TaxAmount, 9.00) {
		t.Errorf("TaxAmount = %v, want 9.00", totals.TaxAmount)
	}
	if !almostEqual(totals.GrandTotal, 189.00) {
		t.Errorf("GrandTotal = %v, want 189.00", totals.GrandTotal)
	}
}

func TestAggregateEmptyItems(t *testing.T) {
	totals, err := Aggregate(nil, 12)
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	if totals.Subtotal != 0 || totals.TotalDiscount != 0 || totals.TaxAmount != 0 || totals.GrandTotal != 0 {
		t.Errorf("empty item list should yield all-zero totals, got %+v", totals)
	}
}

func TestAggregateInvalidLineItems(t *testing.T) {
	tests := []struct {
		name string
		item entity.LineItem
	}{
		{"negative quantity", entity.LineItem{Name: "A", UnitPrice: 10, Quantity: -1}},
		{"negative unit price", entity.LineItem{Name: "A", UnitPrice: -10, Quantity: 1}},
		{"NaN unit price", entity.LineItem{Name: "A", UnitPrice: math.NaN(), Quantity: 1}},
		{"infinite unit price", entity.LineItem{Name: "A", UnitPrice: math.Inf(1), Quantity: 1}},
		{"discount above 100", entity.LineItem{Name: "A", UnitPrice: 10, Quantity: 1, DiscountPercent: 101}},
		{"negative discount", entity.LineItem{Name: "A", UnitPrice: 10, Quantity: 1, DiscountPercent: -5}},
		{"negative list price", entity.LineItem{Name: "A", UnitPrice: 10, Quantity: 1, ListPrice: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Aggregate([]entity.LineItem{tt.item}, 5)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !apperror.IsInvalidLineItem(err) {
				t.Errorf("expected invalid line item error, got %v", err)
			}
		})
	}
}

func TestAggregateInvalidRate(t *testing.T) {
	for _, rate := range []float64{-1, math.NaN(), math.Inf(1)} {
		if _, err := Aggregate(nil, rate); !errors.Is(err, apperror.ErrInvalidAmount) {
			t.Errorf("Aggregate(rate=%v) error = %v, want ErrInvalidAmount", rate, err)
		}
	}
}

func TestAggregateTotalsReconcile(t *testing.T) {
	tests := []struct {
		name  string
		items []entity.LineItem
		rate  float64
	}{
		{
			"mixed discounts",
			[]entity.LineItem{
				{Name: "A", UnitPrice: 33.33, Quantity: 3, DiscountPercent: 7.5},
				{Name: "B", UnitPrice: 12.40, Quantity: 5},
				{Name: "C", UnitPrice: 199.99, Quantity: 1, DiscountPercent: 50},
			},
			12,
		},
		{
			"zero rate",
			[]entity.LineItem{{Name: "A", UnitPrice: 49.95, Quantity: 2}},
			0,
		},
		{
			"free item",
			[]entity.LineItem{{Name: "Sample", UnitPrice: 0, Quantity: 10}},
			18,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals, err := Aggregate(tt.items, tt.rate)
			if err != nil {
				t.Fatalf("Aggregate returned error: %v", err)
			}
			// Rounding happens after summation, so subtotal + tax can drift
			// from the grand total by at most one cent. The drift can land
			// exactly on the cent, so the bound carries float slack.
			if diff := math.Abs(totals.GrandTotal - (totals.Subtotal + totals.TaxAmount)); diff > 0.01+1e-9 {
				t.Errorf("grand total %v drifts %v from subtotal %v + tax %v",
					totals.GrandTotal, diff, totals.Subtotal, totals.TaxAmount)
			}
		})
	}
}

func TestAssemble(t *testing.T) {
	inv := &entity.Invoice{
		InvoiceNo:      "INV-001",
		CustomerName:   "Asha Rao",
		TaxRatePercent: 5,
		Items: []entity.LineItem{
			{Name: "Paracetamol", Category: "Ayurvedic", UnitPrice: 100, Quantity: 2, DiscountPercent: 10},
		},
	}

	doc, err := Assemble(inv, nil)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	if doc.InvoiceNo != "INV-001" {
		t.Errorf("InvoiceNo = %q, want INV-001", doc.InvoiceNo)
	}
	if !almostEqual(doc.Totals.GrandTotal, 189.00) {
		t.Errorf("GrandTotal = %v, want 189.00", doc.Totals.GrandTotal)
	}
	if doc.AmountInWords != "One Hundred and Eighty Nine Rupees Only" {
		t.Errorf("AmountInWords = %q", doc.AmountInWords)
	}

	item := doc.Items[0]
	if item.Serial != 1 {
		t.Errorf("Serial = %d, want 1", item.Serial)
	}
	if item.TaxClassCode != DefaultTaxClassCode {
		t.Errorf("TaxClassCode = %q, want %q", item.TaxClassCode, DefaultTaxClassCode)
	}
	if !almostEqual(item.ListPrice, 120.00) {
		t.Errorf("ListPrice = %v, want 120.00 (unit price x 1.2)", item.ListPrice)
	}
	if item.Description != "Ayurvedic Medicine" {
		t.Errorf("Description = %q, want \"Ayurvedic Medicine\"", item.Description)
	}

	// Nil store falls back to the fixed header.
	if doc.Store.StoreName != DefaultStoreName {
		t.Errorf("StoreName = %q, want %q", doc.Store.StoreName, DefaultStoreName)
	}
	if doc.Store.Phone != DefaultStorePhone {
		t.Errorf("Phone = %q, want %q", doc.Store.Phone, DefaultStorePhone)
	}
}

func TestAssembleMissingInvoiceNo(t *testing.T) {
	for _, no := range []string{"", "   ", "\t"} {
		_, err := Assemble(&entity.Invoice{InvoiceNo: no}, nil)
		if !errors.Is(err, apperror.ErrMissingInvoiceNo) {
			t.Errorf("Assemble(invoice_no=%q) error = %v, want ErrMissingInvoiceNo", no, err)
		}
	}
}

func TestAssembleStoreFallbacksPerField(t *testing.T) {
	store := &entity.StoreProfile{
		StoreName: "City Pharmacy",
		TaxID:     "29ABCDE1234F1Z5",
	}

	doc, err := Assemble(&entity.Invoice{InvoiceNo: "INV-002"}, store)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	if doc.Store.StoreName != "City Pharmacy" {
		t.Errorf("StoreName = %q, want \"City Pharmacy\"", doc.Store.StoreName)
	}
	if doc.Store.TaxID != "29ABCDE1234F1Z5" {
		t.Errorf("TaxID = %q", doc.Store.TaxID)
	}
	// Missing fields fall back individually, not as a block.
	if doc.Store.Address != DefaultStoreAddress {
		t.Errorf("Address = %q, want %q", doc.Store.Address, DefaultStoreAddress)
	}
	if doc.Store.ManagerName != DefaultManagerName {
		t.Errorf("ManagerName = %q, want %q", doc.Store.ManagerName, DefaultManagerName)
	}
}

func TestAssembleDoesNotMutateInput(t *testing.T) {
	inv := &entity.Invoice{
		InvoiceNo:      "INV-003",
		TaxRatePercent: 5,
		Items: []entity.LineItem{
			{Name: "Paracetamol", UnitPrice: 100, Quantity: 2},
		},
	}
	before, _ := json.Marshal(inv)

	if _, err := Assemble(inv, nil); err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	after, _ := json.Marshal(inv)
	if string(before) != string(after) {
		t.Errorf("input invoice mutated:\nbefore: %s\nafter:  %s", before, after)
	}
}

func TestAssembleIdempotent(t *testing.T) {
	inv := &entity.Invoice{
		InvoiceNo:      "INV-004",
		CustomerName:   "Asha Rao",
		TaxRatePercent: 12,
		Items: []entity.LineItem{
			{Name: "Paracetamol", UnitPrice: 33.33, Quantity: 3, DiscountPercent: 7.5},
			{Name: "Cough Syrup", UnitPrice: 120, Quantity: 1},
		},
	}

	first, err := Assemble(inv, nil)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	second, err := Assemble(inv, nil)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Errorf("repeated assembly produced different documents:\n%s\n%s", a, b)
	}
}

func TestAssembleKeepsExplicitLineFields(t *testing.T) {
	inv := &entity.Invoice{
		InvoiceNo:      "INV-005",
		TaxRatePercent: 5,
		Items: []entity.LineItem{
			{
				Name:         "Insulin",
				UnitPrice:    450,
				Quantity:     1,
				TaxClassCode: "3003",
				ListPrice:    500,
				Description:  "Keep refrigerated",
			},
		},
	}

	doc, err := Assemble(inv, nil)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	item := doc.Items[0]
	if item.TaxClassCode != "3003" {
		t.Errorf("TaxClassCode = %q, want explicit 3003", item.TaxClassCode)
	}
	if !almostEqual(item.ListPrice, 500) {
		t.Errorf("ListPrice = %v, want explicit 500", item.ListPrice)
	}
	if item.Description != "Keep refrigerated" {
		t.Errorf("Description = %q, want explicit value", item.Description)
	}
}

// Per-line tax figures are display values; the authoritative tax lives in
// the totals and the two need not agree to the cent.
func TestAssemblePerLineTaxIsPresentational(t *testing.T) {
	inv := &entity.Invoice{
		InvoiceNo:      "INV-006",
		TaxRatePercent: 12,
		Items: []entity.LineItem{
			{Name: "A", UnitPrice: 10.01, Quantity: 1},
			{Name: "B", UnitPrice: 10.01, Quantity: 1},
			{Name: "C", UnitPrice: 10.01, Quantity: 1},
		},
	}

	doc, err := Assemble(inv, nil)
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	var perLine float64
	for _, item := range doc.Items {
		if !almostEqual(item.TaxAmount, 1.20) {
			t.Errorf("line %d TaxAmount = %v, want 1.20", item.Serial, item.TaxAmount)
		}
		perLine += item.TaxAmount
	}

	// 30.03 x 12% = 3.6036 -> 3.60, while the per-line figures sum to 3.60
	// here; the invariant under test is that totals come from the subtotal,
	// not from summing the display values.
	if !almostEqual(doc.Totals.TaxAmount, 3.60) {
		t.Errorf("Totals.TaxAmount = %v, want 3.60", doc.Totals.TaxAmount)
	}
}
