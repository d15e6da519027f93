// Package money formats rupee amounts and dates for invoice display.
//
// Amounts use the Indian digit grouping scheme (the last three digits form
// one group, every two digits after that form another, e.g. ₹12,34,567.89).
// The grouping is implemented by hand because generic locale formatters use
// thousand groups and the lakh/crore scheme must be exact on tax documents.
package money

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/medibill/billing-api/pkg/apperror"
)

// Symbol is the currency symbol prefixed to every formatted amount.
const Symbol = "₹"

// Round2 rounds a value to two fraction digits, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatCurrency renders an amount as rupee text with exactly two fraction
// digits and Indian digit grouping. Non-finite input is rejected.
func FormatCurrency(amount float64) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", apperror.ErrInvalidAmount
	}

	negative := amount < 0
	cents := int64(math.Round(math.Abs(amount) * 100))
	whole := cents / 100
	frac := cents % 100

	formatted := fmt.Sprintf("%s%s.%02d", Symbol, groupIndian(whole), frac)
	if negative {
		formatted = "-" + formatted
	}
	return formatted, nil
}

// groupIndian inserts commas into a non-negative integer using lakh/crore
// grouping: the rightmost group has three digits, every group left of it two.
func groupIndian(n int64) string {
	digits := fmt.Sprintf("%d", n)
	if len(digits) <= 3 {
		return digits
	}

	var groups []string
	head := digits[:len(digits)-3]
	groups = append(groups, digits[len(digits)-3:])
	for len(head) > 2 {
		groups = append(groups, head[len(head)-2:])
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append(groups, head)
	}

	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
	return strings.Join(groups, ",")
}

// FormatDate renders a calendar date in the fixed DD/MM/YYYY form used on
// printed invoices.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
