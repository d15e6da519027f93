// Package numwords converts rupee amounts into their English-words form
// using the Indian numbering system (crore, lakh, thousand).
//
// The conversion is plain arithmetic rather than a locale library: the
// lakh/crore grouping differs from generic thousand grouping and the output
// appears on legal tax documents, so it has to be exact.
package numwords

import (
	"math"
	"strings"

	"github.com/medibill/billing-api/pkg/apperror"
)

var (
	unitWords = [...]string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	teenWords = [...]string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tensWords = [...]string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

const (
	crore    = 10_000_000
	lakh     = 100_000
	thousand = 1_000
)

// ToWords spells out a non-negative amount as rupees and paise, ending with
// " Only". Exact zero returns "Zero Rupees Only". Negative or non-finite
// amounts are rejected.
func ToWords(amount float64) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return "", apperror.ErrInvalidAmount
	}
	// Above 10^15 rupees float64 cannot represent whole rupees exactly, so
	// the spelled-out form would be unfaithful.
	if amount >= 1e15 {
		return "", apperror.ErrInvalidAmount
	}

	rupees := int64(math.Floor(amount))
	paise := int64(math.Round((amount - math.Floor(amount)) * 100))
	if paise == 100 {
		// Fractional part rounded up to a full rupee
		rupees++
		paise = 0
	}

	if rupees == 0 && paise == 0 {
		return "Zero Rupees Only", nil
	}

	words := rupeeWords(rupees)
	if words == "" {
		words = "Zero"
	}
	words += " Rupees"

	if paise > 0 {
		words += " and " + belowThousand(paise) + " Paise"
	}
	return words + " Only", nil
}

// rupeeWords spells out a non-negative rupee count. The crore count is
// spelled recursively, so amounts past 999 crore keep grouping ("One
// Thousand Crore") instead of overflowing the units table.
func rupeeWords(n int64) string {
	var parts []string
	if g := n / crore; g > 0 {
		parts = append(parts, rupeeWords(g)+" Crore")
		n %= crore
	}
	if g := n / lakh; g > 0 {
		parts = append(parts, belowThousand(g)+" Lakh")
		n %= lakh
	}
	if g := n / thousand; g > 0 {
		parts = append(parts, belowThousand(g)+" Thousand")
		n %= thousand
	}
	if n > 0 {
		parts = append(parts, belowThousand(n))
	}
	return strings.Join(parts, " ")
}

// belowThousand spells out 1..999 with the hundreds/tens/units cascade,
// joining hundreds to the remainder with "and" (101 -> "One Hundred and One").
func belowThousand(n int64) string {
	switch {
	case n == 0:
		return ""
	case n < 10:
		return unitWords[n]
	case n < 20:
		return teenWords[n-10]
	case n < 100:
		s := tensWords[n/10]
		if n%10 != 0 {
			s += " " + unitWords[n%10]
		}
		return s
	default:
		s := unitWords[n/100] + " Hundred"
		if n%100 != 0 {
			s += " and " + belowThousand(n%100)
		}
		return s
	}
}
