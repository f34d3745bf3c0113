// utils/pricing.go
package utils

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Package discounts are a business rule, not a formula: a fixed step
// function over the session count. Any count outside the tiers pays full
// price.
var sessionDiscounts = map[int]int{
	1:  0,
	3:  25,
	6:  35,
	10: 45,
}

const (
	MinSessionCount = 1
	MaxSessionCount = 10
)

// DiscountForSessionCount returns the tiered discount percent for a package
// of n sessions.
func DiscountForSessionCount(n int) int {
	return sessionDiscounts[n]
}

// ClampSessionCount limits a session count to the supported range.
func ClampSessionCount(n int) int {
	if n < MinSessionCount {
		return MinSessionCount
	}
	if n > MaxSessionCount {
		return MaxSessionCount
	}
	return n
}

// Round2 rounds a monetary amount to 2 decimal places, half up.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type PriceQuote struct {
	UnitPrice       float64 `json:"unitPrice"`
	DiscountPercent int     `json:"discountPercent"`
	TotalAmount     float64 `json:"totalAmount"`
}

// PriceBreakdown derives the per-session price and total for a package.
// Explicit values passed by the caller (admin manual entry) are kept as-is;
// the calculator only fills the gaps.
func PriceBreakdown(basePrice float64, sessionCount int, explicitUnit *float64, explicitDiscount *int) PriceQuote {
	n := ClampSessionCount(sessionCount)

	discount := DiscountForSessionCount(n)
	if explicitDiscount != nil {
		discount = *explicitDiscount
	}

	var unit float64
	if explicitUnit != nil {
		unit = *explicitUnit
	} else {
		unit = Round2(basePrice * (1 - float64(discount)/100))
	}

	return PriceQuote{
		UnitPrice:       unit,
		DiscountPercent: discount,
		TotalAmount:     Round2(unit * float64(n)),
	}
}

var leadingIntRe = regexp.MustCompile(`^\s*(\d+)`)

// ParseSessionCount extracts the session count from a package label like
// "3 sessions" or a bare "6".
func ParseSessionCount(label string) (int, error) {
	m := leadingIntRe.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return 0, fmt.Errorf("unrecognized session count %q", label)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("unrecognized session count %q", label)
	}
	return n, nil
}
