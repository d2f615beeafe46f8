// Package common provides shared utilities for the Darvas portal.
package common

import (
	"fmt"
	"strings"
)

// NotAvailable is the display marker for fundamentals fields the provider
// did not return. A present-but-zero field is never rendered as NotAvailable.
const NotAvailable = "N/A"

// groupDigits inserts comma separators into a string of digits.
func groupDigits(s string) string {
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ",")
}

// FormatPrice formats a price as a dollar amount with comma separators
// and two decimals: 1234.5 -> "$1,234.50".
func FormatPrice(v float64) string {
	negative := v < 0
	if negative {
		v = -v
	}
	whole := int64(v)
	cents := int64((v-float64(whole))*100 + 0.5)
	if cents >= 100 {
		whole++
		cents -= 100
	}

	s := groupDigits(fmt.Sprintf("%d", whole))
	if negative {
		return fmt.Sprintf("-$%s.%02d", s, cents)
	}
	return fmt.Sprintf("$%s.%02d", s, cents)
}

// FormatGroupedInt formats an integer with comma separators: 96342110000 -> "96,342,110,000".
func FormatGroupedInt(v int64) string {
	negative := v < 0
	if negative {
		v = -v
	}
	s := groupDigits(fmt.Sprintf("%d", v))
	if negative {
		return "-" + s
	}
	return s
}

// FormatMarketCap formats a market capitalisation as whole dollars with
// comma separators and no decimals: 96342110000 -> "$96,342,110,000".
func FormatMarketCap(v int64) string {
	if v < 0 {
		return "-$" + FormatGroupedInt(-v)
	}
	return "$" + FormatGroupedInt(v)
}

// FormatYieldPct formats a fractional dividend yield as a percentage with
// two decimals: 0.044 -> "4.40%". Zero is a valid yield: 0 -> "0.00%".
func FormatYieldPct(fraction float64) string {
	return fmt.Sprintf("%.2f%%", fraction*100)
}

// FormatRatio formats a unitless ratio (P/E, beta) to two decimals.
func FormatRatio(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
