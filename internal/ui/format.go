package ui

import "fmt"

// FormatTotal renders the footer total, e.g. "Total: $12.50".
func FormatTotal(currency string, total float64) string {
	return "Total: " + formatPrice(currency, total)
}

func formatPrice(currency string, price float64) string {
	return fmt.Sprintf("%s%.2f", currency, price)
}

// truncate shortens s to max runes, ending in "..." when cut.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
