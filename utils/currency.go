package utils

import (
	"fmt"
	"strings"
)

// FormatMoney renders an amount with the configured currency symbol and
// comma thousand separators, e.g. ("$", 12500.5) -> "$12,500.50".
func FormatMoney(symbol string, amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	formatted := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	return sign + symbol + strings.Join(groups, ",") + "." + decimalPart
}
