package utils

import (
	"fmt"
	"math"
	"strings"
)

const DefaultCurrency = "INR"

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64, currency string) string {
	return fmt.Sprintf("%s %.2f", NormalizeCurrency(currency), amount)
}

// NormalizeCurrency upper-cases a currency code and falls back to DefaultCurrency.
func NormalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency
	}
	return code
}

// ValidCurrency accepts three-letter alphabetic codes.
func ValidCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// ValidAmount rejects negative, NaN and infinite amounts.
func ValidAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// RoundMoney rounds to two decimals, matching DECIMAL(12,2) columns.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
