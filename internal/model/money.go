package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders an amount the way the storefront displays prices, e.g. "R$ 12,34".
func FormatBRL(amount decimal.Decimal) string {
	return "R$ " + strings.Replace(amount.StringFixed(2), ".", ",", 1)
}
