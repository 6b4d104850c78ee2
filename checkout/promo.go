package checkout

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PromoKind is the closed set of promo discount variants.
type PromoKind string

const (
	PromoPercentOfSubtotal PromoKind = "PERCENT_OF_SUBTOTAL"
	PromoFlatAmount        PromoKind = "FLAT_AMOUNT"
)

type PromoRule struct {
	Code  string    `json:"code"`
	Kind  PromoKind `json:"kind"`
	Value float64   `json:"value"`
}

// Discount is the amount the rule takes off the given subtotal.
func (r PromoRule) Discount(subtotal decimal.Decimal) decimal.Decimal {
	switch r.Kind {
	case PromoPercentOfSubtotal:
		return subtotal.Mul(decimal.NewFromFloat(r.Value)).Div(decimal.NewFromInt(100))
	case PromoFlatAmount:
		return decimal.NewFromFloat(r.Value)
	default:
		return decimal.Zero
	}
}

// PromoTable maps normalized codes to rules.
type PromoTable map[string]PromoRule

func NewPromoTable(rules ...PromoRule) PromoTable {
	t := make(PromoTable, len(rules))
	for _, r := range rules {
		code := NormalizePromoCode(r.Code)
		r.Code = code
		t[code] = r
	}
	return t
}

// DefaultPromotions are the codes the registers accept out of the box.
var DefaultPromotions = NewPromoTable(
	PromoRule{Code: "SAVE10", Kind: PromoPercentOfSubtotal, Value: 10},
	PromoRule{Code: "WELCOME50", Kind: PromoFlatAmount, Value: 50},
)

func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Lookup matches code case-insensitively.
func (t PromoTable) Lookup(code string) (PromoRule, bool) {
	r, ok := t[NormalizePromoCode(code)]
	return r, ok
}
