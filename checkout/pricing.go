package checkout

import (
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/enterprise-pos/models"
)

const (
	// MinRedeemBalance is the balance a customer needs before any redemption.
	MinRedeemBalance = 30
	// MaxRedeemShare caps one transaction's redemption at 30% of the balance.
	MaxRedeemShare = 0.3
)

type PricingResult struct {
	Subtotal            float64 `json:"subtotal"`
	VATPercent          float64 `json:"vatPercent"`
	VATAmount           float64 `json:"vatAmount"`
	CanRedeem           bool    `json:"canRedeem"`
	MaxRedeemablePoints float64 `json:"maxRedeemablePoints"`
	PointsToRedeem      float64 `json:"pointsToRedeem"`
	PointsCashValue     float64 `json:"pointsCashValue"`
	PromoCode           string  `json:"promoCode,omitempty"`
	PromoDiscount       float64 `json:"promoDiscount"`
	PromoInvalid        bool    `json:"promoInvalid"`
	Discount            float64 `json:"discount"`
	Total               float64 `json:"total"`
	PointsEarned        float64 `json:"pointsEarned"`
}

type Calculator struct {
	Promotions PromoTable
}

func NewCalculator(promotions PromoTable) *Calculator {
	if promotions == nil {
		promotions = DefaultPromotions
	}
	return &Calculator{Promotions: promotions}
}

// Compute prices lines with the default promotions.
func Compute(lines []models.CartLine, vatPercent float64, customer *models.Customer, usePoints bool, promoCode string, settings models.Settings) PricingResult {
	return NewCalculator(DefaultPromotions).Compute(lines, vatPercent, customer, usePoints, promoCode, settings)
}

// Compute derives subtotal, VAT, loyalty redemption, promo discount, total
// and points earned. It has no side effects. Points earned are taken from
// the final total, after every discount.
func (calc *Calculator) Compute(lines []models.CartLine, vatPercent float64, customer *models.Customer, usePoints bool, promoCode string, settings models.Settings) PricingResult {
	subtotal := Subtotal(lines)
	vat := subtotal.Mul(decimal.NewFromFloat(vatPercent)).Div(decimal.NewFromInt(100))

	res := PricingResult{VATPercent: vatPercent}

	pointsToRedeem := decimal.Zero
	cashValue := decimal.Zero
	redeemRate := decimal.NewFromFloat(settings.PointsRedeemRate)
	if customer != nil && customer.Points >= MinRedeemBalance {
		res.CanRedeem = true
		maxRedeemable := decimal.NewFromFloat(customer.Points).Mul(decimal.NewFromFloat(MaxRedeemShare)).Floor()
		res.MaxRedeemablePoints = maxRedeemable.InexactFloat64()

		if usePoints && redeemRate.IsPositive() {
			coverable := subtotal.Div(redeemRate).Floor()
			pointsToRedeem = decimal.Min(maxRedeemable, coverable)
			cashValue = pointsToRedeem.Mul(redeemRate)
		}
	}

	promo := decimal.Zero
	if code := NormalizePromoCode(promoCode); code != "" {
		res.PromoCode = code
		if rule, ok := calc.Promotions.Lookup(code); ok {
			promo = rule.Discount(subtotal)
		} else {
			res.PromoInvalid = true
		}
	}

	total := subtotal.Add(vat).Sub(cashValue).Sub(promo)
	if total.IsNegative() {
		total = decimal.Zero
	}

	earned := decimal.Zero
	earnRate := decimal.NewFromFloat(settings.PointsEarnRate)
	if earnRate.IsPositive() {
		earned = total.Div(earnRate).Floor()
	}

	res.Subtotal = subtotal.InexactFloat64()
	res.VATAmount = vat.InexactFloat64()
	res.PointsToRedeem = pointsToRedeem.InexactFloat64()
	res.PointsCashValue = cashValue.InexactFloat64()
	res.PromoDiscount = promo.InexactFloat64()
	res.Discount = cashValue.Add(promo).InexactFloat64()
	res.Total = total.InexactFloat64()
	res.PointsEarned = earned.InexactFloat64()
	return res
}

// Subtotal sums (unit price + add-ons) x quantity over lines.
func Subtotal(lines []models.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		unit := decimal.NewFromFloat(l.UnitPrice)
		for _, a := range l.AddOns {
			unit = unit.Add(decimal.NewFromFloat(a.Price))
		}
		sum = sum.Add(unit.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}
