package models

type Settings struct {
	AppName          string  `json:"appName"`
	CurrencySymbol   string  `json:"currencySymbol"`
	VATPercentage    float64 `json:"vatPercentage"`
	PointsEarnRate   float64 `json:"pointsEarnRate"`
	PointsRedeemRate float64 `json:"pointsRedeemRate"`
}

func DefaultSettings() Settings {
	return Settings{
		AppName:          "Enterprise POS",
		CurrencySymbol:   "$",
		VATPercentage:    5,
		PointsEarnRate:   100,
		PointsRedeemRate: 1,
	}
}
