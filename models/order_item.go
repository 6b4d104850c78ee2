package models

// CartLine is one line of an open cart. Orders keep a snapshot of their lines.
type CartLine struct {
	ID         string  `json:"id"`
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"unitPrice"`
	Quantity   int     `json:"quantity"`
	AddOns     []AddOn `json:"addOns"`
}

// UnitTotal is the unit price plus every chosen add-on.
func (l CartLine) UnitTotal() float64 {
	total := l.UnitPrice
	for _, a := range l.AddOns {
		total += a.Price
	}
	return total
}
