package models

// BranchPrice overrides a menu item's base price at one branch.
type BranchPrice struct {
	BranchID string  `json:"branchId"`
	Price    float64 `json:"price"`
}

type MenuItem struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Price            float64       `json:"price"`
	CategoryID       string        `json:"categoryId"`
	Description      string        `json:"description,omitempty"`
	AllowedBranchIDs []string      `json:"allowedBranchIds"`
	BranchPrices     []BranchPrice `json:"branchPrices,omitempty"`
	AddOnIDs         []string      `json:"addOns,omitempty"`
}

type AddOn struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}
