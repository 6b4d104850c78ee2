package checkout

import (
	"strings"

	"github.com/yeremiapane/enterprise-pos/models"
)

// ResolvePrice returns the item's price at branchID. An override of zero or
// less is treated as no override.
func ResolvePrice(item models.MenuItem, branchID string) float64 {
	for _, bp := range item.BranchPrices {
		if bp.BranchID == branchID && bp.Price > 0 {
			return bp.Price
		}
	}
	return item.Price
}

// ResolveAddOns filters all down to the add-ons the item accepts, keeping
// the order of all.
func ResolveAddOns(item models.MenuItem, all []models.AddOn) []models.AddOn {
	if len(item.AddOnIDs) == 0 {
		return []models.AddOn{}
	}
	eligible := make(map[string]struct{}, len(item.AddOnIDs))
	for _, id := range item.AddOnIDs {
		eligible[id] = struct{}{}
	}

	out := make([]models.AddOn, 0, len(item.AddOnIDs))
	for _, a := range all {
		if _, ok := eligible[a.ID]; ok {
			out = append(out, a)
		}
	}
	return out
}

// SellableAt reports whether the item may be sold at branchID. An item with
// no branch restriction is sellable everywhere.
func SellableAt(item models.MenuItem, branchID string) bool {
	if len(item.AllowedBranchIDs) == 0 {
		return true
	}
	for _, id := range item.AllowedBranchIDs {
		if id == branchID {
			return true
		}
	}
	return false
}

type MenuFilter struct {
	BranchID   string
	CategoryID string
	Search     string
}

// FilterMenu keeps the items sellable at the branch, in the category ("" or
// "All" for any) and whose name contains the search text, ignoring case.
func FilterMenu(items []models.MenuItem, f MenuFilter) []models.MenuItem {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if f.BranchID != "" && !SellableAt(item, f.BranchID) {
			continue
		}
		if f.CategoryID != "" && f.CategoryID != "All" && item.CategoryID != f.CategoryID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(item.Name), search) {
			continue
		}
		out = append(out, item)
	}
	return out
}
