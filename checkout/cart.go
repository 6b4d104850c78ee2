package checkout

import (
	"sort"
	"strings"

	"github.com/yeremiapane/enterprise-pos/models"
)

// LineKey is the identity of a cart line: the menu item plus the sorted,
// de-duplicated set of add-on ids.
func LineKey(menuItemID string, addOnIDs []string) string {
	ids := uniqueSorted(addOnIDs)
	return menuItemID + "|" + strings.Join(ids, ",")
}

func uniqueSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Cart is an ordered list of lines. It is not safe for concurrent use; a
// Terminal serializes access.
type Cart struct {
	lines []models.CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

// AddItem resolves the branch price and merges into an existing line with
// the same key, or appends a new line with quantity 1.
func (c *Cart) AddItem(item models.MenuItem, branchID string, chosen []models.AddOn) (models.CartLine, error) {
	if !SellableAt(item, branchID) {
		return models.CartLine{}, ErrItemNotSellable
	}

	eligible := make(map[string]struct{}, len(item.AddOnIDs))
	for _, id := range item.AddOnIDs {
		eligible[id] = struct{}{}
	}
	addOns := make([]models.AddOn, 0, len(chosen))
	seen := make(map[string]struct{}, len(chosen))
	ids := make([]string, 0, len(chosen))
	for _, a := range chosen {
		if _, ok := eligible[a.ID]; !ok {
			return models.CartLine{}, ErrAddOnNotEligible
		}
		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}
		addOns = append(addOns, a)
		ids = append(ids, a.ID)
	}
	sort.Slice(addOns, func(i, j int) bool { return addOns[i].ID < addOns[j].ID })

	key := LineKey(item.ID, ids)
	for i := range c.lines {
		if c.lines[i].ID == key {
			c.lines[i].Quantity++
			return c.lines[i], nil
		}
	}

	line := models.CartLine{
		ID:         key,
		MenuItemID: item.ID,
		Name:       item.Name,
		UnitPrice:  ResolvePrice(item, branchID),
		Quantity:   1,
		AddOns:     addOns,
	}
	c.lines = append(c.lines, line)
	return line, nil
}

// SetQuantity sets a line's quantity, flooring at 1.
func (c *Cart) SetQuantity(lineID string, qty int) (models.CartLine, error) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			c.lines[i].Quantity = qty
			return c.lines[i], nil
		}
	}
	return models.CartLine{}, ErrLineNotFound
}

func (c *Cart) RemoveLine(lineID string) error {
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart lines.
func (c *Cart) Lines() []models.CartLine {
	out := make([]models.CartLine, len(c.lines))
	for i, l := range c.lines {
		l.AddOns = append([]models.AddOn(nil), l.AddOns...)
		out[i] = l
	}
	return out
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}
