package checkout

import (
	"context"
	"sync"

	"github.com/yeremiapane/enterprise-pos/models"
)

// CheckoutState is the transient input of the checkout dialog.
type CheckoutState struct {
	Contact       CustomerContact `json:"customer"`
	VATPercent    *float64        `json:"vatPercent,omitempty"`
	UsePoints     bool            `json:"usePoints"`
	PromoCode     string          `json:"promoCode,omitempty"`
	PaymentMethod string          `json:"paymentMethod"`
}

// TerminalView is a point-in-time copy of a register.
type TerminalView struct {
	BranchID string            `json:"branchId"`
	Lines    []models.CartLine `json:"lines"`
	State    CheckoutState     `json:"checkout"`
	Customer *models.Customer  `json:"matchedCustomer,omitempty"`
	Pricing  PricingResult     `json:"pricing"`
}

// Terminal is one register: a cart plus checkout state. Every method holds
// the terminal lock, so operations on one register run one at a time.
type Terminal struct {
	mu       sync.Mutex
	staffID  string
	branchID string
	cart     *Cart
	state    CheckoutState

	calc     *Calculator
	settler  *Settler
	settings func() models.Settings
}

func NewTerminal(staffID, branchID string, calc *Calculator, settler *Settler, settings func() models.Settings) *Terminal {
	return &Terminal{
		staffID:  staffID,
		branchID: branchID,
		cart:     NewCart(),
		state:    CheckoutState{PaymentMethod: models.PaymentCash},
		calc:     calc,
		settler:  settler,
		settings: settings,
	}
}

func (t *Terminal) BranchID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.branchID
}

// SwitchBranch moves the register to another branch. The open cart keeps
// the prices it was built with.
func (t *Terminal) SwitchBranch(branchID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.branchID = branchID
}

func (t *Terminal) AddItem(item models.MenuItem, chosen []models.AddOn) (models.CartLine, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cart.AddItem(item, t.branchID, chosen)
}

func (t *Terminal) SetQuantity(lineID string, qty int) (models.CartLine, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cart.SetQuantity(lineID, qty)
}

func (t *Terminal) RemoveLine(lineID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cart.RemoveLine(lineID)
}

func (t *Terminal) ClearCart() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cart.Clear()
}

// UpdateCheckout replaces the customer contact, VAT override, redemption
// flag and payment method. The promo code is only changed by ApplyPromo.
// A known phone with no typed name takes the customer's stored name.
func (t *Terminal) UpdateCheckout(contact CustomerContact, vatPercent *float64, usePoints bool, paymentMethod string) (TerminalView, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if paymentMethod != "" && !models.IsValidPaymentMethod(paymentMethod) {
		return TerminalView{}, ErrInvalidPaymentMethod
	}

	contact = contact.normalized()
	if contact.Name == "" {
		if c, ok := t.settler.Ledger().FindByPhone(contact.Phone); ok {
			contact.Name = c.Name
		}
	}
	t.state.Contact = contact
	t.state.VATPercent = vatPercent
	t.state.UsePoints = usePoints
	if paymentMethod != "" {
		t.state.PaymentMethod = paymentMethod
	}
	return t.viewLocked(), nil
}

// ApplyPromo verifies code and makes it the active promo. An unknown code
// clears the active promo and the returned pricing reports PromoInvalid.
func (t *Terminal) ApplyPromo(code string) PricingResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.calc.Promotions.Lookup(code); ok {
		t.state.PromoCode = NormalizePromoCode(code)
		return t.quoteLocked()
	}

	t.state.PromoCode = ""
	res := t.quoteLocked()
	if NormalizePromoCode(code) != "" {
		res.PromoCode = NormalizePromoCode(code)
		res.PromoInvalid = true
	}
	return res
}

func (t *Terminal) Quote() PricingResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.quoteLocked()
}

func (t *Terminal) View() TerminalView {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.viewLocked()
}

// Cancel discards the checkout dialog input. The cart is kept.
func (t *Terminal) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetStateLocked()
}

// Checkout prices the cart as it stands and settles it. On success the
// cart and checkout state are reset.
func (t *Terminal) Checkout(ctx context.Context) (Settlement, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	pricing := t.quoteLocked()
	settlement, err := t.settler.Settle(ctx, SettleRequest{
		Cart:          t.cart,
		Pricing:       pricing,
		Contact:       t.state.Contact,
		PaymentMethod: t.state.PaymentMethod,
		BranchID:      t.branchID,
		StaffID:       t.staffID,
	})
	if err != nil {
		return Settlement{}, err
	}
	t.resetStateLocked()
	return settlement, nil
}

func (t *Terminal) resetStateLocked() {
	t.state = CheckoutState{PaymentMethod: models.PaymentCash}
}

func (t *Terminal) matchedCustomerLocked() *models.Customer {
	c, ok := t.settler.Ledger().FindByPhone(t.state.Contact.Phone)
	if !ok {
		return nil
	}
	return &c
}

func (t *Terminal) quoteLocked() PricingResult {
	settings := t.settings()
	vat := settings.VATPercentage
	if t.state.VATPercent != nil {
		vat = *t.state.VATPercent
	}
	return t.calc.Compute(t.cart.Lines(), vat, t.matchedCustomerLocked(), t.state.UsePoints, t.state.PromoCode, settings)
}

func (t *Terminal) viewLocked() TerminalView {
	state := t.state
	if state.VATPercent != nil {
		v := *state.VATPercent
		state.VATPercent = &v
	}
	return TerminalView{
		BranchID: t.branchID,
		Lines:    t.cart.Lines(),
		State:    state,
		Customer: t.matchedCustomerLocked(),
		Pricing:  t.quoteLocked(),
	}
}

// Registers hands out one Terminal per staff member.
type Registers struct {
	mu        sync.Mutex
	terminals map[string]*Terminal

	calc     *Calculator
	settler  *Settler
	settings func() models.Settings
}

func NewRegisters(calc *Calculator, settler *Settler, settings func() models.Settings) *Registers {
	return &Registers{
		terminals: make(map[string]*Terminal),
		calc:      calc,
		settler:   settler,
		settings:  settings,
	}
}

// For returns the staff member's terminal, opening it at branchID on first use.
func (r *Registers) For(staffID, branchID string) *Terminal {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.terminals[staffID]; ok {
		return t
	}
	t := NewTerminal(staffID, branchID, r.calc, r.settler, r.settings)
	r.terminals[staffID] = t
	return t
}
