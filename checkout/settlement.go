package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/enterprise-pos/models"
	"github.com/yeremiapane/enterprise-pos/store"
	"github.com/yeremiapane/enterprise-pos/utils"
)

const SalesCategory = "Sales"

type SettleRequest struct {
	Cart          *Cart
	Pricing       PricingResult
	Contact       CustomerContact
	PaymentMethod string
	BranchID      string
	StaffID       string
}

// Settlement is what one successful Settle produced.
type Settlement struct {
	Order           models.Order           `json:"order"`
	Entry           models.AccountingEntry `json:"accountingEntry"`
	Customer        *models.Customer       `json:"customer,omitempty"`
	CustomerCreated bool                   `json:"customerCreated"`
}

// Settler turns a priced cart into an order, an income entry and a ledger
// update. Settlements from every register go through one Settler.
type Settler struct {
	mu         sync.Mutex
	orders     *store.Persisted[[]models.Order]
	accounting *store.Persisted[[]models.AccountingEntry]
	ledger     *Ledger
	now        func() time.Time
}

func NewSettler(orders *store.Persisted[[]models.Order], accounting *store.Persisted[[]models.AccountingEntry], ledger *Ledger, now func() time.Time) *Settler {
	if now == nil {
		now = time.Now
	}
	return &Settler{orders: orders, accounting: accounting, ledger: ledger, now: now}
}

func (s *Settler) Ledger() *Ledger {
	return s.ledger
}

// Settle validates the request, then appends the order, appends the income
// entry, updates the customer ledger and clears the cart, in that order.
// Nothing is written when validation fails. The ledger stays locked from the
// redemption check to the ledger update.
func (s *Settler) Settle(ctx context.Context, req SettleRequest) (Settlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Cart == nil || req.Cart.IsEmpty() {
		return Settlement{}, ErrEmptyCart
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = models.PaymentCash
	}
	if !models.IsValidPaymentMethod(req.PaymentMethod) {
		return Settlement{}, ErrInvalidPaymentMethod
	}

	lines := req.Cart.Lines()
	if !Subtotal(lines).Equal(decimal.NewFromFloat(req.Pricing.Subtotal)) {
		return Settlement{}, ErrStalePricing
	}

	contact := req.Contact.normalized()
	s.ledger.mu.Lock()
	defer s.ledger.mu.Unlock()
	if req.Pricing.PointsToRedeem > 0 && !s.ledger.covers(contact.Phone, req.Pricing.PointsToRedeem) {
		return Settlement{}, ErrRedemptionNotCovered
	}

	now := s.now()
	order := models.Order{
		ID:            "ORD-" + uuid.NewString(),
		BranchID:      req.BranchID,
		Items:         lines,
		Subtotal:      req.Pricing.Subtotal,
		VAT:           req.Pricing.VATAmount,
		Discount:      req.Pricing.Discount,
		Total:         req.Pricing.Total,
		Status:        models.OrderStatusPending,
		PaymentMethod: req.PaymentMethod,
		CreatedAt:     now,
		StaffID:       req.StaffID,
		CustomerName:  contact.Name,
		CustomerPhone: contact.Phone,
	}
	s.orders.Update(ctx, func(list []models.Order) []models.Order {
		return append([]models.Order{order}, list...)
	})

	entry := models.AccountingEntry{
		ID:          "INC-" + uuid.NewString(),
		Date:        now,
		Description: fmt.Sprintf("Sales - Order #%s", ShortOrderNumber(order.ID)),
		Type:        models.EntryTypeIncome,
		Amount:      order.Total,
		Category:    SalesCategory,
		BranchID:    order.BranchID,
	}
	s.accounting.Update(ctx, func(list []models.AccountingEntry) []models.AccountingEntry {
		return append([]models.AccountingEntry{entry}, list...)
	})

	result := Settlement{Order: order, Entry: entry}
	if contact.Phone != "" {
		customer, created, err := s.ledger.apply(ctx, contact, req.Pricing.PointsToRedeem, req.Pricing.PointsEarned, order.Total)
		if err != nil {
			utils.ErrorLogger.Printf("ledger update for order %s failed: %v", order.ID, err)
		} else {
			result.Customer = &customer
			result.CustomerCreated = created
		}
	}

	req.Cart.Clear()

	utils.InfoLogger.Printf("Order %s settled: total=%.2f branch=%s staff=%s", order.ID, order.Total, order.BranchID, order.StaffID)
	return result, nil
}

// ShortOrderNumber is the first block of the order id after the prefix,
// used on receipts and in ledger descriptions.
func ShortOrderNumber(orderID string) string {
	parts := strings.SplitN(orderID, "-", 3)
	if len(parts) < 2 {
		return orderID
	}
	return strings.ToUpper(parts[1])
}
