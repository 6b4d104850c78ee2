package checkout

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yeremiapane/enterprise-pos/models"
	"github.com/yeremiapane/enterprise-pos/store"
)

const (
	// RegistrationBonus is credited to every newly created customer.
	RegistrationBonus = 10
	DefaultGuestName  = "Guest"
)

// CustomerContact is what the cashier typed at checkout.
type CustomerContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (c CustomerContact) normalized() CustomerContact {
	return CustomerContact{Name: strings.TrimSpace(c.Name), Phone: NormalizePhone(c.Phone)}
}

func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}

// Ledger is the loyalty record per phone number. mu serializes every
// mutation; Settler holds it from the coverage check through apply.
type Ledger struct {
	mu        sync.Mutex
	customers *store.Persisted[[]models.Customer]
	now       func() time.Time
}

func NewLedger(customers *store.Persisted[[]models.Customer], now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{customers: customers, now: now}
}

func (l *Ledger) List() []models.Customer {
	return append([]models.Customer(nil), l.customers.Get()...)
}

func (l *Ledger) FindByPhone(phone string) (models.Customer, bool) {
	phone = NormalizePhone(phone)
	if phone == "" {
		return models.Customer{}, false
	}
	for _, c := range l.customers.Get() {
		if c.Phone == phone {
			return c, true
		}
	}
	return models.Customer{}, false
}

func (l *Ledger) FindByID(id string) (models.Customer, bool) {
	for _, c := range l.customers.Get() {
		if c.ID == id {
			return c, true
		}
	}
	return models.Customer{}, false
}

// Apply records one settled purchase. An existing customer's balance moves
// by -redeemed +earned; an unknown phone creates a customer holding the
// registration bonus plus earned. created reports which happened.
func (l *Ledger) Apply(ctx context.Context, contact CustomerContact, redeemed, earned, total float64) (models.Customer, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.apply(ctx, contact, redeemed, earned, total)
}

// covers reports whether the customer with phone holds at least points.
// Callers hold l.mu.
func (l *Ledger) covers(phone string, points float64) bool {
	customer, ok := l.FindByPhone(phone)
	return ok && customer.Points >= points
}

func (l *Ledger) apply(ctx context.Context, contact CustomerContact, redeemed, earned, total float64) (customer models.Customer, created bool, err error) {
	contact = contact.normalized()
	if contact.Phone == "" {
		return models.Customer{}, false, ErrPhoneRequired
	}

	l.customers.Update(ctx, func(list []models.Customer) []models.Customer {
		next := append([]models.Customer(nil), list...)
		for i := range next {
			if next[i].Phone != contact.Phone {
				continue
			}
			if redeemed > next[i].Points {
				err = ErrRedemptionNotCovered
				return list
			}
			next[i].Points = next[i].Points - redeemed + earned
			next[i].TotalSpend += total
			next[i].TotalOrders++
			customer = next[i]
			return next
		}

		if redeemed > 0 {
			err = ErrRedemptionNotCovered
			return list
		}
		name := contact.Name
		if name == "" {
			name = DefaultGuestName
		}
		customer = models.Customer{
			ID:          "cust-" + uuid.NewString(),
			Name:        name,
			Phone:       contact.Phone,
			Points:      RegistrationBonus + earned,
			TotalSpend:  total,
			TotalOrders: 1,
			CreatedAt:   l.now(),
		}
		created = true
		return append(next, customer)
	})
	return customer, created, err
}

// Register creates a customer by hand with the registration bonus and no
// purchase history.
func (l *Ledger) Register(ctx context.Context, contact CustomerContact) (models.Customer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	contact = contact.normalized()
	if contact.Phone == "" {
		return models.Customer{}, ErrPhoneRequired
	}

	var (
		customer models.Customer
		err      error
	)
	l.customers.Update(ctx, func(list []models.Customer) []models.Customer {
		for _, c := range list {
			if c.Phone == contact.Phone {
				err = ErrDuplicatePhone
				return list
			}
		}
		name := contact.Name
		if name == "" {
			name = DefaultGuestName
		}
		customer = models.Customer{
			ID:        "cust-" + uuid.NewString(),
			Name:      name,
			Phone:     contact.Phone,
			Points:    RegistrationBonus,
			CreatedAt: l.now(),
		}
		return append(append([]models.Customer(nil), list...), customer)
	})
	return customer, err
}

// UpdateContact edits name and phone only. Points and spend are untouched.
func (l *Ledger) UpdateContact(ctx context.Context, id string, contact CustomerContact) (models.Customer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	contact = contact.normalized()

	var (
		customer models.Customer
		err      = ErrCustomerNotFound
	)
	l.customers.Update(ctx, func(list []models.Customer) []models.Customer {
		idx := -1
		for i, c := range list {
			if c.ID == id {
				idx = i
			} else if contact.Phone != "" && c.Phone == contact.Phone {
				err = ErrDuplicatePhone
				return list
			}
		}
		if idx < 0 {
			return list
		}
		next := append([]models.Customer(nil), list...)
		if contact.Name != "" {
			next[idx].Name = contact.Name
		}
		if contact.Phone != "" {
			next[idx].Phone = contact.Phone
		}
		customer = next[idx]
		err = nil
		return next
	})
	return customer, err
}
