package checkout

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/enterprise-pos/models"
	"github.com/yeremiapane/enterprise-pos/store"
	"github.com/yeremiapane/enterprise-pos/utils"
)

var fixedNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

type fixture struct {
	orders     *store.Persisted[[]models.Order]
	accounting *store.Persisted[[]models.AccountingEntry]
	customers  *store.Persisted[[]models.Customer]
	ledger     *Ledger
	settler    *Settler
}

func newFixture(t *testing.T, customers ...models.Customer) *fixture {
	t.Helper()
	utils.InitLogger()
	ctx := context.Background()
	backend := store.NewMemoryBackend()

	f := &fixture{
		orders:     store.Open(ctx, backend, "orders-list", []models.Order{}),
		accounting: store.Open(ctx, backend, "accounting-records", []models.AccountingEntry{}),
		customers:  store.Open(ctx, backend, "loyalty-customers", []models.Customer{}),
	}
	if len(customers) > 0 {
		f.customers.Set(ctx, customers)
	}
	clock := func() time.Time { return fixedNow }
	f.ledger = NewLedger(f.customers, clock)
	f.settler = NewSettler(f.orders, f.accounting, f.ledger, clock)
	return f
}

func cartWith(t *testing.T, price float64) *Cart {
	t.Helper()
	cart := NewCart()
	_, err := cart.AddItem(models.MenuItem{ID: "m1", Name: "Platter", Price: price}, "b1", nil)
	require.NoError(t, err)
	return cart
}

func TestSettleEmptyCart(t *testing.T) {
	f := newFixture(t)
	_, err := f.settler.Settle(context.Background(), SettleRequest{Cart: NewCart()})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, f.orders.Get())
	assert.Empty(t, f.accounting.Get())
}

func TestSettleWalkInOrder(t *testing.T) {
	f := newFixture(t)
	cart := cartWith(t, 500)
	pricing := Compute(cart.Lines(), 5, nil, false, "", testSettings)

	res, err := f.settler.Settle(context.Background(), SettleRequest{
		Cart: cart, Pricing: pricing, PaymentMethod: models.PaymentCard, BranchID: "b1", StaffID: "admin-1",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.Order.ID, "ORD-"))
	assert.Equal(t, models.OrderStatusPending, res.Order.Status)
	assert.Equal(t, 525.0, res.Order.Total)
	assert.Equal(t, 25.0, res.Order.VAT)
	assert.Equal(t, fixedNow, res.Order.CreatedAt)
	assert.Len(t, res.Order.Items, 1)
	assert.Nil(t, res.Customer)

	require.Len(t, f.orders.Get(), 1)
	require.Len(t, f.accounting.Get(), 1)
	entry := f.accounting.Get()[0]
	assert.Equal(t, models.EntryTypeIncome, entry.Type)
	assert.Equal(t, SalesCategory, entry.Category)
	assert.Equal(t, 525.0, entry.Amount)
	assert.Equal(t, "b1", entry.BranchID)
	assert.Contains(t, entry.Description, ShortOrderNumber(res.Order.ID))

	assert.True(t, cart.IsEmpty())
	assert.Empty(t, f.customers.Get())
}

func TestSettleScenarioDNewCustomer(t *testing.T) {
	f := newFixture(t)
	cart := cartWith(t, 300)
	pricing := Compute(cart.Lines(), 0, nil, false, "", testSettings)

	res, err := f.settler.Settle(context.Background(), SettleRequest{
		Cart: cart, Pricing: pricing, Contact: CustomerContact{Phone: "01711000000"}, BranchID: "b1",
	})
	require.NoError(t, err)

	require.NotNil(t, res.Customer)
	assert.True(t, res.CustomerCreated)
	assert.Equal(t, 13.0, res.Customer.Points)
	assert.Equal(t, 300.0, res.Customer.TotalSpend)
	assert.Equal(t, 1, res.Customer.TotalOrders)
	assert.Equal(t, DefaultGuestName, res.Customer.Name)
	assert.Equal(t, models.PaymentCash, res.Order.PaymentMethod)
}

func TestSettleExistingCustomerRoundTrip(t *testing.T) {
	f := newFixture(t, models.Customer{ID: "cust-1", Name: "Rina", Phone: "0100", Points: 100, TotalSpend: 50, TotalOrders: 2})
	cart := cartWith(t, 1000)
	customer, _ := f.ledger.FindByPhone("0100")
	pricing := Compute(cart.Lines(), 0, &customer, true, "", testSettings)

	res, err := f.settler.Settle(context.Background(), SettleRequest{
		Cart: cart, Pricing: pricing, Contact: CustomerContact{Name: "Rina", Phone: "0100"},
	})
	require.NoError(t, err)

	updated, ok := f.ledger.FindByPhone("0100")
	require.True(t, ok)
	assert.False(t, res.CustomerCreated)
	assert.Equal(t, 100-pricing.PointsToRedeem+pricing.PointsEarned, updated.Points)
	assert.Equal(t, 79.0, updated.Points)
	assert.Equal(t, 1020.0, updated.TotalSpend)
	assert.Equal(t, 3, updated.TotalOrders)
	assert.Equal(t, 30.0, res.Order.Discount)
}

func TestSettleRejectsUncoveredRedemption(t *testing.T) {
	f := newFixture(t, models.Customer{ID: "cust-1", Phone: "0100", Points: 100})
	cart := cartWith(t, 1000)
	customer, _ := f.ledger.FindByPhone("0100")
	pricing := Compute(cart.Lines(), 0, &customer, true, "", testSettings)

	f.customers.Set(context.Background(), []models.Customer{{ID: "cust-1", Phone: "0100", Points: 10}})

	_, err := f.settler.Settle(context.Background(), SettleRequest{
		Cart: cart, Pricing: pricing, Contact: CustomerContact{Phone: "0100"},
	})
	assert.ErrorIs(t, err, ErrRedemptionNotCovered)
	assert.Empty(t, f.orders.Get())
	assert.False(t, cart.IsEmpty())
}

func TestSettleRejectsStalePricing(t *testing.T) {
	f := newFixture(t)
	cart := cartWith(t, 100)
	pricing := Compute(cart.Lines(), 0, nil, false, "", testSettings)
	_, err := cart.AddItem(models.MenuItem{ID: "m2", Name: "Soda", Price: 20}, "b1", nil)
	require.NoError(t, err)

	_, err = f.settler.Settle(context.Background(), SettleRequest{Cart: cart, Pricing: pricing})
	assert.ErrorIs(t, err, ErrStalePricing)
	assert.Empty(t, f.accounting.Get())
}

func TestSettlePrependsNewestFirst(t *testing.T) {
	f := newFixture(t)
	var ids []string
	for i := 0; i < 3; i++ {
		cart := cartWith(t, 10)
		res, err := f.settler.Settle(context.Background(), SettleRequest{
			Cart: cart, Pricing: Compute(cart.Lines(), 0, nil, false, "", testSettings),
		})
		require.NoError(t, err)
		ids = append(ids, res.Order.ID)
	}
	orders := f.orders.Get()
	require.Len(t, orders, 3)
	assert.Equal(t, ids[2], orders[0].ID)
	assert.Equal(t, ids[0], orders[2].ID)
}

func TestSettleRejectsUnknownPaymentMethod(t *testing.T) {
	f := newFixture(t)
	cart := cartWith(t, 10)
	_, err := f.settler.Settle(context.Background(), SettleRequest{
		Cart: cart, Pricing: Compute(cart.Lines(), 0, nil, false, "", testSettings), PaymentMethod: "BITCOIN",
	})
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestSettleRedemptionRacesContactEdit(t *testing.T) {
	f := newFixture(t, models.Customer{ID: "cust-1", Phone: "0100", Points: 1000000})
	ctx := context.Background()
	rich := models.Customer{Phone: "0100", Points: 1000000}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		phones := []string{"0199", "0100"}
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			_, err := f.ledger.UpdateContact(ctx, "cust-1", CustomerContact{Phone: phones[i%2]})
			assert.NoError(t, err)
		}
	}()

	settled := 0
	for i := 0; i < 200; i++ {
		cart := cartWith(t, 1000)
		pricing := Compute(cart.Lines(), 0, &rich, true, "", testSettings)
		require.Greater(t, pricing.PointsToRedeem, 0.0)

		res, err := f.settler.Settle(ctx, SettleRequest{Cart: cart, Pricing: pricing, Contact: CustomerContact{Phone: "0100"}})
		if err != nil {
			require.ErrorIs(t, err, ErrRedemptionNotCovered)
			continue
		}
		settled++
		require.NotNil(t, res.Customer, "order %s has no ledger update", res.Order.ID)
		assert.False(t, res.CustomerCreated)
	}
	close(stop)
	wg.Wait()

	assert.Len(t, f.orders.Get(), settled)
	assert.Len(t, f.accounting.Get(), settled)
	customer, ok := f.ledger.FindByID("cust-1")
	require.True(t, ok)
	assert.Equal(t, settled, customer.TotalOrders)
}
