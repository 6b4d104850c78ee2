package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yeremiapane/enterprise-pos/checkout"
	"github.com/yeremiapane/enterprise-pos/kds"
	"github.com/yeremiapane/enterprise-pos/models"
	"github.com/yeremiapane/enterprise-pos/store"
	"github.com/yeremiapane/enterprise-pos/utils"
)

// Collection keys in the persisted store.
const (
	KeySettings      = "app-settings"
	KeyBranches      = "app-branches"
	KeyOrders        = "orders-list"
	KeyAccounting    = "accounting-records"
	KeyStaff         = "staff-list"
	KeyCategories    = "app-categories"
	KeyMenuItems     = "menu-items"
	KeyAddOns        = "app-addons"
	KeyNotifications = "app-notifications"
	KeyCustomers     = "loyalty-customers"
)

// App is the process-wide state: one persisted value per collection plus
// the checkout engine built on top of them.
type App struct {
	Settings      *store.Persisted[models.Settings]
	Branches      *store.Persisted[[]models.Branch]
	Categories    *store.Persisted[[]models.Category]
	MenuItems     *store.Persisted[[]models.MenuItem]
	AddOns        *store.Persisted[[]models.AddOn]
	Staff         *store.Persisted[[]models.Staff]
	Orders        *store.Persisted[[]models.Order]
	Accounting    *store.Persisted[[]models.AccountingEntry]
	Notifications *store.Persisted[[]models.Notification]
	Customers     *store.Persisted[[]models.Customer]

	Calculator *checkout.Calculator
	Ledger     *checkout.Ledger
	Settler    *checkout.Settler
	Registers  *checkout.Registers

	Hub      *kds.Hub
	Insight  InsightGenerator
	Notifier *SettlementNotifier

	Now func() time.Time
}

type Option func(*App)

func WithClock(now func() time.Time) Option {
	return func(a *App) { a.Now = now }
}

func WithHub(h *kds.Hub) Option {
	return func(a *App) { a.Hub = h }
}

func WithInsight(g InsightGenerator) Option {
	return func(a *App) { a.Insight = g }
}

func WithNotifier(n *SettlementNotifier) Option {
	return func(a *App) { a.Notifier = n }
}

func WithPromotions(t checkout.PromoTable) Option {
	return func(a *App) { a.Calculator = checkout.NewCalculator(t) }
}

// NewApp opens every collection from backend, seeding defaults for the
// ones that have never been stored.
func NewApp(ctx context.Context, backend store.Backend, opts ...Option) *App {
	app := &App{
		Now:        time.Now,
		Hub:        kds.Default(),
		Calculator: checkout.NewCalculator(nil),
	}
	for _, opt := range opts {
		opt(app)
	}

	app.Settings = store.Open(ctx, backend, KeySettings, models.DefaultSettings())
	app.Branches = store.Open(ctx, backend, KeyBranches, DefaultBranches())
	app.Categories = store.Open(ctx, backend, KeyCategories, DefaultCategories())
	app.MenuItems = store.Open(ctx, backend, KeyMenuItems, DefaultMenuItems())
	app.AddOns = store.Open(ctx, backend, KeyAddOns, DefaultAddOns())
	app.Staff = store.Open(ctx, backend, KeyStaff, DefaultStaff())
	app.Orders = store.Open(ctx, backend, KeyOrders, []models.Order{})
	app.Accounting = store.Open(ctx, backend, KeyAccounting, []models.AccountingEntry{})
	app.Notifications = store.Open(ctx, backend, KeyNotifications, []models.Notification{})
	app.Customers = store.Open(ctx, backend, KeyCustomers, []models.Customer{})

	app.Ledger = checkout.NewLedger(app.Customers, app.Now)
	app.Settler = checkout.NewSettler(app.Orders, app.Accounting, app.Ledger, app.Now)
	app.Registers = checkout.NewRegisters(app.Calculator, app.Settler, app.Settings.Get)

	utils.InfoLogger.Printf("State loaded: %d orders, %d customers, %d menu items",
		len(app.Orders.Get()), len(app.Customers.Get()), len(app.MenuItems.Get()))
	return app
}

// AfterSettlement publishes a settled order: an in-app notification, a
// websocket broadcast and, when configured, a Telegram message. None of
// these can fail the settlement.
func (a *App) AfterSettlement(ctx context.Context, s checkout.Settlement) {
	n := models.Notification{
		ID:        "NTF-" + uuid.NewString(),
		Title:     "New order",
		Message:   "Order #" + checkout.ShortOrderNumber(s.Order.ID) + " settled for " + utils.FormatMoney(a.Settings.Get().CurrencySymbol, s.Order.Total),
		BranchID:  s.Order.BranchID,
		CreatedAt: a.Now(),
	}
	a.AddNotification(ctx, n)

	if a.Hub != nil {
		a.Hub.BroadcastOrderCreated(s.Order)
		if s.Customer != nil {
			a.Hub.BroadcastCustomerUpdate(*s.Customer)
		}
	}
	if a.Notifier != nil {
		a.Notifier.Enqueue(s.Order)
	}
}

func (a *App) AddNotification(ctx context.Context, n models.Notification) {
	a.Notifications.Update(ctx, func(list []models.Notification) []models.Notification {
		return append([]models.Notification{n}, list...)
	})
	if a.Hub != nil {
		a.Hub.BroadcastNotification(n)
	}
}

func (a *App) FindMenuItem(id string) (models.MenuItem, bool) {
	for _, m := range a.MenuItems.Get() {
		if m.ID == id {
			return m, true
		}
	}
	return models.MenuItem{}, false
}

func (a *App) FindBranch(id string) (models.Branch, bool) {
	for _, b := range a.Branches.Get() {
		if b.ID == id {
			return b, true
		}
	}
	return models.Branch{}, false
}

func (a *App) FindOrder(id string) (models.Order, bool) {
	for _, o := range a.Orders.Get() {
		if o.ID == id {
			return o, true
		}
	}
	return models.Order{}, false
}

func (a *App) FindStaffByUsername(username string) (models.Staff, bool) {
	for _, s := range a.Staff.Get() {
		if s.Username == username {
			return s, true
		}
	}
	return models.Staff{}, false
}

// AddOnsByID resolves ids against the add-on collection, skipping unknown ids.
func (a *App) AddOnsByID(ids []string) []models.AddOn {
	all := a.AddOns.Get()
	out := make([]models.AddOn, 0, len(ids))
	for _, id := range ids {
		for _, addOn := range all {
			if addOn.ID == id {
				out = append(out, addOn)
				break
			}
		}
	}
	return out
}
