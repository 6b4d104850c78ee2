package services

import (
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yeremiapane/enterprise-pos/checkout"
	"github.com/yeremiapane/enterprise-pos/models"
	"github.com/yeremiapane/enterprise-pos/utils"
)

// Sender delivers one text message to the back office.
type Sender interface {
	Send(text string) error
}

// TelegramNotifier posts messages to a single chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (t *TelegramNotifier) Send(text string) error {
	_, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text))
	return err
}

type NotifierMetrics struct {
	Sent    int64
	Failed  int64
	Pending int64
}

// SettlementNotifier queues settled orders and sends a summary for each
// on a ticker. Failed sends are put back on the queue until maxAttempts.
type SettlementNotifier struct {
	sender      Sender
	currency    func() string
	interval    time.Duration
	maxAttempts int

	mutex    sync.Mutex
	queue    []queuedOrder
	metrics  NotifierMetrics
	stopChan chan struct{}
	running  bool
}

type queuedOrder struct {
	order    models.Order
	attempts int
}

func NewSettlementNotifier(sender Sender, currency func() string) *SettlementNotifier {
	if currency == nil {
		currency = func() string { return "" }
	}
	return &SettlementNotifier{
		sender:      sender,
		currency:    currency,
		interval:    10 * time.Second,
		maxAttempts: 5,
	}
}

// SetCurrency sets where the currency symbol for messages comes from.
func (n *SettlementNotifier) SetCurrency(currency func() string) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.currency = currency
}

func (n *SettlementNotifier) WithInterval(d time.Duration) *SettlementNotifier {
	n.interval = d
	return n
}

func (n *SettlementNotifier) Start() {
	n.mutex.Lock()
	if n.running {
		n.mutex.Unlock()
		return
	}
	n.running = true
	n.stopChan = make(chan struct{})
	stop := n.stopChan
	n.mutex.Unlock()

	go n.run(stop)
	utils.InfoLogger.Println("Settlement notifier started")
}

func (n *SettlementNotifier) Stop() {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	if !n.running {
		return
	}
	n.running = false
	close(n.stopChan)
	utils.InfoLogger.Println("Settlement notifier stopped")
}

// Enqueue adds an order to the queue; an order already queued is ignored.
func (n *SettlementNotifier) Enqueue(order models.Order) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	for _, q := range n.queue {
		if q.order.ID == order.ID {
			return
		}
	}
	n.queue = append(n.queue, queuedOrder{order: order})
	n.metrics.Pending = int64(len(n.queue))
}

func (n *SettlementNotifier) Metrics() NotifierMetrics {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	return n.metrics
}

func (n *SettlementNotifier) run(stop <-chan struct{}) {
	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n.Flush()
		case <-stop:
			return
		}
	}
}

// Flush sends everything currently queued.
func (n *SettlementNotifier) Flush() {
	n.mutex.Lock()
	if len(n.queue) == 0 {
		n.mutex.Unlock()
		return
	}
	batch := n.queue
	n.queue = nil
	n.mutex.Unlock()

	var retry []queuedOrder
	for _, q := range batch {
		q.attempts++
		if err := n.sender.Send(n.format(q.order)); err != nil {
			utils.ErrorLogger.Printf("Failed to send notification for order %s (attempt %d): %v", q.order.ID, q.attempts, err)
			if q.attempts < n.maxAttempts {
				retry = append(retry, q)
			} else {
				n.mutex.Lock()
				n.metrics.Failed++
				n.mutex.Unlock()
			}
			continue
		}
		n.mutex.Lock()
		n.metrics.Sent++
		n.mutex.Unlock()
	}

	n.mutex.Lock()
	n.queue = append(retry, n.queue...)
	n.metrics.Pending = int64(len(n.queue))
	n.mutex.Unlock()
}

func (n *SettlementNotifier) format(o models.Order) string {
	n.mutex.Lock()
	currency := n.currency
	n.mutex.Unlock()
	sym := currency()
	customer := o.CustomerName
	if customer == "" {
		customer = checkout.DefaultGuestName
	}
	return fmt.Sprintf("New order #%s\nBranch: %s\nCustomer: %s\nItems: %d\nDiscount: %s\nTotal: %s\nPayment: %s",
		checkout.ShortOrderNumber(o.ID), o.BranchID, customer, len(o.Items),
		utils.FormatMoney(sym, o.Discount), utils.FormatMoney(sym, o.Total), o.PaymentMethod)
}
