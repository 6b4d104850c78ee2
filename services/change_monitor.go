package services

import (
	"time"

	"github.com/yeremiapane/enterprise-pos/models"
	"github.com/yeremiapane/enterprise-pos/utils"
)

// ChangeMonitor polls the orders collection and pushes fresh daily
// dashboard stats to websocket clients whenever it changes.
type ChangeMonitor struct {
	App      *App
	StopChan chan struct{}
	Interval time.Duration

	last string
}

func NewChangeMonitor(app *App) *ChangeMonitor {
	return &ChangeMonitor{
		App:      app,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Second,
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.CheckChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
}

// CheckChanges broadcasts once per observed change and reports whether it did.
func (cm *ChangeMonitor) CheckChanges() bool {
	orders := cm.App.Orders.Get()
	sig := ordersSignature(orders)
	if sig == cm.last {
		return false
	}
	cm.last = sig

	stats := Summarize(FilterOrders(orders, DashboardFilter{Frequency: FrequencyDaily}, cm.App.Now()))
	if cm.App.Hub != nil {
		cm.App.Hub.BroadcastDashboardUpdate(stats)
	}
	utils.InfoLogger.Printf("Dashboard refreshed: %d orders today, sales %.2f", stats.TotalOrders, stats.TotalSales)
	return true
}

// ordersSignature changes when an order is added or a status moves.
func ordersSignature(orders []models.Order) string {
	sig := make([]byte, 0, len(orders)*2)
	for _, o := range orders {
		sig = append(sig, o.ID...)
		sig = append(sig, ':')
		sig = append(sig, o.Status...)
		sig = append(sig, ';')
	}
	return string(sig)
}
