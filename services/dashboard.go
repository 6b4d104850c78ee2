package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/enterprise-pos/models"
)

const (
	AllBranches = "ALL"

	FrequencyAll     = "ALL"
	FrequencyDaily   = "DAILY"
	FrequencyWeekly  = "WEEKLY"
	FrequencyMonthly = "MONTHLY"
	FrequencyYearly  = "YEARLY"
	FrequencyCustom  = "CUSTOM"
)

var ErrInvalidFrequency = errors.New("frequency must be one of ALL, DAILY, WEEKLY, MONTHLY, YEARLY, CUSTOM")

// DashboardFilter narrows orders by branch and period. Start and End are
// only read for CUSTOM; End covers its whole day.
type DashboardFilter struct {
	BranchID  string
	Frequency string
	Start     *time.Time
	End       *time.Time
}

func (f DashboardFilter) Validate() error {
	switch strings.ToUpper(f.Frequency) {
	case "", FrequencyAll, FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly, FrequencyCustom:
		return nil
	}
	return ErrInvalidFrequency
}

// FilterOrders applies f relative to now.
func FilterOrders(orders []models.Order, f DashboardFilter, now time.Time) []models.Order {
	freq := strings.ToUpper(f.Frequency)
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if f.BranchID != "" && f.BranchID != AllBranches && o.BranchID != f.BranchID {
			continue
		}
		if !inPeriod(o.CreatedAt.In(now.Location()), freq, f, now) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func inPeriod(at time.Time, freq string, f DashboardFilter, now time.Time) bool {
	switch freq {
	case FrequencyDaily:
		y1, m1, d1 := at.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case FrequencyWeekly:
		return !at.Before(now.AddDate(0, 0, -7))
	case FrequencyMonthly:
		return at.Year() == now.Year() && at.Month() == now.Month()
	case FrequencyYearly:
		return at.Year() == now.Year()
	case FrequencyCustom:
		if f.Start != nil && at.Before(*f.Start) {
			return false
		}
		if f.End != nil {
			y, m, d := f.End.Date()
			end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), f.End.Location())
			if at.After(end) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

type DailySales struct {
	Date   string  `json:"date"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

type DashboardStats struct {
	TotalSales      float64            `json:"totalSales"`
	TotalOrders     int                `json:"totalOrders"`
	CancelledOrders int                `json:"cancelledOrders"`
	AverageOrder    float64            `json:"averageOrder"`
	ByPaymentMethod map[string]float64 `json:"byPaymentMethod"`
	Daily           []DailySales       `json:"daily"`
}

// Summarize totals orders. Cancelled orders count toward TotalOrders but
// not toward any sales figure.
func Summarize(orders []models.Order) DashboardStats {
	stats := DashboardStats{
		TotalOrders:     len(orders),
		ByPaymentMethod: make(map[string]float64),
		Daily:           []DailySales{},
	}

	total := decimal.Zero
	byMethod := make(map[string]decimal.Decimal)
	byDay := make(map[string]*DailySales)
	daySales := make(map[string]decimal.Decimal)
	counted := 0
	for _, o := range orders {
		day := o.CreatedAt.Format("2006-01-02")
		if _, ok := byDay[day]; !ok {
			byDay[day] = &DailySales{Date: day}
		}
		byDay[day].Orders++

		if o.Status == models.OrderStatusCancelled {
			stats.CancelledOrders++
			continue
		}
		amount := decimal.NewFromFloat(o.Total)
		total = total.Add(amount)
		byMethod[o.PaymentMethod] = byMethod[o.PaymentMethod].Add(amount)
		daySales[day] = daySales[day].Add(amount)
		counted++
	}

	stats.TotalSales = total.InexactFloat64()
	if counted > 0 {
		stats.AverageOrder = total.Div(decimal.NewFromInt(int64(counted))).Round(2).InexactFloat64()
	}
	for method, v := range byMethod {
		stats.ByPaymentMethod[method] = v.InexactFloat64()
	}
	for day, d := range byDay {
		d.Sales = daySales[day].InexactFloat64()
		stats.Daily = append(stats.Daily, *d)
	}
	sort.Slice(stats.Daily, func(i, j int) bool { return stats.Daily[i].Date < stats.Daily[j].Date })
	return stats
}
