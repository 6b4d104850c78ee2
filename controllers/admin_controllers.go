package controllers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/enterprise-pos/models"
	"github.com/yeremiapane/enterprise-pos/services"
	"github.com/yeremiapane/enterprise-pos/utils"
)

type AdminController struct {
	App            *services.App
	InsightTimeout time.Duration
}

func NewAdminController(app *services.App) *AdminController {
	return &AdminController{App: app, InsightTimeout: 30 * time.Second}
}

// dashboardFilterFromQuery reads branch, frequency, start and end
// (YYYY-MM-DD). A start or end alone implies CUSTOM.
func dashboardFilterFromQuery(c *gin.Context) (services.DashboardFilter, error) {
	f := services.DashboardFilter{
		BranchID:  c.DefaultQuery("branch", services.AllBranches),
		Frequency: strings.ToUpper(c.DefaultQuery("frequency", services.FrequencyAll)),
	}
	if err := f.Validate(); err != nil {
		return f, err
	}

	for _, p := range []struct {
		param string
		dst   **time.Time
	}{{"start", &f.Start}, {"end", &f.End}} {
		v := c.Query(p.param)
		if v == "" {
			continue
		}
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return f, ErrInvalidDate
		}
		*p.dst = &t
		if c.Query("frequency") == "" {
			f.Frequency = services.FrequencyCustom
		}
	}
	return f, nil
}

func (ac *AdminController) stats(c *gin.Context) (services.DashboardStats, bool) {
	filter, err := dashboardFilterFromQuery(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return services.DashboardStats{}, false
	}
	return services.Summarize(services.FilterOrders(ac.App.Orders.Get(), filter, ac.App.Now())), true
}

// GetDashboardStats returns sales totals for the filtered orders.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	stats, ok := ac.stats(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}

// GetInsight asks the AI model for growth tips on the filtered totals.
// It always answers 200 with a text, falling back to a fixed message.
func (ac *AdminController) GetInsight(c *gin.Context) {
	stats, ok := ac.stats(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), ac.InsightTimeout)
	defer cancel()

	utils.RespondJSON(c, http.StatusOK, "AI insight", gin.H{
		"insight":     ac.App.DashboardInsight(ctx, stats),
		"totalSales":  stats.TotalSales,
		"totalOrders": stats.TotalOrders,
	})
}

// GetSalesChart renders the per-day sales of the filtered orders as a PNG.
func (ac *AdminController) GetSalesChart(c *gin.Context) {
	stats, ok := ac.stats(c)
	if !ok {
		return
	}
	title := "Sales (" + ac.App.Settings.Get().CurrencySymbol + ")"

	var buf bytes.Buffer
	if err := services.RenderSalesChart(&buf, stats, title); err != nil {
		utils.ErrorLogger.Printf("Failed to render sales chart: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondFile(c, "image/png", "", buf.Bytes())
}

// GetAccounting lists accounting entries newest first, optionally for one branch.
func (ac *AdminController) GetAccounting(c *gin.Context) {
	entries := ac.App.Accounting.Get()
	if branch := c.Query("branch"); branch != "" && branch != services.AllBranches {
		filtered := make([]models.AccountingEntry, 0, len(entries))
		for _, e := range entries {
			if e.BranchID == branch {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	utils.RespondJSON(c, http.StatusOK, "Accounting records", entries)
}

func (ac *AdminController) GetSettings(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Settings", ac.App.Settings.Get())
}

// UpdateSettings changes only the fields present in the body.
func (ac *AdminController) UpdateSettings(c *gin.Context) {
	var req struct {
		AppName          *string  `json:"appName"`
		CurrencySymbol   *string  `json:"currencySymbol"`
		VATPercentage    *float64 `json:"vatPercentage"`
		PointsEarnRate   *float64 `json:"pointsEarnRate"`
		PointsRedeemRate *float64 `json:"pointsRedeemRate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	for _, v := range []*float64{req.VATPercentage, req.PointsEarnRate, req.PointsRedeemRate} {
		if v != nil && *v < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("percentages and rates cannot be negative"))
			return
		}
	}
	if req.CurrencySymbol != nil && strings.TrimSpace(*req.CurrencySymbol) == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("currency symbol cannot be empty"))
		return
	}

	settings := ac.App.Settings.Update(c.Request.Context(), func(s models.Settings) models.Settings {
		if req.AppName != nil {
			s.AppName = *req.AppName
		}
		if req.CurrencySymbol != nil {
			s.CurrencySymbol = strings.TrimSpace(*req.CurrencySymbol)
		}
		if req.VATPercentage != nil {
			s.VATPercentage = *req.VATPercentage
		}
		if req.PointsEarnRate != nil {
			s.PointsEarnRate = *req.PointsEarnRate
		}
		if req.PointsRedeemRate != nil {
			s.PointsRedeemRate = *req.PointsRedeemRate
		}
		return s
	})

	utils.InfoLogger.Printf("Settings updated by %s", staffID(c))
	utils.RespondJSON(c, http.StatusOK, "Settings updated", settings)
}
