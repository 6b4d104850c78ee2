package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/enterprise-pos/models"
	"github.com/yeremiapane/enterprise-pos/services"
	"github.com/yeremiapane/enterprise-pos/utils"
)

type OrderController struct {
	App *services.App
}

func NewOrderController(app *services.App) *OrderController {
	return &OrderController{App: app}
}

// GetAllOrders lists orders newest first, filtered by branch, status and period.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	filter, err := dashboardFilterFromQuery(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	orders := services.FilterOrders(oc.App.Orders.Get(), filter, oc.App.Now())

	if status := strings.ToUpper(c.Query("status")); status != "" {
		filtered := make([]models.Order, 0, len(orders))
		for _, o := range orders {
			if o.Status == status {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	order, ok := oc.App.FindOrder(c.Param("order_id"))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, services.ErrOrderNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus completes or cancels a pending order.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.App.UpdateOrderStatus(c.Request.Context(), c.Param("order_id"), strings.ToUpper(req.Status))
	if err != nil {
		utils.RespondError(c, statusFor(err), err)
		return
	}

	utils.InfoLogger.Printf("Order %s status changed to %s by %s", order.ID, order.Status, staffID(c))
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}
