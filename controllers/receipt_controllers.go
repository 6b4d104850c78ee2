package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/enterprise-pos/checkout"
	"github.com/yeremiapane/enterprise-pos/services"
	"github.com/yeremiapane/enterprise-pos/utils"
)

type ReceiptController struct {
	App *services.App
}

func NewReceiptController(app *services.App) *ReceiptController {
	return &ReceiptController{App: app}
}

// GetReceiptPDF renders the printable receipt of one order.
func (rc *ReceiptController) GetReceiptPDF(c *gin.Context) {
	order, ok := rc.App.FindOrder(c.Param("order_id"))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, services.ErrOrderNotFound)
		return
	}
	branch, _ := rc.App.FindBranch(order.BranchID)

	var buf bytes.Buffer
	if err := services.RenderReceipt(&buf, order, branch, rc.App.Settings.Get()); err != nil {
		utils.ErrorLogger.Printf("Failed to render receipt for order %s: %v", order.ID, err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	filename := fmt.Sprintf("receipt-%s.pdf", checkout.ShortOrderNumber(order.ID))
	utils.RespondFile(c, "application/pdf", filename, buf.Bytes())
}
