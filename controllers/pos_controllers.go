package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/enterprise-pos/checkout"
	"github.com/yeremiapane/enterprise-pos/services"
	"github.com/yeremiapane/enterprise-pos/utils"
)

// POSController drives the register of the logged-in staff member.
type POSController struct {
	App *services.App
}

func NewPOSController(app *services.App) *POSController {
	return &POSController{App: app}
}

func (pc *POSController) terminal(c *gin.Context) *checkout.Terminal {
	return pc.App.Registers.For(staffID(c), staffBranch(c))
}

// GetCart returns the register's lines, checkout input and live quote.
func (pc *POSController) GetCart(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Cart", pc.terminal(c).View())
}

// SwitchBranch moves the register to another branch the staff member may sell at.
func (pc *POSController) SwitchBranch(c *gin.Context) {
	var req struct {
		BranchID string `json:"branchId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if _, ok := pc.App.FindBranch(req.BranchID); !ok {
		utils.RespondError(c, http.StatusNotFound, ErrBranchNotFound)
		return
	}
	if !pc.canAccess(c, req.BranchID) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	term := pc.terminal(c)
	term.SwitchBranch(req.BranchID)
	utils.RespondJSON(c, http.StatusOK, "Branch switched", term.View())
}

func (pc *POSController) canAccess(c *gin.Context, branchID string) bool {
	id := staffID(c)
	for _, s := range pc.App.Staff.Get() {
		if s.ID == id {
			return s.CanAccessBranch(branchID)
		}
	}
	return false
}

func (pc *POSController) AddItem(c *gin.Context) {
	var req struct {
		MenuItemID string   `json:"menuItemId" binding:"required"`
		AddOnIDs   []string `json:"addOnIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, ok := pc.App.FindMenuItem(req.MenuItemID)
	if !ok {
		utils.RespondError(c, http.StatusNotFound, ErrMenuItemNotFound)
		return
	}
	chosen := pc.App.AddOnsByID(req.AddOnIDs)
	if len(chosen) != len(req.AddOnIDs) {
		utils.RespondError(c, http.StatusBadRequest, ErrUnknownAddOn)
		return
	}

	term := pc.terminal(c)
	line, err := term.AddItem(item, chosen)
	if err != nil {
		utils.RespondError(c, statusFor(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item added", gin.H{"line": line, "cart": term.View()})
}

func (pc *POSController) UpdateLine(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	term := pc.terminal(c)
	line, err := term.SetQuantity(c.Param("line_id"), req.Quantity)
	if err != nil {
		utils.RespondError(c, statusFor(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Quantity updated", gin.H{"line": line, "cart": term.View()})
}

func (pc *POSController) RemoveLine(c *gin.Context) {
	term := pc.terminal(c)
	if err := term.RemoveLine(c.Param("line_id")); err != nil {
		utils.RespondError(c, statusFor(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Line removed", term.View())
}

func (pc *POSController) ClearCart(c *gin.Context) {
	term := pc.terminal(c)
	term.ClearCart()
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", term.View())
}

// UpdateCheckout records customer contact, VAT override, redemption flag
// and payment method for the next settlement.
func (pc *POSController) UpdateCheckout(c *gin.Context) {
	var req struct {
		Customer      checkout.CustomerContact `json:"customer"`
		VATPercent    *float64                 `json:"vatPercent"`
		UsePoints     bool                     `json:"usePoints"`
		PaymentMethod string                   `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.VATPercent != nil && *req.VATPercent < 0 {
		utils.RespondError(c, http.StatusBadRequest, &CustomError{"VAT percentage cannot be negative"})
		return
	}

	view, err := pc.terminal(c).UpdateCheckout(req.Customer, req.VATPercent, req.UsePoints, req.PaymentMethod)
	if err != nil {
		utils.RespondError(c, statusFor(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Checkout updated", view)
}

// VerifyPromo applies a promo code. An unknown code is not an error: the
// quote comes back with promoInvalid set and no promo active.
func (pc *POSController) VerifyPromo(c *gin.Context) {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := pc.terminal(c).ApplyPromo(req.Code)
	msg := "Promo applied"
	if res.PromoInvalid {
		msg = "Invalid promo code"
	} else if res.PromoCode == "" {
		msg = "Promo cleared"
	}
	utils.RespondJSON(c, http.StatusOK, msg, res)
}

func (pc *POSController) Quote(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Quote", pc.terminal(c).Quote())
}

// Settle completes the sale and publishes it.
func (pc *POSController) Settle(c *gin.Context) {
	ctx := c.Request.Context()
	settlement, err := pc.terminal(c).Checkout(ctx)
	if err != nil {
		utils.RespondError(c, statusFor(err), err)
		return
	}
	pc.App.AfterSettlement(ctx, settlement)
	utils.RespondJSON(c, http.StatusCreated, "Order settled", settlement)
}

// Cancel drops the checkout input. The cart stays.
func (pc *POSController) Cancel(c *gin.Context) {
	term := pc.terminal(c)
	term.Cancel()
	utils.RespondJSON(c, http.StatusOK, "Checkout cancelled", term.View())
}
