package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/enterprise-pos/checkout"
	"github.com/yeremiapane/enterprise-pos/models"
	"github.com/yeremiapane/enterprise-pos/services"
	"github.com/yeremiapane/enterprise-pos/utils"
)

type CustomerController struct {
	App *services.App
}

func NewCustomerController(app *services.App) *CustomerController {
	return &CustomerController{App: app}
}

// GetAllCustomers lists the loyalty ledger, optionally filtered by a name
// or phone fragment.
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	customers := cc.App.Ledger.List()
	if q := strings.ToLower(strings.TrimSpace(c.Query("search"))); q != "" {
		filtered := make([]models.Customer, 0, len(customers))
		for _, cu := range customers {
			if strings.Contains(strings.ToLower(cu.Name), q) || strings.Contains(cu.Phone, q) {
				filtered = append(filtered, cu)
			}
		}
		customers = filtered
	}
	utils.RespondJSON(c, http.StatusOK, "List of customers", customers)
}

func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	customer, ok := cc.App.Ledger.FindByID(c.Param("customer_id"))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, checkout.ErrCustomerNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer detail", customer)
}

// LookupByPhone is used by the register to show a returning customer's balance.
func (cc *CustomerController) LookupByPhone(c *gin.Context) {
	customer, ok := cc.App.Ledger.FindByPhone(c.Param("phone"))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, checkout.ErrCustomerNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer detail", customer)
}

// CreateCustomer registers a customer by hand with the welcome bonus.
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var req checkout.CustomerContact
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customer, err := cc.App.Ledger.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, statusFor(err), err)
		return
	}
	cc.App.Hub.BroadcastCustomerUpdate(customer)

	utils.InfoLogger.Printf("New customer registered (ID=%s)", customer.ID)
	utils.RespondJSON(c, http.StatusCreated, "Customer created", customer)
}

// UpdateCustomer edits name and phone.
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	var req checkout.CustomerContact
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customer, err := cc.App.Ledger.UpdateContact(c.Request.Context(), c.Param("customer_id"), req)
	if err != nil {
		utils.RespondError(c, statusFor(err), err)
		return
	}
	cc.App.Hub.BroadcastCustomerUpdate(customer)
	utils.RespondJSON(c, http.StatusOK, "Customer updated", customer)
}
