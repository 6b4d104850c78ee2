package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yeremiapane/enterprise-pos/checkout"
	"github.com/yeremiapane/enterprise-pos/models"
	"github.com/yeremiapane/enterprise-pos/services"
	"github.com/yeremiapane/enterprise-pos/utils"
)

type MenuController struct {
	App *services.App
}

func NewMenuController(app *services.App) *MenuController {
	return &MenuController{App: app}
}

// menuEntry is a menu item as sold at one branch.
type menuEntry struct {
	models.MenuItem
	BranchPrice float64 `json:"branchPrice"`
}

// GetMenu lists what the register's branch sells, filtered by category
// and search text.
func (mc *MenuController) GetMenu(c *gin.Context) {
	branchID := c.Query("branch")
	if branchID == "" {
		branchID = mc.App.Registers.For(staffID(c), staffBranch(c)).BranchID()
	}

	items := checkout.FilterMenu(mc.App.MenuItems.Get(), checkout.MenuFilter{
		BranchID:   branchID,
		CategoryID: c.Query("category"),
		Search:     c.Query("search"),
	})
	out := make([]menuEntry, 0, len(items))
	for _, item := range items {
		out = append(out, menuEntry{MenuItem: item, BranchPrice: checkout.ResolvePrice(item, branchID)})
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", out)
}

// GetItemAddOns lists the add-ons a menu item accepts.
func (mc *MenuController) GetItemAddOns(c *gin.Context) {
	item, ok := mc.App.FindMenuItem(c.Param("item_id"))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, ErrMenuItemNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Add-ons for "+item.Name, checkout.ResolveAddOns(item, mc.App.AddOns.Get()))
}

func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of menu items", mc.App.MenuItems.Get())
}

func (mc *MenuController) GetMenuItemByID(c *gin.Context) {
	item, ok := mc.App.FindMenuItem(c.Param("item_id"))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, ErrMenuItemNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

type menuItemRequest struct {
	Name             string               `json:"name" binding:"required"`
	Price            float64              `json:"price" binding:"gte=0"`
	CategoryID       string               `json:"categoryId" binding:"required"`
	Description      string               `json:"description"`
	AllowedBranchIDs []string             `json:"allowedBranchIds"`
	BranchPrices     []models.BranchPrice `json:"branchPrices"`
	AddOnIDs         []string             `json:"addOns"`
}

func (mc *MenuController) validate(req menuItemRequest) error {
	found := false
	for _, cat := range mc.App.Categories.Get() {
		if cat.ID == req.CategoryID {
			found = true
			break
		}
	}
	if !found {
		return ErrCategoryNotFound
	}
	for _, id := range req.AllowedBranchIDs {
		if _, ok := mc.App.FindBranch(id); !ok {
			return ErrBranchNotFound
		}
	}
	for _, bp := range req.BranchPrices {
		if _, ok := mc.App.FindBranch(bp.BranchID); !ok {
			return ErrBranchNotFound
		}
		if bp.Price < 0 {
			return errors.New("branch price cannot be negative")
		}
	}
	if len(mc.App.AddOnsByID(req.AddOnIDs)) != len(req.AddOnIDs) {
		return ErrUnknownAddOn
	}
	return nil
}

func (req menuItemRequest) apply(item models.MenuItem) models.MenuItem {
	item.Name = strings.TrimSpace(req.Name)
	item.Price = req.Price
	item.CategoryID = req.CategoryID
	item.Description = req.Description
	item.AllowedBranchIDs = req.AllowedBranchIDs
	item.BranchPrices = req.BranchPrices
	item.AddOnIDs = req.AddOnIDs
	return item
}

func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := mc.validate(req); err != nil {
		utils.RespondError(c, statusFor(err), err)
		return
	}

	item := req.apply(models.MenuItem{ID: "m-" + uuid.NewString()})
	mc.App.MenuItems.Update(c.Request.Context(), func(list []models.MenuItem) []models.MenuItem {
		return append(append([]models.MenuItem(nil), list...), item)
	})

	utils.InfoLogger.Printf("Menu item created: %s (%s)", item.Name, item.ID)
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := mc.validate(req); err != nil {
		utils.RespondError(c, statusFor(err), err)
		return
	}

	id := c.Param("item_id")
	var (
		updated models.MenuItem
		found   bool
	)
	mc.App.MenuItems.Update(c.Request.Context(), func(list []models.MenuItem) []models.MenuItem {
		next := append([]models.MenuItem(nil), list...)
		for i := range next {
			if next[i].ID == id {
				next[i] = req.apply(next[i])
				updated, found = next[i], true
				return next
			}
		}
		return list
	})
	if !found {
		utils.RespondError(c, http.StatusNotFound, ErrMenuItemNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", updated)
}

func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	id := c.Param("item_id")
	found := false
	mc.App.MenuItems.Update(c.Request.Context(), func(list []models.MenuItem) []models.MenuItem {
		next := make([]models.MenuItem, 0, len(list))
		for _, item := range list {
			if item.ID == id {
				found = true
				continue
			}
			next = append(next, item)
		}
		return next
	})
	if !found {
		utils.RespondError(c, http.StatusNotFound, ErrMenuItemNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"item_id": id})
}

func (mc *MenuController) GetAllAddOns(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of add-ons", mc.App.AddOns.Get())
}

type addOnRequest struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"gte=0"`
}

func (mc *MenuController) CreateAddOn(c *gin.Context) {
	var req addOnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	addOn := models.AddOn{ID: "a-" + uuid.NewString(), Name: strings.TrimSpace(req.Name), Price: req.Price}
	mc.App.AddOns.Update(c.Request.Context(), func(list []models.AddOn) []models.AddOn {
		return append(append([]models.AddOn(nil), list...), addOn)
	})
	utils.RespondJSON(c, http.StatusCreated, "Add-on created", addOn)
}

func (mc *MenuController) UpdateAddOn(c *gin.Context) {
	var req addOnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	id := c.Param("addon_id")
	var (
		updated models.AddOn
		found   bool
	)
	mc.App.AddOns.Update(c.Request.Context(), func(list []models.AddOn) []models.AddOn {
		next := append([]models.AddOn(nil), list...)
		for i := range next {
			if next[i].ID == id {
				next[i].Name = strings.TrimSpace(req.Name)
				next[i].Price = req.Price
				updated, found = next[i], true
				return next
			}
		}
		return list
	})
	if !found {
		utils.RespondError(c, http.StatusNotFound, ErrAddOnNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Add-on updated", updated)
}

// DeleteAddOn removes the add-on and drops it from every menu item.
func (mc *MenuController) DeleteAddOn(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("addon_id")
	found := false
	mc.App.AddOns.Update(ctx, func(list []models.AddOn) []models.AddOn {
		next := make([]models.AddOn, 0, len(list))
		for _, a := range list {
			if a.ID == id {
				found = true
				continue
			}
			next = append(next, a)
		}
		return next
	})
	if !found {
		utils.RespondError(c, http.StatusNotFound, ErrAddOnNotFound)
		return
	}

	mc.App.MenuItems.Update(ctx, func(list []models.MenuItem) []models.MenuItem {
		next := append([]models.MenuItem(nil), list...)
		for i := range next {
			ids := make([]string, 0, len(next[i].AddOnIDs))
			for _, a := range next[i].AddOnIDs {
				if a != id {
					ids = append(ids, a)
				}
			}
			next[i].AddOnIDs = ids
		}
		return next
	})
	utils.RespondJSON(c, http.StatusOK, "Add-on deleted", gin.H{"addon_id": id})
}
