package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yeremiapane/enterprise-pos/models"
	"github.com/yeremiapane/enterprise-pos/services"
	"github.com/yeremiapane/enterprise-pos/utils"
)

type MenuCategoryController struct {
	App *services.App
}

func NewMenuCategoryController(app *services.App) *MenuCategoryController {
	return &MenuCategoryController{App: app}
}

func (mcc *MenuCategoryController) GetAllCategories(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "All menu categories", mcc.App.Categories.Get())
}

func (mcc *MenuCategoryController) CreateCategory(c *gin.Context) {
	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category := models.Category{ID: "c-" + uuid.NewString(), Name: strings.TrimSpace(body.Name)}
	mcc.App.Categories.Update(c.Request.Context(), func(list []models.Category) []models.Category {
		return append(append([]models.Category(nil), list...), category)
	})
	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

func (mcc *MenuCategoryController) UpdateCategory(c *gin.Context) {
	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	id := c.Param("cat_id")
	var (
		updated models.Category
		found   bool
	)
	mcc.App.Categories.Update(c.Request.Context(), func(list []models.Category) []models.Category {
		next := append([]models.Category(nil), list...)
		for i := range next {
			if next[i].ID == id {
				next[i].Name = strings.TrimSpace(body.Name)
				updated, found = next[i], true
				return next
			}
		}
		return list
	})
	if !found {
		utils.RespondError(c, http.StatusNotFound, ErrCategoryNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category updated", updated)
}

// DeleteCategory refuses while menu items still point at the category.
func (mcc *MenuCategoryController) DeleteCategory(c *gin.Context) {
	id := c.Param("cat_id")
	for _, item := range mcc.App.MenuItems.Get() {
		if item.CategoryID == id {
			utils.RespondError(c, http.StatusConflict, errors.New("category still has menu items"))
			return
		}
	}

	found := false
	mcc.App.Categories.Update(c.Request.Context(), func(list []models.Category) []models.Category {
		next := make([]models.Category, 0, len(list))
		for _, cat := range list {
			if cat.ID == id {
				found = true
				continue
			}
			next = append(next, cat)
		}
		return next
	})
	if !found {
		utils.RespondError(c, http.StatusNotFound, ErrCategoryNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{"cat_id": id})
}
