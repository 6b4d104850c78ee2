package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yeremiapane/enterprise-pos/models"
	"github.com/yeremiapane/enterprise-pos/services"
	"github.com/yeremiapane/enterprise-pos/utils"
)

type BranchController struct {
	App *services.App
}

func NewBranchController(app *services.App) *BranchController {
	return &BranchController{App: app}
}

func (bc *BranchController) GetAllBranches(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "All branches", bc.App.Branches.Get())
}

type branchRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

func (bc *BranchController) CreateBranch(c *gin.Context) {
	var req branchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	branch := models.Branch{ID: "b-" + uuid.NewString(), Name: strings.TrimSpace(req.Name), Address: req.Address}
	bc.App.Branches.Update(c.Request.Context(), func(list []models.Branch) []models.Branch {
		return append(append([]models.Branch(nil), list...), branch)
	})
	utils.InfoLogger.Printf("Branch created: %s (%s)", branch.Name, branch.ID)
	utils.RespondJSON(c, http.StatusCreated, "Branch created", branch)
}

func (bc *BranchController) UpdateBranch(c *gin.Context) {
	var req branchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	id := c.Param("branch_id")
	var (
		updated models.Branch
		found   bool
	)
	bc.App.Branches.Update(c.Request.Context(), func(list []models.Branch) []models.Branch {
		next := append([]models.Branch(nil), list...)
		for i := range next {
			if next[i].ID == id {
				next[i].Name = strings.TrimSpace(req.Name)
				next[i].Address = req.Address
				updated, found = next[i], true
				return next
			}
		}
		return list
	})
	if !found {
		utils.RespondError(c, http.StatusNotFound, ErrBranchNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Branch updated", updated)
}
