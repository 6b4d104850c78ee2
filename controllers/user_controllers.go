package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/enterprise-pos/services"
	"github.com/yeremiapane/enterprise-pos/utils"
	"golang.org/x/crypto/bcrypt"
)

type UserController struct {
	App *services.App
}

func NewUserController(app *services.App) *UserController {
	return &UserController{App: app}
}

// Login checks username and password against the staff list and returns a JWT.
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	staff, ok := uc.App.FindStaffByUsername(input.Username)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}

	branchID := ""
	if len(staff.AssignedBranchIDs) > 0 {
		branchID = staff.AssignedBranchIDs[0]
	} else if branches := uc.App.Branches.Get(); len(branches) > 0 {
		branchID = branches[0].ID
	}

	token, err := utils.GenerateToken(staff.ID, staff.Role, branchID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Login successful for staff: %s, role: %s", staff.Username, staff.Role)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":    token,
		"role":     staff.Role,
		"branchId": branchID,
		"name":     staff.Name,
	})
}

// GetProfile returns the staff member behind the token.
func (uc *UserController) GetProfile(c *gin.Context) {
	id := staffID(c)
	for _, s := range uc.App.Staff.Get() {
		if s.ID == id {
			utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", gin.H{
				"id":                s.ID,
				"name":              s.Name,
				"username":          s.Username,
				"role":              s.Role,
				"assignedBranchIds": s.AssignedBranchIDs,
			})
			return
		}
	}
	utils.RespondError(c, http.StatusNotFound, errors.New("staff not found"))
}
