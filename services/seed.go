package services

import (
	"github.com/yeremiapane/enterprise-pos/models"
	"github.com/yeremiapane/enterprise-pos/utils"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "password"
)

func DefaultBranches() []models.Branch {
	return []models.Branch{
		{ID: "b1", Name: "Gulshan Flagship", Address: "Road 11, Gulshan 2"},
		{ID: "b2", Name: "Dhanmondi Express", Address: "Road 27, Dhanmondi"},
	}
}

func DefaultCategories() []models.Category {
	return []models.Category{
		{ID: "c-coffee", Name: "Coffee"},
		{ID: "c-food", Name: "Food"},
		{ID: "c-dessert", Name: "Dessert"},
	}
}

func DefaultAddOns() []models.AddOn {
	return []models.AddOn{
		{ID: "a-shot", Name: "Extra Shot", Price: 40},
		{ID: "a-oat", Name: "Oat Milk", Price: 50},
		{ID: "a-cheese", Name: "Extra Cheese", Price: 60},
	}
}

func DefaultMenuItems() []models.MenuItem {
	return []models.MenuItem{
		{
			ID: "m-latte", Name: "Caffe Latte", Price: 250, CategoryID: "c-coffee",
			AllowedBranchIDs: []string{"b1", "b2"},
			BranchPrices:     []models.BranchPrice{{BranchID: "b1", Price: 280}},
			AddOnIDs:         []string{"a-shot", "a-oat"},
		},
		{
			ID: "m-americano", Name: "Americano", Price: 200, CategoryID: "c-coffee",
			AllowedBranchIDs: []string{"b1", "b2"},
			AddOnIDs:         []string{"a-shot"},
		},
		{
			ID: "m-burger", Name: "Beef Burger", Price: 450, CategoryID: "c-food",
			AllowedBranchIDs: []string{"b1"},
			AddOnIDs:         []string{"a-cheese"},
		},
		{
			ID: "m-cheesecake", Name: "Cheesecake", Price: 320, CategoryID: "c-dessert",
			AllowedBranchIDs: []string{"b1", "b2"},
		},
	}
}

// DefaultStaff is the single super admin present on a fresh install.
func DefaultStaff() []models.Staff {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.ErrorLogger.Printf("failed to hash default admin password: %v", err)
	}
	return []models.Staff{{
		ID:                "admin-1",
		Name:              "Super Admin",
		Username:          DefaultAdminUsername,
		PasswordHash:      string(hash),
		Role:              models.RoleSuperAdmin,
		AssignedBranchIDs: []string{"b1", "b2"},
	}}
}
