package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/enterprise-pos/checkout"
	"github.com/yeremiapane/enterprise-pos/middlewares"
	"github.com/yeremiapane/enterprise-pos/services"
)

// CustomError is an error whose message is safe to show to the client.
type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

var (
	ErrNoPermission       = &CustomError{"You do not have permission"}
	ErrInvalidCredentials = &CustomError{"Invalid credentials"}
	ErrMenuItemNotFound   = &CustomError{"Menu item not found"}
	ErrUnknownAddOn       = &CustomError{"Unknown add-on"}
	ErrBranchNotFound     = &CustomError{"Branch not found"}
	ErrCategoryNotFound   = &CustomError{"Category not found"}
	ErrAddOnNotFound      = &CustomError{"Add-on not found"}
	ErrNotificationAbsent = &CustomError{"Notification not found"}
	ErrDuplicateID        = &CustomError{"An entry with this id already exists"}
	ErrInvalidDate        = &CustomError{"Dates must use the YYYY-MM-DD format"}
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		return http.StatusUnprocessableEntity
	case errors.Is(err, checkout.ErrLineNotFound),
		errors.Is(err, checkout.ErrCustomerNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, ErrMenuItemNotFound),
		errors.Is(err, ErrBranchNotFound),
		errors.Is(err, ErrCategoryNotFound),
		errors.Is(err, ErrAddOnNotFound),
		errors.Is(err, ErrNotificationAbsent):
		return http.StatusNotFound
	case errors.Is(err, checkout.ErrDuplicatePhone),
		errors.Is(err, checkout.ErrRedemptionNotCovered),
		errors.Is(err, checkout.ErrStalePricing),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, ErrDuplicateID):
		return http.StatusConflict
	case errors.Is(err, ErrNoPermission):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	}
	return http.StatusBadRequest
}

func staffID(c *gin.Context) string {
	return c.GetString(middlewares.ContextStaffID)
}

func staffRole(c *gin.Context) string {
	return c.GetString(middlewares.ContextRole)
}

func staffBranch(c *gin.Context) string {
	return c.GetString(middlewares.ContextBranchID)
}
