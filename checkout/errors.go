package checkout

import "errors"

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrLineNotFound         = errors.New("cart line not found")
	ErrItemNotSellable      = errors.New("menu item is not sold at this branch")
	ErrAddOnNotEligible     = errors.New("add-on is not available for this item")
	ErrStalePricing         = errors.New("pricing does not match the cart, recompute before settling")
	ErrRedemptionNotCovered = errors.New("points to redeem exceed the customer's balance")
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrDuplicatePhone       = errors.New("a customer with this phone already exists")
	ErrPhoneRequired        = errors.New("phone is required")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)
