package models

import "time"

const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

const (
	PaymentCash   = "CASH"
	PaymentCard   = "CARD"
	PaymentMobile = "MOBILE_BANKING"
)

var PaymentMethods = []string{PaymentCash, PaymentCard, PaymentMobile}

type Order struct {
	ID            string     `json:"id"`
	BranchID      string     `json:"branchId"`
	Items         []CartLine `json:"items"`
	Subtotal      float64    `json:"subtotal"`
	VAT           float64    `json:"vat"`
	Discount      float64    `json:"discount"`
	Total         float64    `json:"total"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"paymentMethod"`
	CreatedAt     time.Time  `json:"createdAt"`
	StaffID       string     `json:"userId"`
	CustomerName  string     `json:"customerName,omitempty"`
	CustomerPhone string     `json:"customerPhone,omitempty"`
}

// IsValidPaymentMethod reports whether m is one of PaymentMethods.
func IsValidPaymentMethod(m string) bool {
	for _, pm := range PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}
