package models

import "time"

type Customer struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Points      float64   `json:"points"`
	TotalSpend  float64   `json:"totalSpend"`
	TotalOrders int       `json:"totalOrders"`
	CreatedAt   time.Time `json:"createdAt"`
}
