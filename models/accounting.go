package models

import "time"

const (
	EntryTypeIncome  = "INCOME"
	EntryTypeExpense = "EXPENSE"
)

type AccountingEntry struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	BranchID    string    `json:"branchId"`
}
