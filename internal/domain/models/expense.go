package models

import "time"

// ExpenseCategory enumerates operating expense buckets.
type ExpenseCategory string

const (
	ExpenseRent      ExpenseCategory = "Rent"
	ExpenseUtilities ExpenseCategory = "Utilities"
	ExpenseMarketing ExpenseCategory = "Marketing"
	ExpenseStaff     ExpenseCategory = "Staff"
	ExpenseOther     ExpenseCategory = "Other"
)

// Valid reports whether the category is a known expense bucket.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseRent, ExpenseUtilities, ExpenseMarketing, ExpenseStaff, ExpenseOther:
		return true
	}
	return false
}

// Expense is an operating cost charged against gross profit.
type Expense struct {
	ID          string          `bson:"_id" json:"id"`
	Description string          `bson:"description" json:"description"`
	Amount      int64           `bson:"amount" json:"amount"`
	Category    ExpenseCategory `bson:"category" json:"category"`
	Date        time.Time       `bson:"date" json:"date"`
}
