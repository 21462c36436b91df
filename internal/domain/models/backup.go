package models

import "time"

// Backup is the JSON interchange shape for full exports and restores.
// Collection fields are pointers so a restore can distinguish "key absent,
// leave the collection alone" from "key present with an empty array, wipe it".
type Backup struct {
	Products       *[]Product          `json:"products,omitempty"`
	Orders         *[]Order            `json:"orders,omitempty"`
	Expenses       *[]Expense          `json:"expenses,omitempty"`
	StockPurchases *[]StockPurchase    `json:"stockPurchases,omitempty"`
	Withdrawals    *[]Withdrawal       `json:"withdrawals,omitempty"`
	Injections     *[]CapitalInjection `json:"injections,omitempty"`
	ExportDate     time.Time           `json:"exportDate"`
}
