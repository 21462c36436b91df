package models

import "time"

// StockPurchase records capital spent restocking inventory.
type StockPurchase struct {
	ID          string    `bson:"_id" json:"id"`
	Description string    `bson:"description" json:"description"`
	Amount      int64     `bson:"amount" json:"amount"`
	Date        time.Time `bson:"date" json:"date"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}

// Withdrawal records an owner's personal draw against accumulated profit.
type Withdrawal struct {
	ID        string    `bson:"_id" json:"id"`
	Amount    int64     `bson:"amount" json:"amount"`
	Date      time.Time `bson:"date" json:"date"`
	Note      string    `bson:"note" json:"note"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// CapitalInjection records fresh capital added to the business.
type CapitalInjection struct {
	ID        string    `bson:"_id" json:"id"`
	Amount    int64     `bson:"amount" json:"amount"`
	Date      time.Time `bson:"date" json:"date"`
	Source    string    `bson:"source" json:"source"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// CapitalEntryKind discriminates rows in the merged capital audit trail.
type CapitalEntryKind string

const (
	EntryStockPurchase CapitalEntryKind = "stock_purchase"
	EntryWithdrawal    CapitalEntryKind = "withdrawal"
	EntryInjection     CapitalEntryKind = "injection"
)

// CapitalEntry is one row of the audit trail: a stock purchase, withdrawal or
// injection flattened into a common shape with an explicit kind tag.
type CapitalEntry struct {
	Kind      CapitalEntryKind `json:"kind"`
	ID        string           `json:"id"`
	Label     string           `json:"label"`
	Amount    int64            `json:"amount"`
	Date      time.Time        `json:"date"`
	CreatedAt time.Time        `json:"createdAt"`
}
