package models

import "time"

// LedgerSnapshot is the nightly derived aggregate persisted for trend queries.
// It is rebuildable from the raw collections and carries no authority of its
// own.
type LedgerSnapshot struct {
	Date               time.Time `bson:"date" json:"date"`
	TotalRevenue       int64     `bson:"total_revenue" json:"totalRevenue"`
	GrossProfit        float64   `bson:"gross_profit" json:"grossProfit"`
	NetProfit          float64   `bson:"net_profit" json:"netProfit"`
	TotalExpenses      int64     `bson:"total_expenses" json:"totalExpenses"`
	PersonalBalance    float64   `bson:"personal_balance" json:"personalBalance"`
	CapitalBalance     float64   `bson:"capital_balance" json:"capitalBalance"`
	InventoryValue     int64     `bson:"inventory_value" json:"inventoryValue"`
	TotalBusinessValue float64   `bson:"total_business_value" json:"totalBusinessValue"`
	StockUnits         int       `bson:"stock_units" json:"stockUnits"`
	CreatedAt          time.Time `bson:"created_at" json:"createdAt"`
}
