package models

import "strings"

// ProductCategory enumerates the boutique's product lines.
type ProductCategory string

const (
	CategoryBags        ProductCategory = "Bags"
	CategoryShoes       ProductCategory = "Shoes"
	CategoryAccessories ProductCategory = "Accessories"
)

// Valid reports whether the category is one of the known product lines.
func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryBags, CategoryShoes, CategoryAccessories:
		return true
	}
	return false
}

// Stock alert policy thresholds. A product with quantity below
// LowStockThreshold is flagged low; below CriticalStockThreshold it counts
// toward the critical alert aggregate.
const (
	LowStockThreshold      = 5
	CriticalStockThreshold = 3
)

// Product is a sellable inventory item. Amounts are whole UGX.
// Quantity is only ever mutated by the conditional decrement issued on a sale.
type Product struct {
	ID        string          `bson:"_id" json:"id"`
	Name      string          `bson:"name" json:"name"`
	Category  ProductCategory `bson:"category" json:"category"`
	Quantity  int             `bson:"quantity" json:"quantity"`
	CostPrice int64           `bson:"cost_price" json:"costPrice"`
	SellPrice int64           `bson:"sell_price" json:"sellPrice"`
}

// LowStock reports whether the product should be surfaced on the restock list.
func (p Product) LowStock() bool { return p.Quantity < LowStockThreshold }

// CriticalStock reports whether the product triggers the critical alert.
func (p Product) CriticalStock() bool { return p.Quantity < CriticalStockThreshold }

// NormalizeName collapses case and interior whitespace so order rows can be
// matched against product names the way they were entered by hand.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
