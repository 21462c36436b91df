package models

// Snapshot is a point-in-time read of all six record collections. The ledger
// derives every financial figure from one of these; it never reads the store
// piecemeal.
type Snapshot struct {
	Products       []Product
	Orders         []Order
	Expenses       []Expense
	StockPurchases []StockPurchase
	Withdrawals    []Withdrawal
	Injections     []CapitalInjection
}

// ProductsByName indexes products by their normalized name for order matching.
// When two products normalize to the same name the first one wins.
func (s Snapshot) ProductsByName() map[string]Product {
	byName := make(map[string]Product, len(s.Products))
	for _, p := range s.Products {
		key := NormalizeName(p.Name)
		if _, ok := byName[key]; !ok {
			byName[key] = p
		}
	}
	return byName
}
