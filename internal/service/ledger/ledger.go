// Package ledger derives every financial figure from a snapshot of the raw
// record collections. All derivations are pure and idempotent; recomputing on
// every read is the consistency model, there is no cached state to invalidate.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ssemanda/boutique/internal/domain/models"
)

// fallbackCostRatio approximates unit cost as 60% of unit price when an
// order's originating product no longer exists (renamed or deleted). The
// ratio is a deliberate business policy, not a placeholder.
var fallbackCostRatio = decimal.New(6, -1)

var oneHundred = decimal.NewFromInt(100)

// Summary carries every derived figure the dashboards render. Amounts are
// exact decimals in whole UGX.
type Summary struct {
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalExpenses   decimal.Decimal `json:"totalExpenses"`
	TotalStockUnits int             `json:"totalStockUnits"`

	GrossProfit decimal.Decimal `json:"grossProfit"`
	NetProfit   decimal.Decimal `json:"netProfit"`

	TotalStockSpend decimal.Decimal `json:"totalStockSpend"`
	TotalWithdrawn  decimal.Decimal `json:"totalWithdrawn"`
	TotalInjected   decimal.Decimal `json:"totalInjected"`

	PersonalBalance       decimal.Decimal `json:"personalBalance"`
	CapitalToReplenish    decimal.Decimal `json:"capitalToReplenish"`
	CurrentCapitalBalance decimal.Decimal `json:"currentCapitalBalance"`

	InventoryAssetValue  decimal.Decimal `json:"inventoryAssetValue"`
	InventoryRetailValue decimal.Decimal `json:"inventoryRetailValue"`
	TotalBusinessValue   decimal.Decimal `json:"totalBusinessValue"`

	GrossMarginPct  decimal.Decimal `json:"grossMarginPct"`
	ExpenseRatioPct decimal.Decimal `json:"expenseRatioPct"`

	LowStockCount      int `json:"lowStockCount"`
	CriticalStockCount int `json:"criticalStockCount"`
}

// UnitCost resolves the per-unit cost of an order. It uses the matching
// product's cost price when the product still exists; otherwise it assumes
// cost was 60% of the realized unit price.
func UnitCost(order models.Order, productsByName map[string]models.Product) decimal.Decimal {
	if p, ok := productsByName[models.NormalizeName(order.ProductName)]; ok {
		return decimal.NewFromInt(p.CostPrice)
	}
	if order.Quantity <= 0 {
		return decimal.Zero
	}
	unitPrice := decimal.NewFromInt(order.TotalAmount).Div(decimal.NewFromInt(int64(order.Quantity)))
	return unitPrice.Mul(fallbackCostRatio)
}

// Compute derives the full summary from one snapshot.
func Compute(snap models.Snapshot) Summary {
	byName := snap.ProductsByName()

	var sum Summary
	revenue := decimal.Zero
	gross := decimal.Zero
	for _, o := range snap.Orders {
		total := decimal.NewFromInt(o.TotalAmount)
		revenue = revenue.Add(total)

		cost := UnitCost(o, byName)
		if o.Quantity > 0 {
			gross = gross.Add(total.Sub(cost.Mul(decimal.NewFromInt(int64(o.Quantity)))))
		} else {
			gross = gross.Add(total)
		}
	}

	expenses := decimal.Zero
	for _, e := range snap.Expenses {
		expenses = expenses.Add(decimal.NewFromInt(e.Amount))
	}
	stockSpend := decimal.Zero
	for _, p := range snap.StockPurchases {
		stockSpend = stockSpend.Add(decimal.NewFromInt(p.Amount))
	}
	withdrawn := decimal.Zero
	for _, w := range snap.Withdrawals {
		withdrawn = withdrawn.Add(decimal.NewFromInt(w.Amount))
	}
	injected := decimal.Zero
	for _, i := range snap.Injections {
		injected = injected.Add(decimal.NewFromInt(i.Amount))
	}

	assetValue := decimal.Zero
	retailValue := decimal.Zero
	for _, p := range snap.Products {
		qty := decimal.NewFromInt(int64(p.Quantity))
		assetValue = assetValue.Add(decimal.NewFromInt(p.CostPrice).Mul(qty))
		retailValue = retailValue.Add(decimal.NewFromInt(p.SellPrice).Mul(qty))
		sum.TotalStockUnits += p.Quantity
		if p.LowStock() {
			sum.LowStockCount++
		}
		if p.CriticalStock() {
			sum.CriticalStockCount++
		}
	}

	sum.TotalRevenue = revenue
	sum.TotalExpenses = expenses
	sum.GrossProfit = gross
	sum.NetProfit = gross.Sub(expenses)
	sum.TotalStockSpend = stockSpend
	sum.TotalWithdrawn = withdrawn
	sum.TotalInjected = injected
	sum.PersonalBalance = sum.NetProfit.Sub(withdrawn)

	// Capital bucket: cost of goods recovered from sales plus injected funds,
	// minus what has already gone back into stock.
	sum.CapitalToReplenish = revenue.Sub(gross).Add(injected)
	sum.CurrentCapitalBalance = sum.CapitalToReplenish.Sub(stockSpend)

	sum.InventoryAssetValue = assetValue
	sum.InventoryRetailValue = retailValue
	sum.TotalBusinessValue = sum.CurrentCapitalBalance.Add(assetValue).Add(sum.PersonalBalance)

	if revenue.IsPositive() {
		sum.GrossMarginPct = gross.Div(revenue).Mul(oneHundred)
		sum.ExpenseRatioPct = expenses.Div(revenue).Mul(oneHundred)
	} else {
		sum.GrossMarginPct = decimal.Zero
		sum.ExpenseRatioPct = decimal.Zero
	}

	return sum
}

// RecentOrders returns up to limit orders, newest first.
func RecentOrders(snap models.Snapshot, limit int) []models.Order {
	orders := make([]models.Order, len(snap.Orders))
	copy(orders, snap.Orders)
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	if len(orders) > limit {
		orders = orders[:limit]
	}
	return orders
}

// LowStockProducts returns products below the restock threshold.
func LowStockProducts(snap models.Snapshot) []models.Product {
	var low []models.Product
	for _, p := range snap.Products {
		if p.LowStock() {
			low = append(low, p)
		}
	}
	return low
}

// SnapshotAt flattens a summary into the persisted nightly aggregate shape.
func SnapshotAt(now time.Time, sum Summary) models.LedgerSnapshot {
	return models.LedgerSnapshot{
		Date:               now,
		TotalRevenue:       sum.TotalRevenue.IntPart(),
		GrossProfit:        sum.GrossProfit.InexactFloat64(),
		NetProfit:          sum.NetProfit.InexactFloat64(),
		TotalExpenses:      sum.TotalExpenses.IntPart(),
		PersonalBalance:    sum.PersonalBalance.InexactFloat64(),
		CapitalBalance:     sum.CurrentCapitalBalance.InexactFloat64(),
		InventoryValue:     sum.InventoryAssetValue.IntPart(),
		TotalBusinessValue: sum.TotalBusinessValue.InexactFloat64(),
		StockUnits:         sum.TotalStockUnits,
		CreatedAt:          now,
	}
}
