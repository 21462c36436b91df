package backup

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssemanda/boutique/internal/domain/models"
	"github.com/ssemanda/boutique/internal/repository/memory"
	"github.com/ssemanda/boutique/internal/service/ledger"
)

func seedStore(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.InsertProduct(ctx, models.Product{
		ID: "p1", Name: "Tote Bag", Category: models.CategoryBags,
		Quantity: 7, CostPrice: 20000, SellPrice: 50000,
	}))
	require.NoError(t, store.RecordSale(ctx, "p1", 3, models.Order{
		ID: "o1", ProductName: "Tote Bag", Quantity: 3, TotalAmount: 150000,
		Date: time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), Status: models.OrderPaid,
	}))
	require.NoError(t, store.InsertExpense(ctx, models.Expense{
		ID: "e1", Description: "May rent", Amount: 30000, Category: models.ExpenseRent,
	}))
	require.NoError(t, store.InsertStockPurchase(ctx, models.StockPurchase{ID: "s1", Description: "Restock", Amount: 40000}))
	require.NoError(t, store.InsertWithdrawal(ctx, models.Withdrawal{ID: "w1", Amount: 20000, Note: "Personal Use"}))
	require.NoError(t, store.InsertInjection(ctx, models.CapitalInjection{ID: "i1", Amount: 100000, Source: "Savings"}))
}

func TestBackupRoundTripPreservesLedgerTotals(t *testing.T) {
	ctx := context.Background()
	source := memory.NewStore()
	seedStore(t, source)

	exported, err := NewService(source, nil).Export(ctx)
	require.NoError(t, err)
	payload, err := json.Marshal(exported)
	require.NoError(t, err)

	target := memory.NewStore()
	require.NoError(t, NewService(target, nil).Import(ctx, payload))

	sourceSnap, err := source.Snapshot(ctx)
	require.NoError(t, err)
	targetSnap, err := target.Snapshot(ctx)
	require.NoError(t, err)

	before := ledger.Compute(sourceSnap)
	after := ledger.Compute(targetSnap)

	assert.Equal(t, before.TotalRevenue.String(), after.TotalRevenue.String())
	assert.Equal(t, before.NetProfit.String(), after.NetProfit.String())
	assert.Equal(t, before.TotalBusinessValue.String(), after.TotalBusinessValue.String())
	assert.Equal(t, before.PersonalBalance.String(), after.PersonalBalance.String())
	assert.Equal(t, before.CurrentCapitalBalance.String(), after.CurrentCapitalBalance.String())
}

func TestImportMalformedPayloadLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedStore(t, store)
	svc := NewService(store, nil)

	err := svc.Import(ctx, []byte(`{"products": [{`))
	require.ErrorIs(t, err, models.ErrImportFailed)

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 4, products[0].Quantity)
}

func TestImportRejectsNegativeValues(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedStore(t, store)
	svc := NewService(store, nil)

	err := svc.Import(ctx, []byte(`{"products": [{"id":"x","name":"Bad","category":"Bags","quantity":-2}]}`))
	require.ErrorIs(t, err, models.ErrImportFailed)

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Tote Bag", products[0].Name)
}

func TestImportReplacesOnlyPresentKeys(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedStore(t, store)
	svc := NewService(store, nil)

	payload := `{"products": [{"id":"np1","name":"Heels","category":"Shoes","quantity":6,"costPrice":30000,"sellPrice":70000}]}`
	require.NoError(t, svc.Import(ctx, []byte(payload)))

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Heels", products[0].Name)

	// Absent keys leave their collections alone.
	orders, err := store.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	expenses, err := store.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
}

func TestImportWithEmptyArrayWipesCollection(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedStore(t, store)
	svc := NewService(store, nil)

	require.NoError(t, svc.Import(ctx, []byte(`{"expenses": []}`)))

	expenses, err := store.ListExpenses(ctx)
	require.NoError(t, err)
	assert.Empty(t, expenses)
}

func TestExportSalesCSVFormat(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	require.NoError(t, store.InsertProduct(ctx, models.Product{
		ID: "p1", Name: "Clutch, Red", Category: models.CategoryBags,
		Quantity: 5, CostPrice: 10000, SellPrice: 25000,
	}))
	require.NoError(t, store.RecordSale(ctx, "p1", 2, models.Order{
		ID: "o1", ProductName: "Clutch, Red", Quantity: 2, TotalAmount: 50000,
		Date: time.Date(2025, 5, 21, 0, 0, 0, 0, time.UTC), Status: models.OrderPaid,
	}))

	report, err := NewService(store, nil).ExportSalesCSV(ctx)
	require.NoError(t, err)

	// Fields are comma-joined with no escaping, embedded commas included.
	want := "Date,Product Name,Quantity,Total Amount (UGX),Status\n" +
		"2025-05-21,Clutch, Red,2,50000,Paid"
	assert.Equal(t, want, report)
}

func TestExportStampsExportDate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewService(store, nil)
	fixed := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	exported, err := svc.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, fixed, exported.ExportDate)
	require.NotNil(t, exported.Products)
	require.NotNil(t, exported.Orders)
}
