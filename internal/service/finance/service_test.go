package finance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssemanda/boutique/internal/domain/models"
	"github.com/ssemanda/boutique/internal/repository/memory"
)

func newTestService(t *testing.T, store *memory.Store) *Service {
	t.Helper()
	svc := NewService(store, nil)
	clock := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	ids := 0
	svc.newID = func() string {
		ids++
		return fmt.Sprintf("id-%d", ids)
	}
	return svc
}

// seedProfit gives the store a 90000 net profit: one sale of three tote bags
// at 50000 each against a 20000 cost price.
func seedProfit(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.InsertProduct(ctx, models.Product{
		ID: "p1", Name: "Tote Bag", Category: models.CategoryBags,
		Quantity: 7, CostPrice: 20000, SellPrice: 50000,
	}))
	require.NoError(t, store.RecordSale(ctx, "p1", 3, models.Order{
		ID: "o1", ProductName: "Tote Bag", Quantity: 3, TotalAmount: 150000, Status: models.OrderPaid,
	}))
}

func TestWithdrawAgainstPersonalBalance(t *testing.T) {
	store := memory.NewStore()
	seedProfit(t, store)
	svc := newTestService(t, store)
	ctx := context.Background()

	// Balance is 90000: a 100000 draw is refused and writes nothing.
	_, err := svc.Withdraw(ctx, 100000, "")
	require.ErrorIs(t, err, models.ErrInsufficientBalance)
	withdrawals, err := store.ListWithdrawals(ctx)
	require.NoError(t, err)
	assert.Empty(t, withdrawals)

	w, err := svc.Withdraw(ctx, 50000, "")
	require.NoError(t, err)
	assert.Equal(t, "Personal Use", w.Note)

	// Balance is now 40000.
	_, err = svc.Withdraw(ctx, 50000, "school fees")
	require.ErrorIs(t, err, models.ErrInsufficientBalance)

	_, err = svc.Withdraw(ctx, 40000, "school fees")
	require.NoError(t, err)
}

func TestWithdrawRejectsNonPositiveAmount(t *testing.T) {
	svc := newTestService(t, memory.NewStore())

	_, err := svc.Withdraw(context.Background(), 0, "")
	require.ErrorIs(t, err, ErrInvalidArguments)
}

func TestAddExpenseValidation(t *testing.T) {
	svc := newTestService(t, memory.NewStore())
	ctx := context.Background()

	_, err := svc.AddExpense(ctx, "paint", 10000, "Decor")
	require.ErrorIs(t, err, ErrInvalidArguments)

	_, err = svc.AddExpense(ctx, "rent", -5, models.ExpenseRent)
	require.ErrorIs(t, err, ErrInvalidArguments)

	expense, err := svc.AddExpense(ctx, "June rent", 300000, models.ExpenseRent)
	require.NoError(t, err)
	assert.Equal(t, int64(300000), expense.Amount)
}

func TestDefaultLabels(t *testing.T) {
	store := memory.NewStore()
	seedProfit(t, store)
	svc := newTestService(t, store)
	ctx := context.Background()

	purchase, err := svc.AddStockPurchase(ctx, "", 10000)
	require.NoError(t, err)
	assert.Equal(t, "Restock", purchase.Description)

	injection, err := svc.AddInjection(ctx, 50000, "")
	require.NoError(t, err)
	assert.Equal(t, "Owner Contribution", injection.Source)
}

func TestAuditTrailMergesLedgersNewestFirst(t *testing.T) {
	store := memory.NewStore()
	seedProfit(t, store)
	svc := newTestService(t, store)
	ctx := context.Background()

	// The injected clock ticks one minute per call, so creation order is
	// purchase, withdrawal, injection.
	_, err := svc.AddStockPurchase(ctx, "leather batch", 25000)
	require.NoError(t, err)
	_, err = svc.Withdraw(ctx, 10000, "transport")
	require.NoError(t, err)
	_, err = svc.AddInjection(ctx, 500000, "Savings")
	require.NoError(t, err)

	entries, err := svc.AuditTrail(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, models.EntryInjection, entries[0].Kind)
	assert.Equal(t, "Savings", entries[0].Label)
	assert.Equal(t, models.EntryWithdrawal, entries[1].Kind)
	assert.Equal(t, "transport", entries[1].Label)
	assert.Equal(t, models.EntryStockPurchase, entries[2].Kind)
	assert.Equal(t, "leather batch", entries[2].Label)
}
