package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssemanda/boutique/internal/domain/models"
)

func TestConcurrentSalesNeverOverdrawStock(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.InsertProduct(ctx, models.Product{
		ID: "p1", Name: "Tote Bag", Category: models.CategoryBags,
		Quantity: 10, CostPrice: 20000, SellPrice: 50000,
	}))

	const attempts = 25
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			order := models.Order{ID: fmt.Sprintf("o%d", i), ProductName: "Tote Bag", Quantity: 1, TotalAmount: 50000}
			results <- store.RecordSale(ctx, "p1", 1, order)
		}(i)
	}
	wg.Wait()
	close(results)

	var accepted, rejected int
	for err := range results {
		if err == nil {
			accepted++
		} else {
			require.ErrorIs(t, err, models.ErrInsufficientStock)
			rejected++
		}
	}

	assert.Equal(t, 10, accepted)
	assert.Equal(t, attempts-10, rejected)

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, products[0].Quantity)

	orders, err := store.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 10)
}

func TestRecordSaleUnknownProductWritesNothing(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	err := store.RecordSale(ctx, "missing", 1, models.Order{ID: "o1"})
	require.ErrorIs(t, err, models.ErrInsufficientStock)

	orders, err := store.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestSnapshotReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.InsertProduct(ctx, models.Product{ID: "p1", Name: "Tote Bag", Quantity: 5}))

	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)
	snap.Products[0].Quantity = 999

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, products[0].Quantity)
}

func TestReplaceProductUpsertsByID(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.ReplaceProduct(ctx, models.Product{ID: "p1", Name: "Heels", Quantity: 2}))
	require.NoError(t, store.ReplaceProduct(ctx, models.Product{ID: "p1", Name: "Heels", Quantity: 8}))

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 8, products[0].Quantity)
}

func TestDeleteByID(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.InsertExpense(ctx, models.Expense{ID: "e1", Amount: 100}))
	require.NoError(t, store.InsertExpense(ctx, models.Expense{ID: "e2", Amount: 200}))

	require.NoError(t, store.DeleteExpense(ctx, "e1"))

	expenses, err := store.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "e2", expenses[0].ID)
}
