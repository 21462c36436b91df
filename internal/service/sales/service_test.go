package sales

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssemanda/boutique/internal/domain/models"
	"github.com/ssemanda/boutique/internal/repository/memory"
	"github.com/ssemanda/boutique/internal/service/alerts"
)

var testNow = time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, store *memory.Store, notifier alerts.Notifier) *Service {
	t.Helper()
	svc := NewService(store, notifier, nil, nil)
	svc.now = func() time.Time { return testNow }
	ids := 0
	svc.newID = func() string {
		ids++
		return fmt.Sprintf("id-%d", ids)
	}
	return svc
}

func seedToteBag(t *testing.T, store *memory.Store, quantity int) {
	t.Helper()
	err := store.InsertProduct(context.Background(), models.Product{
		ID: "p1", Name: "Tote Bag", Category: models.CategoryBags,
		Quantity: quantity, CostPrice: 20000, SellPrice: 50000,
	})
	require.NoError(t, err)
}

func TestRecordSale(t *testing.T) {
	store := memory.NewStore()
	seedToteBag(t, store, 10)
	svc := newTestService(t, store, nil)

	order, err := svc.RecordSale(context.Background(), "Tote Bag", 3)
	require.NoError(t, err)

	assert.Equal(t, "Tote Bag", order.ProductName)
	assert.Equal(t, 3, order.Quantity)
	assert.Equal(t, int64(150000), order.TotalAmount)
	assert.Equal(t, models.OrderPaid, order.Status)
	assert.Equal(t, testNow, order.Date)

	products, err := store.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 7, products[0].Quantity)

	orders, err := store.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
}

func TestRecordSaleNameMatchingIsForgiving(t *testing.T) {
	store := memory.NewStore()
	seedToteBag(t, store, 10)
	svc := newTestService(t, store, nil)

	order, err := svc.RecordSale(context.Background(), "  tote   BAG ", 1)
	require.NoError(t, err)
	// The stored order carries the canonical product name.
	assert.Equal(t, "Tote Bag", order.ProductName)
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	store := memory.NewStore()
	seedToteBag(t, store, 7)
	svc := newTestService(t, store, nil)

	_, err := svc.RecordSale(context.Background(), "Tote Bag", 8)
	require.ErrorIs(t, err, models.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "7")

	// A rejected sale writes nothing.
	products, err := store.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, products[0].Quantity)

	orders, err := store.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestRecordSaleUnknownProduct(t *testing.T) {
	store := memory.NewStore()
	seedToteBag(t, store, 7)
	svc := newTestService(t, store, nil)

	_, err := svc.RecordSale(context.Background(), "Ballet Flats", 1)
	require.ErrorIs(t, err, models.ErrProductNotFound)

	orders, err := store.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestRecordSaleRejectsNonPositiveQuantity(t *testing.T) {
	store := memory.NewStore()
	seedToteBag(t, store, 7)
	svc := newTestService(t, store, nil)

	_, err := svc.RecordSale(context.Background(), "Tote Bag", 0)
	require.ErrorIs(t, err, ErrInvalidArguments)
}

type capturingNotifier struct {
	alerts []alerts.StockAlert
}

func (n *capturingNotifier) NotifyStockAlert(_ context.Context, alert alerts.StockAlert) error {
	n.alerts = append(n.alerts, alert)
	return nil
}

func TestRecordSaleEmitsStockAlerts(t *testing.T) {
	tests := []struct {
		name         string
		startQty     int
		sellQty      int
		wantAlert    bool
		wantSeverity string
	}{
		{"ample stock left", 20, 3, false, ""},
		{"drops below restock threshold", 7, 3, true, alerts.SeverityLow},
		{"drops below critical threshold", 7, 5, true, alerts.SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			seedToteBag(t, store, tt.startQty)
			notifier := &capturingNotifier{}
			svc := newTestService(t, store, notifier)

			_, err := svc.RecordSale(context.Background(), "Tote Bag", tt.sellQty)
			require.NoError(t, err)

			if !tt.wantAlert {
				assert.Empty(t, notifier.alerts)
				return
			}
			require.Len(t, notifier.alerts, 1)
			assert.Equal(t, tt.wantSeverity, notifier.alerts[0].Severity)
			assert.Equal(t, tt.startQty-tt.sellQty, notifier.alerts[0].Remaining)
		})
	}
}

func TestAddProductValidation(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(t, store, nil)

	tests := []struct {
		name    string
		product models.Product
	}{
		{"blank name", models.Product{Name: "   ", Category: models.CategoryBags}},
		{"unknown category", models.Product{Name: "Scarf", Category: "Hats"}},
		{"negative quantity", models.Product{Name: "Scarf", Category: models.CategoryAccessories, Quantity: -1}},
		{"negative price", models.Product{Name: "Scarf", Category: models.CategoryAccessories, CostPrice: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddProduct(context.Background(), tt.product)
			require.ErrorIs(t, err, ErrInvalidArguments)
		})
	}
}

func TestAddProductAssignsID(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(t, store, nil)

	product, err := svc.AddProduct(context.Background(), models.Product{
		Name: "Silk Scarf", Category: models.CategoryAccessories, Quantity: 5, CostPrice: 8000, SellPrice: 15000,
	})
	require.NoError(t, err)
	assert.Equal(t, "id-1", product.ID)
}

func TestReplaceProductKeepsRecordPresent(t *testing.T) {
	store := memory.NewStore()
	seedToteBag(t, store, 10)
	svc := newTestService(t, store, nil)

	updated := models.Product{
		ID: "p1", Name: "Tote Bag XL", Category: models.CategoryBags,
		Quantity: 10, CostPrice: 25000, SellPrice: 60000,
	}
	require.NoError(t, svc.ReplaceProduct(context.Background(), updated))

	products, err := store.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, updated, products[0])
}
