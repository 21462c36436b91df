package repository

import (
	"context"

	"github.com/ssemanda/boutique/internal/domain/models"
)

// Store is the record-store contract: six independent collections with
// create/read/delete per entity, one compound sale write, and a wholesale
// restore. Implementations must apply RecordSale and Restore atomically; no
// partial state may be visible to readers.
type Store interface {
	// Snapshot reads all six collections at once for ledger derivation.
	Snapshot(ctx context.Context) (models.Snapshot, error)

	ListProducts(ctx context.Context) ([]models.Product, error)
	InsertProduct(ctx context.Context, p models.Product) error
	// ReplaceProduct swaps the stored product keyed by id in one write, so an
	// edit never leaves a window where the record does not exist.
	ReplaceProduct(ctx context.Context, p models.Product) error
	DeleteProduct(ctx context.Context, id string) error

	ListOrders(ctx context.Context) ([]models.Order, error)
	// RecordSale inserts the order and conditionally decrements the product's
	// quantity as one atomic unit. It fails with models.ErrInsufficientStock
	// when the product no longer holds at least quantity units, in which case
	// nothing is written.
	RecordSale(ctx context.Context, productID string, quantity int, order models.Order) error

	ListExpenses(ctx context.Context) ([]models.Expense, error)
	InsertExpense(ctx context.Context, e models.Expense) error
	DeleteExpense(ctx context.Context, id string) error

	ListStockPurchases(ctx context.Context) ([]models.StockPurchase, error)
	InsertStockPurchase(ctx context.Context, p models.StockPurchase) error

	ListWithdrawals(ctx context.Context) ([]models.Withdrawal, error)
	InsertWithdrawal(ctx context.Context, w models.Withdrawal) error

	ListInjections(ctx context.Context) ([]models.CapitalInjection, error)
	InsertInjection(ctx context.Context, i models.CapitalInjection) error

	// Restore replaces the contents of every collection present in the backup
	// and leaves absent collections untouched. Present keys are replaced
	// wholesale, never merged.
	Restore(ctx context.Context, backup models.Backup) error

	// SaveLedgerSnapshot appends a derived nightly aggregate.
	SaveLedgerSnapshot(ctx context.Context, snap models.LedgerSnapshot) error
}
