// Package memory provides a dependency-free Store used by tests and by the
// memory store driver for local evaluation. All compound writes are serialized
// under one mutex, which gives the same atomicity the MongoDB store gets from
// transactions.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/ssemanda/boutique/internal/domain/models"
	"github.com/ssemanda/boutique/internal/repository"
)

// Store is a mutex-guarded in-memory implementation of repository.Store.
// Records keep insertion order, matching collection scan order in MongoDB.
type Store struct {
	mu             sync.RWMutex
	products       []models.Product
	orders         []models.Order
	expenses       []models.Expense
	stockPurchases []models.StockPurchase
	withdrawals    []models.Withdrawal
	injections     []models.CapitalInjection
	snapshots      []models.LedgerSnapshot
}

var _ repository.Store = (*Store)(nil)

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) Snapshot(_ context.Context) (models.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.Snapshot{
		Products:       clone(s.products),
		Orders:         clone(s.orders),
		Expenses:       clone(s.expenses),
		StockPurchases: clone(s.stockPurchases),
		Withdrawals:    clone(s.withdrawals),
		Injections:     clone(s.injections),
	}, nil
}

func (s *Store) ListProducts(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.products), nil
}

func (s *Store) InsertProduct(_ context.Context, p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
	return nil
}

func (s *Store) ReplaceProduct(_ context.Context, p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = p
			return nil
		}
	}
	s.products = append(s.products, p)
	return nil
}

func (s *Store) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = deleteByID(s.products, id, func(p models.Product) string { return p.ID })
	return nil
}

func (s *Store) ListOrders(_ context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.orders), nil
}

// RecordSale applies the conditional decrement and the order insert under one
// lock; a concurrent sale that would overdraw the stock fails without writing.
func (s *Store) RecordSale(_ context.Context, productID string, quantity int, order models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID != productID {
			continue
		}
		if s.products[i].Quantity < quantity {
			return fmt.Errorf("%w: %d available", models.ErrInsufficientStock, s.products[i].Quantity)
		}
		s.products[i].Quantity -= quantity
		s.orders = append(s.orders, order)
		return nil
	}
	return models.ErrInsufficientStock
}

func (s *Store) ListExpenses(_ context.Context) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.expenses), nil
}

func (s *Store) InsertExpense(_ context.Context, e models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, e)
	return nil
}

func (s *Store) DeleteExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = deleteByID(s.expenses, id, func(e models.Expense) string { return e.ID })
	return nil
}

func (s *Store) ListStockPurchases(_ context.Context) ([]models.StockPurchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.stockPurchases), nil
}

func (s *Store) InsertStockPurchase(_ context.Context, p models.StockPurchase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stockPurchases = append(s.stockPurchases, p)
	return nil
}

func (s *Store) ListWithdrawals(_ context.Context) ([]models.Withdrawal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.withdrawals), nil
}

func (s *Store) InsertWithdrawal(_ context.Context, w models.Withdrawal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.withdrawals = append(s.withdrawals, w)
	return nil
}

func (s *Store) ListInjections(_ context.Context) ([]models.CapitalInjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.injections), nil
}

func (s *Store) InsertInjection(_ context.Context, i models.CapitalInjection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.injections = append(s.injections, i)
	return nil
}

func (s *Store) Restore(_ context.Context, backup models.Backup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if backup.Products != nil {
		s.products = clone(*backup.Products)
	}
	if backup.Orders != nil {
		s.orders = clone(*backup.Orders)
	}
	if backup.Expenses != nil {
		s.expenses = clone(*backup.Expenses)
	}
	if backup.StockPurchases != nil {
		s.stockPurchases = clone(*backup.StockPurchases)
	}
	if backup.Withdrawals != nil {
		s.withdrawals = clone(*backup.Withdrawals)
	}
	if backup.Injections != nil {
		s.injections = clone(*backup.Injections)
	}
	return nil
}

func (s *Store) SaveLedgerSnapshot(_ context.Context, snap models.LedgerSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, snap)
	return nil
}

// LedgerSnapshots returns the persisted nightly aggregates, oldest first.
func (s *Store) LedgerSnapshots() []models.LedgerSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.snapshots)
}

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func deleteByID[T any](in []T, id string, idOf func(T) string) []T {
	out := in[:0]
	for _, r := range in {
		if idOf(r) != id {
			out = append(out, r)
		}
	}
	return out
}
