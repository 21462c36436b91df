// Package finance implements the capital-side mutations: expenses, stock
// purchases, owner withdrawals and capital injections.
package finance

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ssemanda/boutique/internal/domain/models"
	"github.com/ssemanda/boutique/internal/repository"
	"github.com/ssemanda/boutique/internal/service/ledger"
)

// ErrInvalidArguments indicates the request payload failed validation.
var ErrInvalidArguments = errors.New("invalid arguments")

// Default labels applied when the user leaves the free-text field blank.
const (
	defaultPurchaseLabel  = "Restock"
	defaultWithdrawalNote = "Personal Use"
	defaultInjectionLabel = "Owner Contribution"
)

// Service implements the finance mutations and the capital audit trail.
type Service struct {
	store  repository.Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService constructs a finance service.
func NewService(store repository.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// AddExpense records an operating expense.
func (s *Service) AddExpense(ctx context.Context, description string, amount int64, category models.ExpenseCategory) (models.Expense, error) {
	if amount <= 0 {
		return models.Expense{}, fmt.Errorf("%w: amount must be positive", ErrInvalidArguments)
	}
	if !category.Valid() {
		return models.Expense{}, fmt.Errorf("%w: unknown expense category %q", ErrInvalidArguments, category)
	}

	expense := models.Expense{
		ID:          s.newID(),
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        s.now().UTC(),
	}
	if err := s.store.InsertExpense(ctx, expense); err != nil {
		return models.Expense{}, err
	}
	return expense, nil
}

// DeleteExpense removes an expense by id.
func (s *Service) DeleteExpense(ctx context.Context, id string) error {
	return s.store.DeleteExpense(ctx, id)
}

// ListExpenses returns all expenses.
func (s *Service) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	return s.store.ListExpenses(ctx)
}

// AddStockPurchase records capital spent on restocking.
func (s *Service) AddStockPurchase(ctx context.Context, description string, amount int64) (models.StockPurchase, error) {
	if amount <= 0 {
		return models.StockPurchase{}, fmt.Errorf("%w: amount must be positive", ErrInvalidArguments)
	}
	if description == "" {
		description = defaultPurchaseLabel
	}

	now := s.now().UTC()
	purchase := models.StockPurchase{
		ID:          s.newID(),
		Description: description,
		Amount:      amount,
		Date:        now,
		CreatedAt:   now,
	}
	if err := s.store.InsertStockPurchase(ctx, purchase); err != nil {
		return models.StockPurchase{}, err
	}
	return purchase, nil
}

// Withdraw records an owner draw. The request is rejected when the amount
// exceeds the personal balance derived from the freshest snapshot.
func (s *Service) Withdraw(ctx context.Context, amount int64, note string) (models.Withdrawal, error) {
	if amount <= 0 {
		return models.Withdrawal{}, fmt.Errorf("%w: amount must be positive", ErrInvalidArguments)
	}

	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return models.Withdrawal{}, err
	}
	balance := ledger.Compute(snap).PersonalBalance
	if decimal.NewFromInt(amount).GreaterThan(balance) {
		return models.Withdrawal{}, fmt.Errorf("%w: balance is %s", models.ErrInsufficientBalance, balance)
	}

	if note == "" {
		note = defaultWithdrawalNote
	}
	now := s.now().UTC()
	withdrawal := models.Withdrawal{
		ID:        s.newID(),
		Amount:    amount,
		Date:      now,
		Note:      note,
		CreatedAt: now,
	}
	if err := s.store.InsertWithdrawal(ctx, withdrawal); err != nil {
		return models.Withdrawal{}, err
	}

	s.logger.Info("withdrawal recorded", zap.Int64("amount", amount), zap.String("note", note))
	return withdrawal, nil
}

// AddInjection records fresh capital added to the business.
func (s *Service) AddInjection(ctx context.Context, amount int64, source string) (models.CapitalInjection, error) {
	if amount <= 0 {
		return models.CapitalInjection{}, fmt.Errorf("%w: amount must be positive", ErrInvalidArguments)
	}
	if source == "" {
		source = defaultInjectionLabel
	}

	now := s.now().UTC()
	injection := models.CapitalInjection{
		ID:        s.newID(),
		Amount:    amount,
		Date:      now,
		Source:    source,
		CreatedAt: now,
	}
	if err := s.store.InsertInjection(ctx, injection); err != nil {
		return models.CapitalInjection{}, err
	}
	return injection, nil
}

// ListStockPurchases returns all stock purchases.
func (s *Service) ListStockPurchases(ctx context.Context) ([]models.StockPurchase, error) {
	return s.store.ListStockPurchases(ctx)
}

// ListWithdrawals returns all withdrawals.
func (s *Service) ListWithdrawals(ctx context.Context) ([]models.Withdrawal, error) {
	return s.store.ListWithdrawals(ctx)
}

// ListInjections returns all capital injections.
func (s *Service) ListInjections(ctx context.Context) ([]models.CapitalInjection, error) {
	return s.store.ListInjections(ctx)
}

// AuditTrail merges the three capital ledgers into one feed, tagged by kind,
// newest first.
func (s *Service) AuditTrail(ctx context.Context) ([]models.CapitalEntry, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]models.CapitalEntry, 0, len(snap.StockPurchases)+len(snap.Withdrawals)+len(snap.Injections))
	for _, p := range snap.StockPurchases {
		entries = append(entries, models.CapitalEntry{
			Kind: models.EntryStockPurchase, ID: p.ID, Label: p.Description,
			Amount: p.Amount, Date: p.Date, CreatedAt: p.CreatedAt,
		})
	}
	for _, w := range snap.Withdrawals {
		entries = append(entries, models.CapitalEntry{
			Kind: models.EntryWithdrawal, ID: w.ID, Label: w.Note,
			Amount: w.Amount, Date: w.Date, CreatedAt: w.CreatedAt,
		})
	}
	for _, i := range snap.Injections {
		entries = append(entries, models.CapitalEntry{
			Kind: models.EntryInjection, ID: i.ID, Label: i.Source,
			Amount: i.Amount, Date: i.Date, CreatedAt: i.CreatedAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}
