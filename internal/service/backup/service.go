// Package backup implements full-store export/restore and the sales CSV
// export.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ssemanda/boutique/internal/domain/models"
	"github.com/ssemanda/boutique/internal/repository"
)

// CSVHeader is the fixed header row of the sales export.
const CSVHeader = "Date,Product Name,Quantity,Total Amount (UGX),Status"

const dateLayout = "2006-01-02"

// Service implements backup export, restore and the CSV sales report.
type Service struct {
	store  repository.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService constructs a backup service.
func NewService(store repository.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// Export captures every collection into a Backup stamped with the export time.
func (s *Service) Export(ctx context.Context) (models.Backup, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return models.Backup{}, err
	}

	return models.Backup{
		Products:       &snap.Products,
		Orders:         &snap.Orders,
		Expenses:       &snap.Expenses,
		StockPurchases: &snap.StockPurchases,
		Withdrawals:    &snap.Withdrawals,
		Injections:     &snap.Injections,
		ExportDate:     s.now().UTC(),
	}, nil
}

// Import parses a backup payload and wholesale-replaces every collection whose
// key is present; absent keys leave their collections untouched. On any parse
// or validation failure nothing is changed.
func (s *Service) Import(ctx context.Context, payload []byte) error {
	var parsed models.Backup
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return fmt.Errorf("%w: %w", models.ErrImportFailed, err)
	}
	if err := validate(parsed); err != nil {
		return fmt.Errorf("%w: %w", models.ErrImportFailed, err)
	}

	if err := s.store.Restore(ctx, parsed); err != nil {
		return err
	}

	s.logger.Info("backup restored",
		zap.Bool("products", parsed.Products != nil),
		zap.Bool("orders", parsed.Orders != nil),
		zap.Bool("expenses", parsed.Expenses != nil),
		zap.Bool("stock_purchases", parsed.StockPurchases != nil),
		zap.Bool("withdrawals", parsed.Withdrawals != nil),
		zap.Bool("injections", parsed.Injections != nil))
	return nil
}

// ExportSalesCSV renders all orders as the sales report. Fields are joined
// with plain commas and deliberately not escaped; the format is fixed by the
// report consumers.
func (s *Service) ExportSalesCSV(ctx context.Context) (string, error) {
	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(orders)+1)
	lines = append(lines, CSVHeader)
	for _, o := range orders {
		lines = append(lines, strings.Join([]string{
			o.Date.Format(dateLayout),
			o.ProductName,
			strconv.Itoa(o.Quantity),
			strconv.FormatInt(o.TotalAmount, 10),
			string(o.Status),
		}, ","))
	}
	return strings.Join(lines, "\n"), nil
}

func validate(b models.Backup) error {
	if b.Products != nil {
		for _, p := range *b.Products {
			if p.Quantity < 0 || p.CostPrice < 0 || p.SellPrice < 0 {
				return fmt.Errorf("product %q has negative values", p.Name)
			}
		}
	}
	if b.Orders != nil {
		for _, o := range *b.Orders {
			if o.Quantity <= 0 || o.TotalAmount < 0 {
				return fmt.Errorf("order %s has invalid values", o.ID)
			}
		}
	}
	for _, check := range []struct {
		name    string
		amounts []int64
	}{
		{"expense", amounts(b.Expenses, func(e models.Expense) int64 { return e.Amount })},
		{"stock purchase", amounts(b.StockPurchases, func(p models.StockPurchase) int64 { return p.Amount })},
		{"withdrawal", amounts(b.Withdrawals, func(w models.Withdrawal) int64 { return w.Amount })},
		{"injection", amounts(b.Injections, func(i models.CapitalInjection) int64 { return i.Amount })},
	} {
		for _, a := range check.amounts {
			if a < 0 {
				return fmt.Errorf("%s has negative amount", check.name)
			}
		}
	}
	return nil
}

func amounts[T any](records *[]T, amountOf func(T) int64) []int64 {
	if records == nil {
		return nil
	}
	out := make([]int64, 0, len(*records))
	for _, r := range *records {
		out = append(out, amountOf(r))
	}
	return out
}
