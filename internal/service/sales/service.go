// Package sales coordinates the compound writes around products and orders:
// recording a sale must create the order and decrement the matched product's
// stock as one atomic unit.
package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ssemanda/boutique/internal/domain/models"
	"github.com/ssemanda/boutique/internal/repository"
	"github.com/ssemanda/boutique/internal/repository/sheets"
	"github.com/ssemanda/boutique/internal/service/alerts"
)

// ErrInvalidArguments indicates the request payload failed validation.
var ErrInvalidArguments = errors.New("invalid arguments")

// Service implements the sale and product mutations.
type Service struct {
	store    repository.Store
	notifier alerts.Notifier    // optional
	mirror   sheets.RowAppender // optional
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// NewService constructs a sales coordinator. notifier and mirror may be nil.
func NewService(store repository.Store, notifier alerts.Notifier, mirror sheets.RowAppender, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		notifier: notifier,
		mirror:   mirror,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// RecordSale sells quantity units of the named product. The product lookup is
// case and whitespace insensitive. On success the created order is returned;
// on any failure nothing has been written.
func (s *Service) RecordSale(ctx context.Context, productName string, quantity int) (models.Order, error) {
	if quantity <= 0 {
		return models.Order{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidArguments)
	}

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return models.Order{}, err
	}

	product, ok := matchByName(products, productName)
	if !ok {
		return models.Order{}, fmt.Errorf("%w: %q", models.ErrProductNotFound, productName)
	}
	if product.Quantity < quantity {
		return models.Order{}, fmt.Errorf("%w: only %d left", models.ErrInsufficientStock, product.Quantity)
	}

	now := s.now().UTC()
	order := models.Order{
		ID:          s.newID(),
		ProductName: product.Name,
		Quantity:    quantity,
		TotalAmount: product.SellPrice * int64(quantity),
		Date:        now,
		Status:      models.OrderPaid,
		CreatedAt:   now,
	}

	// The store applies the decrement conditionally, so a concurrent sale
	// that drained the stock between our read and this write still fails
	// cleanly instead of overdrawing.
	if err := s.store.RecordSale(ctx, product.ID, quantity, order); err != nil {
		return models.Order{}, err
	}

	s.logger.Info("sale recorded",
		zap.String("product", product.Name),
		zap.Int("quantity", quantity),
		zap.Int64("total_amount", order.TotalAmount))

	remaining := product.Quantity - quantity
	s.maybeAlert(ctx, product.Name, remaining)
	s.maybeMirror(ctx, order)

	return order, nil
}

// AddProduct validates and stores a new product. A missing id is assigned.
func (s *Service) AddProduct(ctx context.Context, p models.Product) (models.Product, error) {
	if err := validateProduct(p); err != nil {
		return models.Product{}, err
	}
	if p.ID == "" {
		p.ID = s.newID()
	}
	if err := s.store.InsertProduct(ctx, p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// ReplaceProduct swaps the stored product keyed by id in one write. Edits go
// through here so the record never transiently disappears.
func (s *Service) ReplaceProduct(ctx context.Context, p models.Product) error {
	if p.ID == "" {
		return fmt.Errorf("%w: product id required", ErrInvalidArguments)
	}
	if err := validateProduct(p); err != nil {
		return err
	}
	return s.store.ReplaceProduct(ctx, p)
}

// DeleteProduct removes the product. Historical orders keep referencing it by
// name and fall back to the ledger's cost heuristic.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.store.DeleteProduct(ctx, id)
}

// ListProducts returns all products.
func (s *Service) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.store.ListProducts(ctx)
}

// ListOrders returns all orders.
func (s *Service) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.store.ListOrders(ctx)
}

func (s *Service) maybeAlert(ctx context.Context, productName string, remaining int) {
	if s.notifier == nil || remaining >= models.LowStockThreshold {
		return
	}
	severity := alerts.SeverityLow
	if remaining < models.CriticalStockThreshold {
		severity = alerts.SeverityCritical
	}
	alert := alerts.StockAlert{
		Product:   productName,
		Remaining: remaining,
		Severity:  severity,
		At:        s.now().UTC(),
	}
	if err := s.notifier.NotifyStockAlert(ctx, alert); err != nil {
		s.logger.Warn("stock alert delivery failed", zap.String("product", productName), zap.Error(err))
	}
}

func (s *Service) maybeMirror(ctx context.Context, order models.Order) {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.AppendSaleRow(ctx, order); err != nil {
		s.logger.Warn("sheet mirror failed", zap.String("order_id", order.ID), zap.Error(err))
	}
}

func matchByName(products []models.Product, name string) (models.Product, bool) {
	key := models.NormalizeName(name)
	for _, p := range products {
		if models.NormalizeName(p.Name) == key {
			return p, true
		}
	}
	return models.Product{}, false
}

func validateProduct(p models.Product) error {
	switch {
	case models.NormalizeName(p.Name) == "":
		return fmt.Errorf("%w: product name required", ErrInvalidArguments)
	case !p.Category.Valid():
		return fmt.Errorf("%w: unknown category %q", ErrInvalidArguments, p.Category)
	case p.Quantity < 0:
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidArguments)
	case p.CostPrice < 0 || p.SellPrice < 0:
		return fmt.Errorf("%w: prices must not be negative", ErrInvalidArguments)
	}
	return nil
}
