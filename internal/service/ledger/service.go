package ledger

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ssemanda/boutique/internal/domain/models"
)

// Snapshotter provides the point-in-time collection reads the engine consumes.
type Snapshotter interface {
	Snapshot(ctx context.Context) (models.Snapshot, error)
}

// Service binds the pure derivations to a record store.
type Service struct {
	store  Snapshotter
	logger *zap.Logger
}

// NewService wires a ledger service instance.
func NewService(store Snapshotter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Summary loads a fresh snapshot and derives the full figure set.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load snapshot: %w", err)
	}
	return Compute(snap), nil
}

// Dashboard is the aggregate view rendered on the landing page.
type Dashboard struct {
	Summary
	RecentOrders []models.Order   `json:"recentOrders"`
	LowStock     []models.Product `json:"lowStock"`
}

// Dashboard derives the summary plus recent orders and the restock list.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("load snapshot: %w", err)
	}

	return Dashboard{
		Summary:      Compute(snap),
		RecentOrders: RecentOrders(snap, 5),
		LowStock:     LowStockProducts(snap),
	}, nil
}
