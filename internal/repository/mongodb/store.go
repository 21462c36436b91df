package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ssemanda/boutique/internal/domain/models"
	"github.com/ssemanda/boutique/internal/repository"
)

// Collection names, one per entity type. The store enforces no foreign keys
// between them.
const (
	collProducts       = "products"
	collOrders         = "orders"
	collExpenses       = "expenses"
	collStockPurchases = "stock_purchases"
	collWithdrawals    = "withdrawals"
	collInjections     = "injections"
	collSnapshots      = "ledger_snapshots"
)

// Store implements repository.Store on MongoDB, one collection per entity.
type Store struct {
	client *mongo.Client
	dbName string
}

var _ repository.Store = (*Store)(nil)

// NewStore connects to MongoDB and verifies the connection.
func NewStore(ctx context.Context, uri string, dbName string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{client: client, dbName: dbName}, nil
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) coll(name string) *mongo.Collection {
	return s.client.Database(s.dbName).Collection(name)
}

// storeErr tags a driver failure with the domain's unavailability kind while
// keeping the underlying cause in the chain.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, models.ErrStoreUnavailable, err)
}

func listAll[T any](ctx context.Context, coll *mongo.Collection, op string) ([]T, error) {
	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, storeErr(op, err)
	}
	records := []T{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, storeErr(op, err)
	}
	return records, nil
}

// Snapshot reads all six collections. The reads are not a point-in-time cut
// across collections, but every mutation is applied atomically per operation,
// so no partial operation is ever observed.
func (s *Store) Snapshot(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot
	var err error

	if snap.Products, err = s.ListProducts(ctx); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Orders, err = s.ListOrders(ctx); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Expenses, err = s.ListExpenses(ctx); err != nil {
		return models.Snapshot{}, err
	}
	if snap.StockPurchases, err = s.ListStockPurchases(ctx); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Withdrawals, err = s.ListWithdrawals(ctx); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Injections, err = s.ListInjections(ctx); err != nil {
		return models.Snapshot{}, err
	}
	return snap, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	return listAll[models.Product](ctx, s.coll(collProducts), "list products")
}

func (s *Store) InsertProduct(ctx context.Context, p models.Product) error {
	if _, err := s.coll(collProducts).InsertOne(ctx, p); err != nil {
		return storeErr("insert product", err)
	}
	return nil
}

// ReplaceProduct upserts the product keyed by id in a single write.
func (s *Store) ReplaceProduct(ctx context.Context, p models.Product) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll(collProducts).ReplaceOne(ctx, bson.M{"_id": p.ID}, p, opts); err != nil {
		return storeErr("replace product", err)
	}
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.coll(collProducts).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return storeErr("delete product", err)
	}
	return nil
}

func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	return listAll[models.Order](ctx, s.coll(collOrders), "list orders")
}

// RecordSale runs the order insert and the stock decrement in one session
// transaction. The decrement filters on quantity >= n, so two concurrent
// sales can never both consume the same units; the loser aborts with
// models.ErrInsufficientStock and writes nothing.
func (s *Store) RecordSale(ctx context.Context, productID string, quantity int, order models.Order) error {
	session, err := s.client.StartSession()
	if err != nil {
		return storeErr("record sale", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		filter := bson.M{"_id": productID, "quantity": bson.M{"$gte": quantity}}
		update := bson.M{"$inc": bson.M{"quantity": -quantity}}

		res := s.coll(collProducts).FindOneAndUpdate(sc, filter, update)
		if err := res.Err(); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, models.ErrInsufficientStock
			}
			return nil, storeErr("decrement stock", err)
		}

		if _, err := s.coll(collOrders).InsertOne(sc, order); err != nil {
			return nil, storeErr("insert order", err)
		}
		return nil, nil
	})
	return err
}

func (s *Store) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	return listAll[models.Expense](ctx, s.coll(collExpenses), "list expenses")
}

func (s *Store) InsertExpense(ctx context.Context, e models.Expense) error {
	if _, err := s.coll(collExpenses).InsertOne(ctx, e); err != nil {
		return storeErr("insert expense", err)
	}
	return nil
}

func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	if _, err := s.coll(collExpenses).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return storeErr("delete expense", err)
	}
	return nil
}

func (s *Store) ListStockPurchases(ctx context.Context) ([]models.StockPurchase, error) {
	return listAll[models.StockPurchase](ctx, s.coll(collStockPurchases), "list stock purchases")
}

func (s *Store) InsertStockPurchase(ctx context.Context, p models.StockPurchase) error {
	if _, err := s.coll(collStockPurchases).InsertOne(ctx, p); err != nil {
		return storeErr("insert stock purchase", err)
	}
	return nil
}

func (s *Store) ListWithdrawals(ctx context.Context) ([]models.Withdrawal, error) {
	return listAll[models.Withdrawal](ctx, s.coll(collWithdrawals), "list withdrawals")
}

func (s *Store) InsertWithdrawal(ctx context.Context, w models.Withdrawal) error {
	if _, err := s.coll(collWithdrawals).InsertOne(ctx, w); err != nil {
		return storeErr("insert withdrawal", err)
	}
	return nil
}

func (s *Store) ListInjections(ctx context.Context) ([]models.CapitalInjection, error) {
	return listAll[models.CapitalInjection](ctx, s.coll(collInjections), "list injections")
}

func (s *Store) InsertInjection(ctx context.Context, i models.CapitalInjection) error {
	if _, err := s.coll(collInjections).InsertOne(ctx, i); err != nil {
		return storeErr("insert injection", err)
	}
	return nil
}

// Restore wholesale-replaces every collection present in the backup inside a
// single transaction. Absent keys leave their collections untouched.
func (s *Store) Restore(ctx context.Context, backup models.Backup) error {
	session, err := s.client.StartSession()
	if err != nil {
		return storeErr("restore", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if backup.Products != nil {
			if err := replaceAll(sc, s.coll(collProducts), *backup.Products); err != nil {
				return nil, err
			}
		}
		if backup.Orders != nil {
			if err := replaceAll(sc, s.coll(collOrders), *backup.Orders); err != nil {
				return nil, err
			}
		}
		if backup.Expenses != nil {
			if err := replaceAll(sc, s.coll(collExpenses), *backup.Expenses); err != nil {
				return nil, err
			}
		}
		if backup.StockPurchases != nil {
			if err := replaceAll(sc, s.coll(collStockPurchases), *backup.StockPurchases); err != nil {
				return nil, err
			}
		}
		if backup.Withdrawals != nil {
			if err := replaceAll(sc, s.coll(collWithdrawals), *backup.Withdrawals); err != nil {
				return nil, err
			}
		}
		if backup.Injections != nil {
			if err := replaceAll(sc, s.coll(collInjections), *backup.Injections); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

func replaceAll[T any](ctx context.Context, coll *mongo.Collection, records []T) error {
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return storeErr("restore: clear "+coll.Name(), err)
	}
	if len(records) == 0 {
		return nil
	}
	docs := make([]interface{}, len(records))
	for i, r := range records {
		docs[i] = r
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return storeErr("restore: fill "+coll.Name(), err)
	}
	return nil
}

// SaveLedgerSnapshot appends a derived nightly aggregate document.
func (s *Store) SaveLedgerSnapshot(ctx context.Context, snap models.LedgerSnapshot) error {
	if _, err := s.coll(collSnapshots).InsertOne(ctx, snap); err != nil {
		return storeErr("save ledger snapshot", err)
	}
	return nil
}
