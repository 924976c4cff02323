package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/raushankrgupta/bundle-strategist/models"
)

const (
	inventoryCollection = "inventory"
	ordersCollection    = "orders"
	pairsCollection     = "bought_together"
	reportsCollection   = "bundle_reports"
)

// MongoStore loads table snapshots from MongoDB and persists bundle reports.
type MongoStore struct {
	client   *mongo.Client
	database string
}

// ConnectMongo initializes the MongoDB connection and returns a store bound
// to the given database.
func ConnectMongo(uri, database string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	log.Println("Connected to MongoDB!")
	return &MongoStore{client: client, database: database}, nil
}

// Close disconnects the underlying client.
func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Collection returns a handle to a collection in the store's database.
func (m *MongoStore) Collection(name string) *mongo.Collection {
	return m.client.Database(m.database).Collection(name)
}

// LoadSnapshot reads the inventory, orders and bought-together collections
// into an immutable snapshot. An empty bought_together collection falls back
// to counting pairs from the order lines.
func (m *MongoStore) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	var products []models.Product
	if err := m.loadAll(ctx, inventoryCollection, &products); err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	var orders []models.OrderLine
	if err := m.loadAll(ctx, ordersCollection, &orders); err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	var pairs []models.CoPurchasePair
	if err := m.loadAll(ctx, pairsCollection, &pairs); err != nil {
		return nil, fmt.Errorf("failed to load bought-together pairs: %w", err)
	}
	if len(pairs) == 0 {
		pairs = nil // let NewSnapshot count from orders
	}

	return NewSnapshot(products, orders, pairs)
}

func (m *MongoStore) loadAll(ctx context.Context, collection string, out interface{}) error {
	cursor, err := m.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

// SaveReport persists a ranked bundle report.
func (m *MongoStore) SaveReport(ctx context.Context, report models.BundleReport) error {
	_, err := m.Collection(reportsCollection).InsertOne(ctx, report)
	if err != nil {
		return fmt.Errorf("failed to save bundle report: %w", err)
	}
	return nil
}
