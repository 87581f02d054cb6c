// File: database/repository/inventory/inventory_mongo.go
package inventoryRepo

import (
	"context"
	"fmt"
	"time"

	"maitred/database"
	"maitred/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoInventoryRepo implements InventoryRepository using MongoDB.
type MongoInventoryRepo struct {
	items        *mongo.Collection
	categories   *mongo.Collection
	transactions *mongo.Collection
	predictions  *mongo.Collection
	suppliers    *mongo.Collection
}

// NewMongoInventoryRepo creates a new instance of InventoryRepository using MongoDB.
func NewMongoInventoryRepo() InventoryRepository {
	return &MongoInventoryRepo{
		items:        database.Collection("inventory_items"),
		categories:   database.Collection("inventory_categories"),
		transactions: database.Collection("inventory_transactions"),
		predictions:  database.Collection("inventory_predictions"),
		suppliers:    database.Collection("suppliers"),
	}
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// GetItems retrieves every inventory item.
func (r *MongoInventoryRepo) GetItems() ([]models.InventoryItem, error) {
	return r.findItems(bson.M{})
}

// GetLowStockItems returns items at or below their reorder threshold.
func (r *MongoInventoryRepo) GetLowStockItems() ([]models.InventoryItem, error) {
	filter := bson.M{"$expr": bson.M{"$lte": bson.A{"$quantity", "$reorder_at"}}}
	return r.findItems(filter)
}

func (r *MongoInventoryRepo) findItems(filter bson.M) ([]models.InventoryItem, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.items.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.InventoryItem
	for cursor.Next(ctx) {
		var item models.InventoryItem
		if err := cursor.Decode(&item); err != nil {
			return nil, fmt.Errorf("failed to decode inventory item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

// CountCategories counts inventory categories.
func (r *MongoInventoryRepo) CountCategories() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.categories.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count inventory categories: %w", err)
	}
	return n, nil
}

// CountSuppliers counts suppliers.
func (r *MongoInventoryRepo) CountSuppliers() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.suppliers.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count suppliers: %w", err)
	}
	return n, nil
}

// RecentTransactions returns the latest stock movements.
func (r *MongoInventoryRepo) RecentTransactions(limit int) ([]models.InventoryTransaction, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(int64(limit))
	cursor, err := r.transactions.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var txs []models.InventoryTransaction
	for cursor.Next(ctx) {
		var tx models.InventoryTransaction
		if err := cursor.Decode(&tx); err != nil {
			return nil, fmt.Errorf("failed to decode inventory transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// LatestPredictions returns the newest usage forecasts.
func (r *MongoInventoryRepo) LatestPredictions(limit int) ([]models.InventoryPrediction, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "predicted_at", Value: -1}}).SetLimit(int64(limit))
	cursor, err := r.predictions.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory predictions: %w", err)
	}
	defer cursor.Close(ctx)

	var preds []models.InventoryPrediction
	for cursor.Next(ctx) {
		var p models.InventoryPrediction
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode inventory prediction: %w", err)
		}
		preds = append(preds, p)
	}
	return preds, nil
}

// Summary assembles the aggregate dashboard/insights shape.
func (r *MongoInventoryRepo) Summary() (*models.InventorySummary, error) {
	items, err := r.GetItems()
	if err != nil {
		return nil, err
	}
	low, err := r.GetLowStockItems()
	if err != nil {
		return nil, err
	}
	categories, err := r.CountCategories()
	if err != nil {
		return nil, err
	}
	suppliers, err := r.CountSuppliers()
	if err != nil {
		return nil, err
	}
	return &models.InventorySummary{
		TotalItems:    len(items),
		LowStockItems: low,
		Categories:    int(categories),
		Suppliers:     int(suppliers),
	}, nil
}
