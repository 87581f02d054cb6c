// File: database/repository/table/table_mongo.go
package tableRepo

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

// MongoTableRepo implements TableRepository using MongoDB.
type MongoTableRepo struct {
	coll *mongo.Collection
}

// NewMongoTableRepo creates a new instance of TableRepository using MongoDB.
func NewMongoTableRepo() TableRepository {
	return &MongoTableRepo{coll: database.Collection("tables")}
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// GetAll retrieves every dining table.
func (r *MongoTableRepo) GetAll() ([]models.DiningTable, error) {
	return r.find(bson.M{}, nil)
}

// GetActiveWithCapacity returns active tables seating at least partySize,
// smallest capacity first so the booking service fills tightly.
func (r *MongoTableRepo) GetActiveWithCapacity(partySize int) ([]models.DiningTable, error) {
	filter := bson.M{"active": true, "capacity": bson.M{"$gte": partySize}}
	opts := options.Find().SetSort(bson.D{{Key: "capacity", Value: 1}})
	return r.find(filter, opts)
}

func (r *MongoTableRepo) find(filter bson.M, opts *options.FindOptions) ([]models.DiningTable, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.coll.Find(ctx, filter, opts)
	} else {
		cursor, err = r.coll.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer cursor.Close(ctx)

	var tables []models.DiningTable
	for cursor.Next(ctx) {
		var t models.DiningTable
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to decode table: %w", err)
		}
		tables = append(tables, t)
	}
	return tables, nil
}
