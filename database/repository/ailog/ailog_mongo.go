// File: database/repository/ailog/ailog_mongo.go
package aiLogRepo

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

// MongoAIActionLogRepo implements AIActionLogRepository using MongoDB.
type MongoAIActionLogRepo struct {
	coll *mongo.Collection
}

// NewMongoAIActionLogRepo creates a new instance of AIActionLogRepository using MongoDB.
func NewMongoAIActionLogRepo() AIActionLogRepository {
	return &MongoAIActionLogRepo{coll: database.Collection("ai_actions_log")}
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Append inserts a log entry.
func (r *MongoAIActionLogRepo) Append(entry *models.AIActionLog) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	entry.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to append ai action log: %w", err)
	}
	return nil
}

// Recent returns the newest entries.
func (r *MongoAIActionLogRepo) Recent(limit int) ([]models.AIActionLog, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query ai action log: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.AIActionLog
	for cursor.Next(ctx) {
		var e models.AIActionLog
		if err := cursor.Decode(&e); err != nil {
			return nil, fmt.Errorf("failed to decode ai action log entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
