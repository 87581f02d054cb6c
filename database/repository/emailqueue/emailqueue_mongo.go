// File: database/repository/emailqueue/emailqueue_mongo.go
package emailQueueRepo

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

// MongoEmailQueueRepo implements EmailQueueRepository using MongoDB.
type MongoEmailQueueRepo struct {
	coll *mongo.Collection
}

// NewMongoEmailQueueRepo creates a new instance of EmailQueueRepository using MongoDB.
func NewMongoEmailQueueRepo() EmailQueueRepository {
	coll := database.Collection("email_queue")
	repo := &MongoEmailQueueRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoEmailQueueRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "reservation_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Enqueue inserts a new pending queue entry.
func (r *MongoEmailQueueRepo) Enqueue(entry *models.EmailQueueEntry) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	entry.CreatedAt = time.Now()
	if entry.Status == "" {
		entry.Status = models.EmailPending
	}

	_, err := r.coll.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to enqueue email: %w", err)
	}
	return nil
}

// GetByID retrieves a queue entry by its unique ID. Returns nil, nil
// when no entry matches.
func (r *MongoEmailQueueRepo) GetByID(id string) (*models.EmailQueueEntry, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var entry models.EmailQueueEntry
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&entry); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch email queue entry %s: %w", id, err)
	}
	return &entry, nil
}

// ListPending returns up to limit pending entries, oldest first.
func (r *MongoEmailQueueRepo) ListPending(limit int) ([]models.EmailQueueEntry, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}).SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, bson.M{"status": models.EmailPending}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending emails: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.EmailQueueEntry
	for cursor.Next(ctx) {
		var e models.EmailQueueEntry
		if err := cursor.Decode(&e); err != nil {
			return nil, fmt.Errorf("failed to decode email queue entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// MarkSent flags an entry as delivered.
func (r *MongoEmailQueueRepo) MarkSent(id string) error {
	return r.setStatus(id, bson.M{"status": models.EmailSent, "sent_at": time.Now()})
}

// MarkFailed flags an entry as failed with the delivery error.
func (r *MongoEmailQueueRepo) MarkFailed(id string, reason string) error {
	return r.setStatus(id, bson.M{"status": models.EmailFailed, "last_error": reason})
}

func (r *MongoEmailQueueRepo) setStatus(id string, fields bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update email queue entry %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("email queue entry %s not found", id)
	}
	return nil
}

// DeleteByReservationIDs removes queue rows belonging to the given
// reservations.
func (r *MongoEmailQueueRepo) DeleteByReservationIDs(reservationIDs []string) (int64, error) {
	if len(reservationIDs) == 0 {
		return 0, nil
	}
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteMany(ctx, bson.M{"reservation_id": bson.M{"$in": reservationIDs}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete email queue entries: %w", err)
	}
	return result.DeletedCount, nil
}
