// File: database/repository/reservation/reservationMongoQueries.go
package reservationRepo

import (
	"fmt"
	"time"

	"maitred/models"

	"go.mongodb.org/mongo-driver/bson"
)

// FindActiveByTableBetween returns non-cancelled reservations for a table
// scheduled inside [from, to).
func (r *MongoReservationRepo) FindActiveByTableBetween(tableID string, from, to time.Time) ([]models.Reservation, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"table_id": tableID,
		"status":   bson.M{"$ne": models.ReservationCancelled},
		"datetime": bson.M{"$gte": from, "$lt": to},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations for table %s: %w", tableID, err)
	}
	defer cursor.Close(ctx)

	var reservations []models.Reservation
	for cursor.Next(ctx) {
		var res models.Reservation
		if err := cursor.Decode(&res); err != nil {
			return nil, fmt.Errorf("failed to decode reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	return reservations, nil
}

// FindLinkable returns guest reservations matching the email exactly with
// no owning account. Mirrors the store's get_linkable_reservations
// procedure: exact-email match only, no date or party-size filtering.
func (r *MongoReservationRepo) FindLinkable(email string) ([]models.LinkableReservation, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"guest_email": email,
		"user_id":     bson.M{"$in": bson.A{nil, ""}},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query linkable reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var candidates []models.LinkableReservation
	for cursor.Next(ctx) {
		var c models.LinkableReservation
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode linkable reservation: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// LinkGuestReservations reassigns every linkable reservation for the email
// to userID in a single update. Clearing the guest trio keeps the
// user_id-XOR-guest invariant and makes re-invocation match zero rows.
func (r *MongoReservationRepo) LinkGuestReservations(email, userID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"guest_email": email,
		"user_id":     bson.M{"$in": bson.A{nil, ""}},
	}
	update := bson.M{
		"$set":   bson.M{"user_id": userID, "updated_at": time.Now()},
		"$unset": bson.M{"guest_name": "", "guest_email": "", "guest_phone": ""},
	}
	result, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to link guest reservations for %s: %w", email, err)
	}
	return result.ModifiedCount, nil
}

// FindPastSummaries returns summaries of reservations scheduled strictly
// before the cutoff instant.
func (r *MongoReservationRepo) FindPastSummaries(cutoff time.Time) ([]models.ReservationSummary, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"datetime": bson.M{"$lt": cutoff}}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query past reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var summaries []models.ReservationSummary
	for cursor.Next(ctx) {
		var s models.ReservationSummary
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode reservation summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// DeleteByIDs removes the given reservations. Ids already deleted by a
// concurrent sweep simply don't match.
func (r *MongoReservationRepo) DeleteByIDs(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteMany(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete reservations: %w", err)
	}
	return result.DeletedCount, nil
}

// CountPerDay aggregates reservation counts bucketed by calendar day.
// Mirrors the store's get_reservations_per_day procedure.
func (r *MongoReservationRepo) CountPerDay() ([]models.DayCount, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongoPipeline()
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reservations per day: %w", err)
	}
	defer cursor.Close(ctx)

	var counts []models.DayCount
	for cursor.Next(ctx) {
		var dc models.DayCount
		if err := cursor.Decode(&dc); err != nil {
			return nil, fmt.Errorf("failed to decode day count: %w", err)
		}
		counts = append(counts, dc)
	}
	return counts, nil
}

func mongoPipeline() []bson.M {
	return []bson.M{
		{"$group": bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m-%d",
				"date":   "$datetime",
			}},
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"_id": 1}},
	}
}
