// File: services/cleanup/sweeper_test.go
package cleanup

import (
	"context"
	"errors"
	"testing"
	"time"

	emailQueueRepo "maitred/database/repository/emailqueue"
	reservationRepo "maitred/database/repository/reservation"
	"maitred/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReservationStore keeps reservations in memory and records the
// order of delete calls relative to the email queue fake.
type fakeReservationStore struct {
	reservationRepo.ReservationRepository

	summaries  []models.ReservationSummary
	gotCutoff  time.Time
	findErr    error
	deleteErr  error
	callOrder  *[]string
}

func (f *fakeReservationStore) FindPastSummaries(cutoff time.Time) ([]models.ReservationSummary, error) {
	f.gotCutoff = cutoff
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.ReservationSummary
	for _, s := range f.summaries {
		if s.Datetime.Before(cutoff) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeReservationStore) DeleteByIDs(ids []string) (int64, error) {
	if f.callOrder != nil {
		*f.callOrder = append(*f.callOrder, "reservations")
	}
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	byID := make(map[string]bool, len(ids))
	for _, id := range ids {
		byID[id] = true
	}
	var kept []models.ReservationSummary
	var deleted int64
	for _, s := range f.summaries {
		if byID[s.ID] {
			deleted++
			continue
		}
		kept = append(kept, s)
	}
	f.summaries = kept
	return deleted, nil
}

type fakeEmailQueueStore struct {
	emailQueueRepo.EmailQueueRepository

	deleteErr  error
	deletedFor []string
	callOrder  *[]string
}

func (f *fakeEmailQueueStore) DeleteByReservationIDs(reservationIDs []string) (int64, error) {
	if f.callOrder != nil {
		*f.callOrder = append(*f.callOrder, "email_queue")
	}
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.deletedFor = append(f.deletedFor, reservationIDs...)
	return int64(len(reservationIDs)), nil
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCutoffIsStartOfTodayUTC(t *testing.T) {
	svc := &DefaultCleanupService{
		Now: fixedNow(time.Date(2024, 6, 15, 13, 45, 12, 0, time.UTC)),
	}
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), svc.Cutoff())
}

func TestSweepHonorsMidnightBoundary(t *testing.T) {
	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	resStore := &fakeReservationStore{summaries: []models.ReservationSummary{
		{ID: "yesterday", Datetime: time.Date(2024, 6, 14, 23, 59, 59, 999000000, time.UTC)},
		{ID: "at-midnight", Datetime: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
		{ID: "later-today", Datetime: time.Date(2024, 6, 15, 19, 0, 0, 0, time.UTC)},
	}}
	svc := &DefaultCleanupService{
		Reservations: resStore,
		EmailQueue:   &fakeEmailQueueStore{},
		Now:          fixedNow(now),
	}

	result := svc.Sweep(context.Background())
	require.True(t, result.Success)

	// Only the reservation strictly before today's UTC midnight goes;
	// one scheduled at midnight exactly survives until tomorrow's run.
	assert.Equal(t, int64(1), result.DeletedCount)
	require.Len(t, result.Deleted, 1)
	assert.Equal(t, "yesterday", result.Deleted[0].ID)
}

func TestSweepDeletesEmailRowsFirst(t *testing.T) {
	var order []string
	resStore := &fakeReservationStore{
		summaries: []models.ReservationSummary{
			{ID: "r1", Datetime: time.Date(2024, 6, 10, 19, 0, 0, 0, time.UTC)},
		},
		callOrder: &order,
	}
	emailStore := &fakeEmailQueueStore{callOrder: &order}
	svc := &DefaultCleanupService{
		Reservations: resStore,
		EmailQueue:   emailStore,
		Now:          fixedNow(time.Date(2024, 6, 15, 3, 0, 0, 0, time.UTC)),
	}

	result := svc.Sweep(context.Background())
	require.True(t, result.Success)
	assert.Equal(t, []string{"email_queue", "reservations"}, order)
	assert.Equal(t, []string{"r1"}, emailStore.deletedFor)
}

func TestSweepSecondRunDeletesNothing(t *testing.T) {
	resStore := &fakeReservationStore{summaries: []models.ReservationSummary{
		{ID: "r1", Datetime: time.Date(2024, 6, 10, 19, 0, 0, 0, time.UTC)},
	}}
	svc := &DefaultCleanupService{
		Reservations: resStore,
		EmailQueue:   &fakeEmailQueueStore{},
		Now:          fixedNow(time.Date(2024, 6, 15, 3, 0, 0, 0, time.UTC)),
	}

	first := svc.Sweep(context.Background())
	require.True(t, first.Success)
	require.Equal(t, int64(1), first.DeletedCount)

	second := svc.Sweep(context.Background())
	require.True(t, second.Success)
	assert.Equal(t, int64(0), second.DeletedCount)
	assert.Empty(t, second.Deleted)
}

func TestSweepEmptyStoreSucceeds(t *testing.T) {
	svc := &DefaultCleanupService{
		Reservations: &fakeReservationStore{},
		EmailQueue:   &fakeEmailQueueStore{},
		Now:          fixedNow(time.Date(2024, 6, 15, 3, 0, 0, 0, time.UTC)),
	}
	result := svc.Sweep(context.Background())
	assert.True(t, result.Success)
	assert.Equal(t, int64(0), result.DeletedCount)
}

func TestSweepFailureIsTypedNotFatal(t *testing.T) {
	svc := &DefaultCleanupService{
		Reservations: &fakeReservationStore{findErr: errors.New("connection reset")},
		EmailQueue:   &fakeEmailQueueStore{},
		Now:          fixedNow(time.Date(2024, 6, 15, 3, 0, 0, 0, time.UTC)),
	}
	result := svc.Sweep(context.Background())
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Message)
}

func TestSweepStopsWhenEmailDeleteFails(t *testing.T) {
	resStore := &fakeReservationStore{summaries: []models.ReservationSummary{
		{ID: "r1", Datetime: time.Date(2024, 6, 10, 19, 0, 0, 0, time.UTC)},
	}}
	svc := &DefaultCleanupService{
		Reservations: resStore,
		EmailQueue:   &fakeEmailQueueStore{deleteErr: errors.New("write conflict")},
		Now:          fixedNow(time.Date(2024, 6, 15, 3, 0, 0, 0, time.UTC)),
	}

	result := svc.Sweep(context.Background())
	assert.False(t, result.Success)
	// The reservation must survive so no email row is ever orphaned.
	assert.Len(t, resStore.summaries, 1)
}

func TestPreviewDoesNotDelete(t *testing.T) {
	resStore := &fakeReservationStore{summaries: []models.ReservationSummary{
		{ID: "r1", Datetime: time.Date(2024, 6, 10, 19, 0, 0, 0, time.UTC)},
	}}
	emailStore := &fakeEmailQueueStore{}
	svc := &DefaultCleanupService{
		Reservations: resStore,
		EmailQueue:   emailStore,
		Now:          fixedNow(time.Date(2024, 6, 15, 3, 0, 0, 0, time.UTC)),
	}

	result, err := svc.Preview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.DeletedCount)
	assert.Len(t, resStore.summaries, 1)
	assert.Empty(t, emailStore.deletedFor)
}
