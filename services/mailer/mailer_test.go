// File: services/mailer/mailer_test.go
package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	emailQueueRepo "maitred/database/repository/emailqueue"
	"maitred/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueueStore struct {
	emailQueueRepo.EmailQueueRepository

	entries    map[string]*models.EmailQueueEntry
	order      []string
	enqueueErr error
	getErr     error
	listErr    error
}

func newFakeQueueStore() *fakeQueueStore {
	return &fakeQueueStore{entries: make(map[string]*models.EmailQueueEntry)}
}

func (f *fakeQueueStore) Enqueue(entry *models.EmailQueueEntry) error {
	if f.enqueueErr != nil {
		return f.enqueueErr
	}
	cp := *entry
	f.entries[entry.ID] = &cp
	f.order = append(f.order, entry.ID)
	return nil
}

func (f *fakeQueueStore) GetByID(id string) (*models.EmailQueueEntry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	entry, ok := f.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *entry
	return &cp, nil
}

func (f *fakeQueueStore) ListPending(limit int) ([]models.EmailQueueEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.EmailQueueEntry
	for _, id := range f.order {
		if len(out) == limit {
			break
		}
		if entry := f.entries[id]; entry.Status == models.EmailPending {
			out = append(out, *entry)
		}
	}
	return out, nil
}

func (f *fakeQueueStore) MarkSent(id string) error {
	f.entries[id].Status = models.EmailSent
	return nil
}

func (f *fakeQueueStore) MarkFailed(id string, reason string) error {
	f.entries[id].Status = models.EmailFailed
	f.entries[id].LastError = reason
	return nil
}

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) Send(ctx context.Context, entry *models.EmailQueueEntry) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, entry.ID)
	return nil
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func sampleReservation() *models.Reservation {
	return &models.Reservation{
		ID:         "res-1",
		TableID:    "t4",
		Datetime:   time.Date(2024, 6, 1, 19, 0, 0, 0, time.UTC),
		PartySize:  4,
		Status:     models.ReservationPending,
		GuestName:  "Dana",
		GuestEmail: "dana@example.com",
		Token:      "3f2504e0-4f89-11d3-9a0c-0305e82c3301",
	}
}

func TestRenderConfirmationSubjectCarriesTokenRef(t *testing.T) {
	res := sampleReservation()
	subject, body, err := RenderReservationEmail(res, models.EmailConfirmation)
	require.NoError(t, err)

	assert.Contains(t, subject, "e82c3301", "subject carries the last 8 token characters")
	assert.Contains(t, body, res.TokenRef())
	assert.Contains(t, body, "Dana")
}

func TestRenderUnknownEmailType(t *testing.T) {
	_, _, err := RenderReservationEmail(sampleReservation(), "reminder")
	require.Error(t, err)
}

func TestQueueReservationEmailCreatesPendingRow(t *testing.T) {
	queue := newFakeQueueStore()
	enq := &fakeEnqueuer{}
	svc := &DefaultMailerService{Queue: queue, Tasks: enq, Sender: &fakeSender{}}

	entry, err := svc.QueueReservationEmail(sampleReservation(), models.EmailConfirmation, "dana@example.com")
	require.NoError(t, err)

	stored := queue.entries[entry.ID]
	require.NotNil(t, stored)
	assert.Equal(t, models.EmailPending, stored.Status)
	assert.Equal(t, "dana@example.com", stored.ToEmail)
	assert.Equal(t, "res-1", stored.ReservationID)
	assert.Len(t, enq.tasks, 1)
}

func TestQueueReservationEmailRequiresRecipient(t *testing.T) {
	svc := &DefaultMailerService{Queue: newFakeQueueStore()}
	_, err := svc.QueueReservationEmail(sampleReservation(), models.EmailConfirmation, "")
	require.Error(t, err)
}

func TestQueueReservationEmailSurvivesTaskFailure(t *testing.T) {
	queue := newFakeQueueStore()
	svc := &DefaultMailerService{Queue: queue, Tasks: &fakeEnqueuer{err: errors.New("redis down")}}

	entry, err := svc.QueueReservationEmail(sampleReservation(), models.EmailConfirmation, "dana@example.com")
	require.NoError(t, err, "the pending row is the durable record; the task is best effort")
	assert.NotNil(t, queue.entries[entry.ID])
}

func TestDispatchMarksSent(t *testing.T) {
	queue := newFakeQueueStore()
	sender := &fakeSender{}
	svc := &DefaultMailerService{Queue: queue, Sender: sender}

	entry, err := svc.QueueReservationEmail(sampleReservation(), models.EmailConfirmation, "dana@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Dispatch(context.Background(), entry.ID))
	assert.Equal(t, models.EmailSent, queue.entries[entry.ID].Status)
	assert.Equal(t, []string{entry.ID}, sender.sent)
}

func TestDispatchMarksFailed(t *testing.T) {
	queue := newFakeQueueStore()
	svc := &DefaultMailerService{Queue: queue, Sender: &fakeSender{err: errors.New("smtp refused")}}

	entry, err := svc.QueueReservationEmail(sampleReservation(), models.EmailConfirmation, "dana@example.com")
	require.NoError(t, err)

	err = svc.Dispatch(context.Background(), entry.ID)
	require.Error(t, err)
	assert.Equal(t, models.EmailFailed, queue.entries[entry.ID].Status)
	assert.Contains(t, queue.entries[entry.ID].LastError, "smtp refused")
}

func TestDispatchSkipsNonPendingEntries(t *testing.T) {
	queue := newFakeQueueStore()
	sender := &fakeSender{}
	svc := &DefaultMailerService{Queue: queue, Sender: sender}

	entry, err := svc.QueueReservationEmail(sampleReservation(), models.EmailConfirmation, "dana@example.com")
	require.NoError(t, err)
	require.NoError(t, queue.MarkSent(entry.ID))

	require.NoError(t, svc.Dispatch(context.Background(), entry.ID))
	assert.Empty(t, sender.sent, "a settled entry is never re-delivered")
}

func TestDispatchMissingEntryIsNoop(t *testing.T) {
	svc := &DefaultMailerService{Queue: newFakeQueueStore(), Sender: &fakeSender{}}
	assert.NoError(t, svc.Dispatch(context.Background(), "gone"), "swept entries are nothing left to deliver")
}

func TestDispatchSurfacesTransientLookupFailure(t *testing.T) {
	queue := newFakeQueueStore()
	queue.getErr = errors.New("connection reset")
	svc := &DefaultMailerService{Queue: queue, Sender: &fakeSender{}}

	// A store hiccup must bubble up so the task is retried, instead of
	// being mistaken for a swept entry and acknowledged.
	err := svc.Dispatch(context.Background(), "entry-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestDrainPendingDeliversStrandedRows(t *testing.T) {
	queue := newFakeQueueStore()
	sender := &fakeSender{}
	// No task enqueuer at all: every queued row is stranded until a
	// drain run finds it.
	svc := &DefaultMailerService{Queue: queue, Sender: sender}

	first, err := svc.QueueReservationEmail(sampleReservation(), models.EmailConfirmation, "dana@example.com")
	require.NoError(t, err)
	second, err := svc.QueueReservationEmail(sampleReservation(), models.EmailCancellation, "dana@example.com")
	require.NoError(t, err)

	delivered, err := svc.DrainPending(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 2, delivered)
	assert.Equal(t, models.EmailSent, queue.entries[first.ID].Status)
	assert.Equal(t, models.EmailSent, queue.entries[second.ID].Status)

	// Settled rows don't come back on the next run.
	delivered, err = svc.DrainPending(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 0, delivered)
	assert.Equal(t, []string{first.ID, second.ID}, sender.sent)
}

func TestDrainPendingContinuesPastFailingEntry(t *testing.T) {
	queue := newFakeQueueStore()
	svc := &DefaultMailerService{Queue: queue, Sender: &fakeSender{err: errors.New("smtp refused")}}

	entry, err := svc.QueueReservationEmail(sampleReservation(), models.EmailConfirmation, "dana@example.com")
	require.NoError(t, err)

	delivered, err := svc.DrainPending(context.Background(), 100)
	require.NoError(t, err, "one bad entry must not abort the batch")
	assert.Equal(t, 0, delivered)
	assert.Equal(t, models.EmailFailed, queue.entries[entry.ID].Status)
}

func TestDrainPendingSurfacesListFailure(t *testing.T) {
	queue := newFakeQueueStore()
	queue.listErr = errors.New("timeout")
	svc := &DefaultMailerService{Queue: queue, Sender: &fakeSender{}}

	_, err := svc.DrainPending(context.Background(), 100)
	require.Error(t, err)
}
