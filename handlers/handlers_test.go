// File: handlers/handlers_test.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	aiLogRepo "maitred/database/repository/ailog"
	tableRepo "maitred/database/repository/table"
	"maitred/models"
	"maitred/services/booking"
	"maitred/services/cleanup"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postJSON(t *testing.T, router *gin.Engine, path, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDraftFieldEditHandlerAcceptsAndNormalizes(t *testing.T) {
	router := gin.New()
	router.POST("/field-edit", DraftFieldEditHandler())

	w := postJSON(t, router, "/field-edit",
		`{"field": "time", "value": "7", "reservationData": {"partySize": 4}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Draft models.ReservationDraft `json:"reservationData"`
		State models.DraftState       `json:"state"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "07:00", resp.Draft.Time)
	assert.Equal(t, models.ProvenanceUser, resp.Draft.Provenance[models.FieldTime])
	assert.Equal(t, models.PhaseCollecting, resp.State.Phase)
}

func TestDraftFieldEditHandlerRejectsBadPartySize(t *testing.T) {
	router := gin.New()
	router.POST("/field-edit", DraftFieldEditHandler())

	w := postJSON(t, router, "/field-edit",
		`{"field": "partySize", "value": "150", "reservationData": {"partySize": 4}}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Draft models.ReservationDraft `json:"reservationData"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Draft.PartySize, "a rejected edit returns the draft unchanged")
}

type stubCleanup struct {
	result cleanup.SweepResult
	calls  *[]string
}

func (s *stubCleanup) Sweep(ctx context.Context) cleanup.SweepResult {
	if s.calls != nil {
		*s.calls = append(*s.calls, "sweep")
	}
	return s.result
}

func (s *stubCleanup) Preview(ctx context.Context) (cleanup.SweepResult, error) {
	return s.result, nil
}

func TestCleanupSweepHandlerReportsResult(t *testing.T) {
	router := gin.New()
	router.POST("/cleanup-past-reservations", CleanupSweepHandler(&stubCleanup{
		result: cleanup.SweepResult{
			Success:      true,
			DeletedCount: 2,
			Deleted: []models.ReservationSummary{
				{ID: "r1"}, {ID: "r2"},
			},
		},
	}))

	w := postJSON(t, router, "/cleanup-past-reservations", `{}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp cleanup.SweepResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(2), resp.DeletedCount)
	assert.Len(t, resp.Deleted, 2)
}

func TestCleanupSweepHandlerFailureIsTyped(t *testing.T) {
	router := gin.New()
	router.POST("/cleanup-past-reservations", CleanupSweepHandler(&stubCleanup{
		result: cleanup.SweepResult{Success: false, Message: "failed to delete past reservations"},
	}))

	w := postJSON(t, router, "/cleanup-past-reservations", `{}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp cleanup.SweepResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
}

func TestReservationAgentHandlerRequiresMessage(t *testing.T) {
	router := gin.New()
	router.POST("/reservation-agent", ReservationAgentHandler(nil))

	w := postJSON(t, router, "/reservation-agent", `{"message": ""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type fakeBookingService struct {
	booking.BookingService

	reservations []models.Reservation
	updateErr    error
	calls        *[]string
}

func (f *fakeBookingService) ListAll() ([]models.Reservation, error) {
	if f.calls != nil {
		*f.calls = append(*f.calls, "list")
	}
	return f.reservations, nil
}

func (f *fakeBookingService) UpdateStatus(id, status string) (*models.Reservation, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &models.Reservation{ID: id, Status: status}, nil
}

func TestAdminListReservationsSweepsFirst(t *testing.T) {
	var calls []string
	bookingSvc := &fakeBookingService{
		reservations: []models.Reservation{{ID: "r1"}},
		calls:        &calls,
	}
	cleanupSvc := &stubCleanup{result: cleanup.SweepResult{Success: true}, calls: &calls}

	router := gin.New()
	router.GET("/api/admin/reservations", AdminListReservationsHandler(bookingSvc, cleanupSvc))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/reservations", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"sweep", "list"}, calls, "due rows are swept before the view loads")
}

func TestAdminListReservationsSurvivesSweepFailure(t *testing.T) {
	bookingSvc := &fakeBookingService{reservations: []models.Reservation{{ID: "r1"}}}
	cleanupSvc := &stubCleanup{result: cleanup.SweepResult{Success: false, Message: "store down"}}

	router := gin.New()
	router.GET("/api/admin/reservations", AdminListReservationsHandler(bookingSvc, cleanupSvc))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/reservations", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "the listing never blocks on the opportunistic sweep")
}

func TestAdminUpdateStatusMapsValidationTo400(t *testing.T) {
	bookingSvc := &fakeBookingService{updateErr: booking.ErrInvalidStatus}

	router := gin.New()
	router.PATCH("/api/admin/reservations/:id/status", AdminUpdateStatusHandler(bookingSvc))

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/reservations/r1/status",
		strings.NewReader(`{"status": "arrived"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type fakeTableStore struct {
	tableRepo.TableRepository

	tables []models.DiningTable
}

func (f *fakeTableStore) GetAll() ([]models.DiningTable, error) { return f.tables, nil }

func TestAdminTablesHandlerListsLayout(t *testing.T) {
	router := gin.New()
	router.GET("/api/admin/tables", AdminTablesHandler(&fakeTableStore{tables: []models.DiningTable{
		{ID: "t2", Name: "Window", Capacity: 2, Active: true},
		{ID: "t4", Name: "Booth", Capacity: 4, Active: true},
	}}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/tables", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Tables []models.DiningTable `json:"tables"`
		Count  int                  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "Window", resp.Tables[0].Name)
}

type fakeActionLogStore struct {
	aiLogRepo.AIActionLogRepository

	entries  []models.AIActionLog
	gotLimit int
}

func (f *fakeActionLogStore) Recent(limit int) ([]models.AIActionLog, error) {
	f.gotLimit = limit
	if limit < len(f.entries) {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

func TestAdminAIActionLogHandler(t *testing.T) {
	store := &fakeActionLogStore{entries: []models.AIActionLog{
		{ID: "a1", Kind: "reservation_turn"},
		{ID: "a2", Kind: "inventory_insight"},
	}}
	router := gin.New()
	router.GET("/api/admin/ai-log", AdminAIActionLogHandler(store))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/ai-log?limit=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, store.gotLimit)

	var resp struct {
		Entries []models.AIActionLog `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "a1", resp.Entries[0].ID)
}

type fakeMailerService struct {
	toEmail   string
	emailType string
}

func (f *fakeMailerService) QueueReservationEmail(res *models.Reservation, emailType, toEmail string) (*models.EmailQueueEntry, error) {
	f.toEmail = toEmail
	f.emailType = emailType
	return &models.EmailQueueEntry{ID: "entry-1", Status: models.EmailPending}, nil
}

func (f *fakeMailerService) Dispatch(ctx context.Context, entryID string) error { return nil }

func (f *fakeMailerService) DrainPending(ctx context.Context, limit int) (int, error) {
	return 0, nil
}

func TestSendEmailHandlerAcceptsExplicitRecipient(t *testing.T) {
	mail := &fakeMailerService{}
	router := gin.New()
	router.POST("/send-email", SendEmailHandler(mail))

	// A user-owned reservation has no guest email; the caller names the
	// recipient.
	w := postJSON(t, router, "/send-email",
		`{"reservation": {"id": "r1", "user_id": "u1", "party_size": 2}, "type": "confirmation", "toEmail": "dana@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dana@example.com", mail.toEmail)
	assert.Equal(t, models.EmailConfirmation, mail.emailType)
}

func TestSendEmailHandlerDefaultsToGuestEmail(t *testing.T) {
	mail := &fakeMailerService{}
	router := gin.New()
	router.POST("/send-email", SendEmailHandler(mail))

	w := postJSON(t, router, "/send-email",
		`{"reservation": {"id": "r1", "guest_email": "guest@example.com"}, "type": "cancellation"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "guest@example.com", mail.toEmail)
}
