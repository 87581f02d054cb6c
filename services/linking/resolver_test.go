// File: services/linking/resolver_test.go
package linking

import (
	"context"
	"errors"
	"testing"

	reservationRepo "maitred/database/repository/reservation"
	"maitred/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLinkStore emulates the guest-reservation matching semantics:
// linking assigns ownership and clears the guest email, so linked rows
// stop matching future lookups.
type fakeLinkStore struct {
	reservationRepo.ReservationRepository

	byEmail map[string][]models.LinkableReservation
	findErr error
	linkErr error
}

func (f *fakeLinkStore) FindLinkable(email string) ([]models.LinkableReservation, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.byEmail[email], nil
}

func (f *fakeLinkStore) LinkGuestReservations(email, userID string) (int64, error) {
	if f.linkErr != nil {
		return 0, f.linkErr
	}
	linked := int64(len(f.byEmail[email]))
	delete(f.byEmail, email)
	return linked, nil
}

type fakeFlagStore struct {
	seen    map[string]bool
	seenErr error
}

func (f *fakeFlagStore) Seen(ctx context.Context, key string) (bool, error) {
	if f.seenErr != nil {
		return false, f.seenErr
	}
	return f.seen[key], nil
}

func (f *fakeFlagStore) MarkSeen(ctx context.Context, key string) error {
	if f.seen == nil {
		f.seen = make(map[string]bool)
	}
	f.seen[key] = true
	return nil
}

func newLinkService(store *fakeLinkStore) (*DefaultLinkingService, *fakeFlagStore) {
	flags := &fakeFlagStore{}
	return &DefaultLinkingService{Repo: store, Flags: flags}, flags
}

var dana = models.AuthIdentity{ID: "u1", Email: "dana@example.com", Name: "Dana"}

func TestCheckForLinkableFindsCandidates(t *testing.T) {
	store := &fakeLinkStore{byEmail: map[string][]models.LinkableReservation{
		"dana@example.com": {{ID: "r1", GuestName: "Dana"}},
	}}
	svc, _ := newLinkService(store)

	result := svc.CheckForLinkable(context.Background(), "sess-1", dana)
	assert.Equal(t, StatusFound, result.Status)
	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "r1", result.Candidates[0].ID)
}

func TestCheckForLinkableNoneWithoutMatches(t *testing.T) {
	svc, _ := newLinkService(&fakeLinkStore{byEmail: map[string][]models.LinkableReservation{}})
	result := svc.CheckForLinkable(context.Background(), "sess-1", dana)
	assert.Equal(t, StatusNone, result.Status)
}

func TestCheckForLinkableNoneWithoutEmail(t *testing.T) {
	svc, _ := newLinkService(&fakeLinkStore{})
	result := svc.CheckForLinkable(context.Background(), "sess-1", models.AuthIdentity{ID: "u1"})
	assert.Equal(t, StatusNone, result.Status)
}

func TestCheckForLinkableRunsOncePerSession(t *testing.T) {
	store := &fakeLinkStore{byEmail: map[string][]models.LinkableReservation{
		"dana@example.com": {{ID: "r1"}},
	}}
	svc, _ := newLinkService(store)

	first := svc.CheckForLinkable(context.Background(), "sess-1", dana)
	assert.Equal(t, StatusFound, first.Status)

	second := svc.CheckForLinkable(context.Background(), "sess-1", dana)
	assert.Equal(t, StatusSkipped, second.Status)
	assert.Empty(t, second.Candidates)

	// A fresh session checks again.
	third := svc.CheckForLinkable(context.Background(), "sess-2", dana)
	assert.Equal(t, StatusFound, third.Status)
}

func TestCheckForLinkableDegradesOnLookupFailure(t *testing.T) {
	svc, _ := newLinkService(&fakeLinkStore{findErr: errors.New("timeout")})
	result := svc.CheckForLinkable(context.Background(), "sess-1", dana)
	assert.Equal(t, StatusDegraded, result.Status)
	assert.Empty(t, result.Candidates)
}

func TestCheckForLinkableFlagErrorFallsThrough(t *testing.T) {
	store := &fakeLinkStore{byEmail: map[string][]models.LinkableReservation{
		"dana@example.com": {{ID: "r1"}},
	}}
	svc, flags := newLinkService(store)
	flags.seenErr = errors.New("redis down")

	result := svc.CheckForLinkable(context.Background(), "sess-1", dana)
	assert.Equal(t, StatusFound, result.Status)
}

func TestLinkIsIdempotent(t *testing.T) {
	store := &fakeLinkStore{byEmail: map[string][]models.LinkableReservation{
		"dana@example.com": {{ID: "r1"}, {ID: "r2"}},
	}}
	svc, _ := newLinkService(store)

	first, err := svc.Link(context.Background(), dana)
	require.NoError(t, err)
	assert.True(t, first.Success)
	assert.Equal(t, int64(2), first.Linked)

	// Linked rows no longer match, so a replay finds nothing.
	second, err := svc.Link(context.Background(), dana)
	require.NoError(t, err)
	assert.True(t, second.Success)
	assert.Equal(t, int64(0), second.Linked)

	check := svc.CheckForLinkable(context.Background(), "sess-after", dana)
	assert.Equal(t, StatusNone, check.Status)
}

func TestLinkRequiresIdentity(t *testing.T) {
	svc, _ := newLinkService(&fakeLinkStore{})
	_, err := svc.Link(context.Background(), models.AuthIdentity{Email: "dana@example.com"})
	require.Error(t, err)
	_, err = svc.Link(context.Background(), models.AuthIdentity{ID: "u1"})
	require.Error(t, err)
}

func TestLinkWrapsStoreError(t *testing.T) {
	svc, _ := newLinkService(&fakeLinkStore{linkErr: errors.New("write conflict")})
	_, err := svc.Link(context.Background(), dana)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to link guest reservations")
}
