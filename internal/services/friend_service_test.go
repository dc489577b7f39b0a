package services

import (
	"testing"

	"github.com/anonto42/socialfeed/backend/internal/apperrors"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendshipStatus_CanTransition(t *testing.T) {
	cases := []struct {
		from, to models.FriendshipStatus
		allowed  bool
	}{
		{models.FriendshipNone, models.FriendshipPending, true},
		{models.FriendshipPending, models.FriendshipAccepted, true},
		{models.FriendshipPending, models.FriendshipRemoved, true},
		{models.FriendshipAccepted, models.FriendshipRemoved, true},
		{models.FriendshipAccepted, models.FriendshipAccepted, false},
		{models.FriendshipAccepted, models.FriendshipPending, false},
		{models.FriendshipBlocked, models.FriendshipRemoved, false},
		{models.FriendshipBlocked, models.FriendshipAccepted, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.allowed, c.from.CanTransition(c.to), "%q -> %q", c.from, c.to)
	}
}

func TestFriendService_SendRequest(t *testing.T) {
	e := newEnv(t)
	svc := NewFriendService(e.store, e.log, nil)
	jane := e.user(t, "Jane", "Doe", "jane@example.com")
	john := e.user(t, "John", "Smith", "john@example.com")

	_, err := svc.SendRequest(e.ctx, jane.ID, jane.ID)
	assertKind(t, err, apperrors.KindValidation)

	_, err = svc.SendRequest(e.ctx, jane.ID, 9999)
	assertKind(t, err, apperrors.KindNotFound)

	f, err := svc.SendRequest(e.ctx, jane.ID, john.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipPending, f.Status)
	assert.Equal(t, jane.ID, f.RequesterID)

	notes := e.notifications(t, john.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, "Jane Doe sent you a friend request", notes[0].Content)
	assert.Equal(t, models.NotificationFriendRequest, notes[0].NotificationType)

	// either direction collides with the existing row
	_, err = svc.SendRequest(e.ctx, jane.ID, john.ID)
	assertKind(t, err, apperrors.KindConflict)
	_, err = svc.SendRequest(e.ctx, john.ID, jane.ID)
	assertKind(t, err, apperrors.KindConflict)
}

func TestFriendService_AcceptFlow(t *testing.T) {
	e := newEnv(t)
	svc := NewFriendService(e.store, e.log, nil)
	jane := e.user(t, "Jane", "Doe", "jane@example.com")
	john := e.user(t, "John", "Smith", "john@example.com")
	mallory := e.user(t, "Mallory", "X", "mallory@example.com")

	f, err := svc.SendRequest(e.ctx, jane.ID, john.ID)
	require.NoError(t, err)

	requests, err := svc.ListRequests(e.ctx, john.ID)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, f.ID, requests[0].FriendshipID)
	assert.Equal(t, "Jane Doe", requests[0].Requester.FullName)

	_, err = svc.Accept(e.ctx, f.ID, jane.ID)
	assertKind(t, err, apperrors.KindForbidden)
	_, err = svc.Accept(e.ctx, f.ID, mallory.ID)
	assertKind(t, err, apperrors.KindForbidden)
	_, err = svc.Accept(e.ctx, 9999, john.ID)
	assertKind(t, err, apperrors.KindNotFound)

	accepted, err := svc.Accept(e.ctx, f.ID, john.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipAccepted, accepted.Status)

	_, err = svc.Accept(e.ctx, f.ID, john.ID)
	assertKind(t, err, apperrors.KindValidation)

	notes := e.notifications(t, jane.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, "John Smith accepted your friend request", notes[0].Content)

	for _, pair := range [][2]uint{{jane.ID, john.ID}, {john.ID, jane.ID}} {
		friends, err := svc.ListFriends(e.ctx, pair[0])
		require.NoError(t, err)
		require.Len(t, friends, 1)
		assert.Equal(t, pair[1], friends[0].User.ID)
		assert.Equal(t, f.ID, friends[0].FriendshipID)
	}

	requests, err = svc.ListRequests(e.ctx, john.ID)
	require.NoError(t, err)
	assert.Empty(t, requests)

	_, err = svc.SendRequest(e.ctx, john.ID, jane.ID)
	assertKind(t, err, apperrors.KindConflict)
}

func TestFriendService_Remove(t *testing.T) {
	e := newEnv(t)
	svc := NewFriendService(e.store, e.log, nil)
	jane := e.user(t, "Jane", "Doe", "jane@example.com")
	john := e.user(t, "John", "Smith", "john@example.com")
	mallory := e.user(t, "Mallory", "X", "mallory@example.com")

	f, err := svc.SendRequest(e.ctx, jane.ID, john.ID)
	require.NoError(t, err)

	assertKind(t, svc.Remove(e.ctx, f.ID, mallory.ID), apperrors.KindForbidden)
	assertKind(t, svc.Remove(e.ctx, 9999, jane.ID), apperrors.KindNotFound)

	// a pending request can be withdrawn
	require.NoError(t, svc.Remove(e.ctx, f.ID, jane.ID))

	f, err = svc.SendRequest(e.ctx, john.ID, jane.ID)
	require.NoError(t, err)
	_, err = svc.Accept(e.ctx, f.ID, jane.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(e.ctx, f.ID, jane.ID))
	friends, err := svc.ListFriends(e.ctx, john.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestFriendService_BlockedIsTerminal(t *testing.T) {
	e := newEnv(t)
	svc := NewFriendService(e.store, e.log, nil)
	jane := e.user(t, "Jane", "Doe", "jane@example.com")
	john := e.user(t, "John", "Smith", "john@example.com")

	blocked := &models.Friendship{RequesterID: jane.ID, RecipientID: john.ID, Status: models.FriendshipBlocked}
	require.NoError(t, e.store.Friendships.CreateFriendship(blocked))

	_, err := svc.SendRequest(e.ctx, john.ID, jane.ID)
	assertKind(t, err, apperrors.KindForbidden)

	_, err = svc.Accept(e.ctx, blocked.ID, john.ID)
	assertKind(t, err, apperrors.KindValidation)

	assertKind(t, svc.Remove(e.ctx, blocked.ID, jane.ID), apperrors.KindForbidden)

	still, err := e.store.Friendships.GetFriendshipByID(blocked.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipBlocked, still.Status)
}
