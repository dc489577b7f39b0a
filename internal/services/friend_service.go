package services

import (
	"context"

	"github.com/anonto42/socialfeed/backend/internal/apperrors"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/repositories"
	"github.com/anonto42/socialfeed/backend/pkg/metrics"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type FriendService interface {
	SendRequest(ctx context.Context, requesterID, recipientID uint) (*models.Friendship, error)
	Accept(ctx context.Context, friendshipID, actorID uint) (*models.Friendship, error)
	Remove(ctx context.Context, friendshipID, actorID uint) error
	ListFriends(ctx context.Context, userID uint) ([]models.Friend, error)
	ListRequests(ctx context.Context, userID uint) ([]models.PendingFriendRequest, error)
}

type friendService struct {
	store   *repositories.Store
	log     logrus.FieldLogger
	metrics *metrics.Metrics
}

func NewFriendService(store *repositories.Store, log logrus.FieldLogger, m *metrics.Metrics) FriendService {
	return &friendService{store: store, log: log, metrics: m}
}

func (s *friendService) SendRequest(ctx context.Context, requesterID, recipientID uint) (*models.Friendship, error) {
	if requesterID == recipientID {
		return nil, apperrors.Validation("Cannot send friend request to yourself")
	}

	friendship := &models.Friendship{RequesterID: requesterID, RecipientID: recipientID, Status: models.FriendshipPending}
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Users.GetUserByID(recipientID); err != nil {
			return notFoundOr(err, "User not found", "Failed to send friend request")
		}

		existing, err := tx.Friendships.GetFriendshipBetween(requesterID, recipientID)
		switch {
		case err == nil:
			return existingFriendshipError(existing)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return internalErr("Failed to send friend request", err)
		}

		if err := tx.Friendships.CreateFriendship(friendship); err != nil {
			return conflictOr(err, "Friend request already exists", "Failed to send friend request")
		}
		if err := notify(tx, recipientID, requesterID, models.NotificationFriendRequest, "sent you a friend request"); err != nil {
			return internalErr("Failed to send friend request", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordEvent("friend_request_sent")
	s.metrics.RecordNotification(string(models.NotificationFriendRequest))
	s.log.WithFields(logrus.Fields{"requester_id": requesterID, "recipient_id": recipientID}).Debug("friend request sent")
	return friendship, nil
}

// existingFriendshipError explains why a pair that already has a row cannot
// start a new request.
func existingFriendshipError(existing *models.Friendship) error {
	switch existing.Status {
	case models.FriendshipBlocked:
		return apperrors.Forbidden("Cannot send friend request to this user")
	case models.FriendshipAccepted:
		return apperrors.Conflict("You are already friends")
	default:
		return apperrors.Conflict("Friend request already exists")
	}
}

// Accept moves a pending request to accepted. Only the recipient may accept.
func (s *friendService) Accept(ctx context.Context, friendshipID, actorID uint) (*models.Friendship, error) {
	var friendship *models.Friendship
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		friendship, err = tx.Friendships.GetFriendshipByID(friendshipID)
		if err != nil {
			return notFoundOr(err, "Friend request not found", "Failed to accept friend request")
		}
		if friendship.RecipientID != actorID {
			return apperrors.Forbidden("Only the recipient can accept this friend request")
		}
		if !friendship.Status.CanTransition(models.FriendshipAccepted) {
			return apperrors.Validation("Friend request is not pending")
		}

		if err := tx.Friendships.UpdateStatus(friendship.ID, models.FriendshipAccepted); err != nil {
			return notFoundOr(err, "Friend request not found", "Failed to accept friend request")
		}
		friendship.Status = models.FriendshipAccepted

		if err := notify(tx, friendship.RequesterID, actorID, models.NotificationFriendRequest, "accepted your friend request"); err != nil {
			return internalErr("Failed to accept friend request", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordEvent("friend_request_accepted")
	s.metrics.RecordNotification(string(models.NotificationFriendRequest))
	return friendship, nil
}

// Remove deletes a pending or accepted friendship. Either party may remove;
// blocked rows are left alone.
func (s *friendService) Remove(ctx context.Context, friendshipID, actorID uint) error {
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		friendship, err := tx.Friendships.GetFriendshipByID(friendshipID)
		if err != nil {
			return notFoundOr(err, "Friendship not found", "Failed to remove friendship")
		}
		if !friendship.Involves(actorID) {
			return apperrors.Forbidden("You are not part of this friendship")
		}
		if !friendship.Status.CanTransition(models.FriendshipRemoved) {
			return apperrors.Forbidden("This friendship cannot be removed")
		}
		if err := tx.Friendships.DeleteFriendship(friendship.ID); err != nil {
			return notFoundOr(err, "Friendship not found", "Failed to remove friendship")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.RecordEvent("friendship_removed")
	return nil
}

func (s *friendService) ListFriends(ctx context.Context, userID uint) ([]models.Friend, error) {
	store := s.store.WithContext(ctx)

	friendships, err := store.Friendships.GetAcceptedFriendships(userID)
	if err != nil {
		return nil, internalErr("Failed to get friends", err)
	}

	ids := make([]uint, 0, len(friendships))
	for i := range friendships {
		ids = append(ids, friendships[i].OtherParty(userID))
	}
	users, err := compactUsers(store, ids)
	if err != nil {
		return nil, internalErr("Failed to get friends", err)
	}

	friends := make([]models.Friend, 0, len(friendships))
	for i := range friendships {
		user, ok := users[friendships[i].OtherParty(userID)]
		if !ok {
			continue
		}
		friends = append(friends, models.Friend{
			FriendshipID: friendships[i].ID,
			FriendsSince: friendships[i].UpdatedAt,
			User:         user,
		})
	}
	return friends, nil
}

func (s *friendService) ListRequests(ctx context.Context, userID uint) ([]models.PendingFriendRequest, error) {
	store := s.store.WithContext(ctx)

	pending, err := store.Friendships.GetPendingRequests(userID)
	if err != nil {
		return nil, internalErr("Failed to get friend requests", err)
	}

	ids := make([]uint, 0, len(pending))
	for i := range pending {
		ids = append(ids, pending[i].RequesterID)
	}
	users, err := compactUsers(store, ids)
	if err != nil {
		return nil, internalErr("Failed to get friend requests", err)
	}

	requests := make([]models.PendingFriendRequest, 0, len(pending))
	for i := range pending {
		requester, ok := users[pending[i].RequesterID]
		if !ok {
			continue
		}
		requests = append(requests, models.PendingFriendRequest{
			FriendshipID: pending[i].ID,
			RequestedAt:  pending[i].CreatedAt,
			Requester:    requester,
		})
	}
	return requests, nil
}
