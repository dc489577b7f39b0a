package models

import (
	"time"

	"gorm.io/gorm"
)

// FriendshipStatus is the state of a friendship row.
type FriendshipStatus string

const (
	// FriendshipNone is the implicit state when no row exists for a pair.
	FriendshipNone     FriendshipStatus = ""
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipBlocked  FriendshipStatus = "blocked"
	// FriendshipRemoved is never stored; it names the transition that
	// deletes the row.
	FriendshipRemoved FriendshipStatus = "removed"
)

var friendshipTransitions = map[FriendshipStatus][]FriendshipStatus{
	FriendshipNone:     {FriendshipPending},
	FriendshipPending:  {FriendshipAccepted, FriendshipRemoved},
	FriendshipAccepted: {FriendshipRemoved},
	FriendshipBlocked:  {},
}

// CanTransition reports whether a friendship in state s may move to next.
func (s FriendshipStatus) CanTransition(next FriendshipStatus) bool {
	for _, allowed := range friendshipTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Friendship is a friend request or an established friendship between two
// users. PairLow/PairHigh hold the ordered pair so that the unique index
// rejects a second row for the same two users in either direction.
type Friendship struct {
	ID          uint             `json:"friendship_id" gorm:"primaryKey"`
	RequesterID uint             `json:"requester_id" gorm:"index;not null"`
	RecipientID uint             `json:"recipient_id" gorm:"index;not null"`
	PairLow     uint             `json:"-" gorm:"not null;uniqueIndex:idx_friendship_pair"`
	PairHigh    uint             `json:"-" gorm:"not null;uniqueIndex:idx_friendship_pair"`
	Status      FriendshipStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// BeforeCreate orders the pair columns.
func (f *Friendship) BeforeCreate(tx *gorm.DB) error {
	f.PairLow, f.PairHigh = f.RequesterID, f.RecipientID
	if f.PairLow > f.PairHigh {
		f.PairLow, f.PairHigh = f.PairHigh, f.PairLow
	}
	if f.Status == FriendshipNone {
		f.Status = FriendshipPending
	}
	return nil
}

// Involves reports whether userID is one of the two parties.
func (f *Friendship) Involves(userID uint) bool {
	return f.RequesterID == userID || f.RecipientID == userID
}

// OtherParty returns the id of the user on the other side of the friendship.
func (f *Friendship) OtherParty(userID uint) uint {
	if f.RequesterID == userID {
		return f.RecipientID
	}
	return f.RequesterID
}

// FriendRequestBody defines the request body for sending a friend request
type FriendRequestBody struct {
	RecipientID uint `json:"recipientId" validate:"required"`
}

// Friend is one entry of a user's friend list.
type Friend struct {
	FriendshipID uint        `json:"friendship_id"`
	FriendsSince time.Time   `json:"friends_since"`
	User         UserCompact `json:"user"`
}

// PendingFriendRequest is an incoming request awaiting the recipient.
type PendingFriendRequest struct {
	FriendshipID uint        `json:"friendship_id"`
	RequestedAt  time.Time   `json:"requested_at"`
	Requester    UserCompact `json:"requester"`
}
