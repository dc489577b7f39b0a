// Package services implements the social graph and content operations on
// top of repositories.Store. Every multi-step mutation runs in one
// transaction and reports failures as *apperrors.Error.
package services

import (
	"math"

	"github.com/anonto42/socialfeed/backend/internal/apperrors"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/repositories"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Page is a normalized page/limit pair.
type Page struct {
	Page  int
	Limit int
}

// NewPage applies defaults: page 1, limit 10, limit capped at 100.
func NewPage(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return Page{Page: page, Limit: limit}
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages is ceil(total/limit).
func (p Page) TotalPages(total int64) int {
	if p.Limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(p.Limit)))
}

// notFoundOr turns gorm.ErrRecordNotFound into a NotFound error and anything
// else into an Internal one.
func notFoundOr(err error, notFound, internal string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(notFound)
	}
	return internalErr(internal, err)
}

// conflictOr turns a unique-index violation into a Conflict error.
func conflictOr(err error, conflict, internal string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict(conflict)
	}
	return internalErr(internal, err)
}

func internalErr(msg string, err error) error {
	if apperrors.KindOf(err) != apperrors.KindInternal {
		return err
	}
	return apperrors.Internal(msg, errors.WithStack(err))
}

// compactUsers loads users by id and indexes their compact view.
func compactUsers(tx *repositories.Store, ids []uint) (map[uint]models.UserCompact, error) {
	users, err := tx.Users.GetUsersByIDs(uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	out := make(map[uint]models.UserCompact, len(users))
	for i := range users {
		out[users[i].ID] = users[i].ToCompact()
	}
	return out, nil
}

func attachPostAuthors(tx *repositories.Store, posts []models.Post) error {
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.UserID)
	}
	authors, err := compactUsers(tx, ids)
	if err != nil {
		return err
	}
	for i := range posts {
		if author, ok := authors[posts[i].UserID]; ok {
			posts[i].Author = &author
		}
	}
	return nil
}

func attachCommentAuthors(tx *repositories.Store, comments []models.Comment) error {
	ids := make([]uint, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.UserID)
	}
	authors, err := compactUsers(tx, ids)
	if err != nil {
		return err
	}
	for i := range comments {
		if author, ok := authors[comments[i].UserID]; ok {
			comments[i].Author = &author
		}
	}
	return nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// notify writes a notification for recipientID inside tx, naming the actor.
func notify(tx *repositories.Store, recipientID, actorID uint, t models.NotificationType, action string) error {
	actor, err := tx.Users.GetUserByID(actorID)
	if err != nil {
		return errors.Wrap(err, "loading notification actor")
	}
	return tx.Notifications.CreateNotification(&models.Notification{
		UserID:           recipientID,
		NotificationType: t,
		Content:          actor.FullName() + " " + action,
	})
}
