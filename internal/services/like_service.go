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

type LikeService interface {
	LikePost(ctx context.Context, userID, postID uint) (*models.Like, error)
	UnlikePost(ctx context.Context, userID, postID uint) error
	LikeComment(ctx context.Context, userID, commentID uint) (*models.Like, error)
	UnlikeComment(ctx context.Context, userID, commentID uint) error
}

type likeService struct {
	store   *repositories.Store
	log     logrus.FieldLogger
	metrics *metrics.Metrics
}

func NewLikeService(store *repositories.Store, log logrus.FieldLogger, m *metrics.Metrics) LikeService {
	return &likeService{store: store, log: log, metrics: m}
}

// likeTarget abstracts the post/comment differences of like and unlike.
type likeTarget struct {
	likeType  models.LikeType
	label     string // "Post" or "Comment"
	noun      string // "post" or "comment"
	owner     func(tx *repositories.Store, id uint) (uint, error)
	increment func(tx *repositories.Store, id uint) error
	decrement func(tx *repositories.Store, id uint) error
	attach    func(like *models.Like, id uint)
}

var postTarget = likeTarget{
	likeType: models.LikeTypePost,
	label:    "Post",
	noun:     "post",
	owner: func(tx *repositories.Store, id uint) (uint, error) {
		post, err := tx.Posts.GetPostByID(id)
		if err != nil {
			return 0, err
		}
		return post.UserID, nil
	},
	increment: func(tx *repositories.Store, id uint) error { return tx.Posts.IncrementLikesCount(id) },
	decrement: func(tx *repositories.Store, id uint) error { return tx.Posts.DecrementLikesCount(id) },
	attach:    func(like *models.Like, id uint) { like.PostID = &id },
}

var commentTarget = likeTarget{
	likeType: models.LikeTypeComment,
	label:    "Comment",
	noun:     "comment",
	owner: func(tx *repositories.Store, id uint) (uint, error) {
		comment, err := tx.Comments.GetCommentByID(id)
		if err != nil {
			return 0, err
		}
		return comment.UserID, nil
	},
	increment: func(tx *repositories.Store, id uint) error { return tx.Comments.IncrementLikesCount(id) },
	decrement: func(tx *repositories.Store, id uint) error { return tx.Comments.DecrementLikesCount(id) },
	attach:    func(like *models.Like, id uint) { like.CommentID = &id },
}

func (s *likeService) LikePost(ctx context.Context, userID, postID uint) (*models.Like, error) {
	return s.like(ctx, postTarget, userID, postID)
}

func (s *likeService) UnlikePost(ctx context.Context, userID, postID uint) error {
	return s.unlike(ctx, postTarget, userID, postID)
}

func (s *likeService) LikeComment(ctx context.Context, userID, commentID uint) (*models.Like, error) {
	return s.like(ctx, commentTarget, userID, commentID)
}

func (s *likeService) UnlikeComment(ctx context.Context, userID, commentID uint) error {
	return s.unlike(ctx, commentTarget, userID, commentID)
}

func (s *likeService) like(ctx context.Context, target likeTarget, userID, targetID uint) (*models.Like, error) {
	var like *models.Like
	notified := false
	failed := "Failed to like " + target.noun
	already := target.label + " already liked"

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		ownerID, err := target.owner(tx, targetID)
		if err != nil {
			return notFoundOr(err, target.label+" not found", failed)
		}

		liked, err := tx.Likes.HasUserLiked(userID, target.likeType, targetID)
		if err != nil {
			return internalErr(failed, err)
		}
		if liked {
			return apperrors.Conflict(already)
		}

		like = &models.Like{UserID: userID, LikeType: target.likeType, TargetID: targetID}
		target.attach(like, targetID)
		if err := tx.Likes.CreateLike(like); err != nil {
			return conflictOr(err, already, failed)
		}
		if err := target.increment(tx, targetID); err != nil {
			return internalErr(failed, err)
		}

		if ownerID != userID {
			if err := notify(tx, ownerID, userID, models.NotificationLike, "liked your "+target.noun); err != nil {
				return internalErr(failed, err)
			}
			notified = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordEvent(string(target.likeType) + "_like")
	if notified {
		s.metrics.RecordNotification(string(models.NotificationLike))
	}
	return like, nil
}

func (s *likeService) unlike(ctx context.Context, target likeTarget, userID, targetID uint) error {
	failed := "Failed to unlike " + target.noun

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Likes.DeleteLike(userID, target.likeType, targetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Like not found")
			}
			return internalErr(failed, err)
		}
		if err := target.decrement(tx, targetID); err != nil {
			return internalErr(failed, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.RecordEvent(string(target.likeType) + "_unlike")
	return nil
}
