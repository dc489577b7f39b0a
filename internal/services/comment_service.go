package services

import (
	"context"
	"strings"

	"github.com/anonto42/socialfeed/backend/internal/apperrors"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/repositories"
	"github.com/anonto42/socialfeed/backend/pkg/metrics"
	"github.com/sirupsen/logrus"
)

type CommentService interface {
	AddComment(ctx context.Context, postID, authorID uint, content string) (*models.Comment, error)
	Reply(ctx context.Context, parentID, authorID uint, content string) (*models.Comment, error)
}

type commentService struct {
	store   *repositories.Store
	log     logrus.FieldLogger
	metrics *metrics.Metrics
}

func NewCommentService(store *repositories.Store, log logrus.FieldLogger, m *metrics.Metrics) CommentService {
	return &commentService{store: store, log: log, metrics: m}
}

func (s *commentService) AddComment(ctx context.Context, postID, authorID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.Validation("Comment content is required")
	}

	comment := &models.Comment{PostID: postID, UserID: authorID, Content: content}
	notified := false
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		post, err := tx.Posts.GetPostByID(postID)
		if err != nil {
			return notFoundOr(err, "Post not found", "Failed to add comment")
		}
		if err := s.insert(tx, comment); err != nil {
			return err
		}
		if post.UserID != authorID {
			if err := notify(tx, post.UserID, authorID, models.NotificationComment, "commented on your post"); err != nil {
				return internalErr("Failed to add comment", err)
			}
			notified = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordCreated(notified)
	return comment, nil
}

// Reply adds a comment under parentID. The reply belongs to the parent's
// post; replies to replies are allowed.
func (s *commentService) Reply(ctx context.Context, parentID, authorID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.Validation("Reply content is required")
	}

	var reply *models.Comment
	notified := false
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		parent, err := tx.Comments.GetCommentByID(parentID)
		if err != nil {
			return notFoundOr(err, "Comment not found", "Failed to add reply")
		}

		reply = &models.Comment{PostID: parent.PostID, UserID: authorID, ReplyTo: &parent.ID, Content: content}
		if err := s.insert(tx, reply); err != nil {
			return err
		}
		if parent.UserID != authorID {
			if err := notify(tx, parent.UserID, authorID, models.NotificationComment, "replied to your comment"); err != nil {
				return internalErr("Failed to add reply", err)
			}
			notified = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordCreated(notified)
	return reply, nil
}

// insert stores the comment, bumps the post's comment counter and attaches the author.
func (s *commentService) insert(tx *repositories.Store, comment *models.Comment) error {
	if err := tx.Comments.CreateComment(comment); err != nil {
		return internalErr("Failed to add comment", err)
	}
	if err := tx.Posts.IncrementCommentsCount(comment.PostID); err != nil {
		return internalErr("Failed to add comment", err)
	}
	author, err := tx.Users.GetUserByID(comment.UserID)
	if err != nil {
		return notFoundOr(err, "User not found", "Failed to add comment")
	}
	compact := author.ToCompact()
	comment.Author = &compact
	return nil
}

func (s *commentService) recordCreated(notified bool) {
	s.metrics.RecordEvent("comment_created")
	if notified {
		s.metrics.RecordNotification(string(models.NotificationComment))
	}
}
