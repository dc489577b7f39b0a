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

type PostService interface {
	List(ctx context.Context, page Page) ([]models.Post, int64, error)
	Get(ctx context.Context, id uint) (*models.PostDetail, error)
	Create(ctx context.Context, authorID uint, req models.CreatePostRequest) (*models.Post, error)
	Delete(ctx context.Context, id, requesterID uint) error
	TopLiked(ctx context.Context, limit int) ([]models.Post, error)
}

type postService struct {
	store   *repositories.Store
	log     logrus.FieldLogger
	metrics *metrics.Metrics
}

func NewPostService(store *repositories.Store, log logrus.FieldLogger, m *metrics.Metrics) PostService {
	return &postService{store: store, log: log, metrics: m}
}

// List returns a page of posts, newest first, with their authors.
func (s *postService) List(ctx context.Context, page Page) ([]models.Post, int64, error) {
	store := s.store.WithContext(ctx)

	total, err := store.Posts.CountPosts()
	if err != nil {
		return nil, 0, internalErr("Failed to get posts", err)
	}
	posts, err := store.Posts.ListPosts(page.Offset(), page.Limit)
	if err != nil {
		return nil, 0, internalErr("Failed to get posts", err)
	}
	if err := attachPostAuthors(store, posts); err != nil {
		return nil, 0, internalErr("Failed to get posts", err)
	}
	return posts, total, nil
}

// Get returns a post with every comment and reply, oldest first.
func (s *postService) Get(ctx context.Context, id uint) (*models.PostDetail, error) {
	store := s.store.WithContext(ctx)

	post, err := store.Posts.GetPostByID(id)
	if err != nil {
		return nil, notFoundOr(err, "Post not found", "Failed to get post")
	}
	comments, err := store.Comments.GetCommentsByPostID(id)
	if err != nil {
		return nil, internalErr("Failed to get post", err)
	}

	posts := []models.Post{*post}
	if err := attachPostAuthors(store, posts); err != nil {
		return nil, internalErr("Failed to get post", err)
	}
	if err := attachCommentAuthors(store, comments); err != nil {
		return nil, internalErr("Failed to get post", err)
	}
	return &models.PostDetail{Post: posts[0], Comments: comments}, nil
}

func (s *postService) Create(ctx context.Context, authorID uint, req models.CreatePostRequest) (*models.Post, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.Validation("Post content is required")
	}

	post := &models.Post{UserID: authorID, Content: content}
	if url := strings.TrimSpace(req.ImageURL); url != "" {
		post.ImageURL = &url
	}
	if url := strings.TrimSpace(req.VideoURL); url != "" {
		post.VideoURL = &url
	}

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		author, err := tx.Users.GetUserByID(authorID)
		if err != nil {
			return notFoundOr(err, "User not found", "Failed to create post")
		}
		if err := tx.Posts.CreatePost(post); err != nil {
			return internalErr("Failed to create post", err)
		}
		if err := tx.Users.IncrementPostCount(authorID); err != nil {
			return internalErr("Failed to create post", err)
		}
		compact := author.ToCompact()
		post.Author = &compact
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordEvent("post_created")
	s.log.WithFields(logrus.Fields{"post_id": post.ID, "user_id": authorID}).Debug("post created")
	return post, nil
}

// Delete removes a post together with its comments and every like on the
// post or its comments. Only the author may delete.
func (s *postService) Delete(ctx context.Context, id, requesterID uint) error {
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		post, err := tx.Posts.GetPostByID(id)
		if err != nil {
			return notFoundOr(err, "Post not found", "Failed to delete post")
		}
		if post.UserID != requesterID {
			return apperrors.Forbidden("You can only delete your own posts")
		}

		commentIDs, err := tx.Comments.GetCommentIDsByPostID(id)
		if err != nil {
			return internalErr("Failed to delete post", err)
		}
		if err := tx.Likes.DeleteLikesForPost(id, commentIDs); err != nil {
			return internalErr("Failed to delete post", err)
		}
		if err := tx.Comments.DeleteCommentsByPostID(id); err != nil {
			return internalErr("Failed to delete post", err)
		}
		if err := tx.Posts.DeletePost(id); err != nil {
			return notFoundOr(err, "Post not found", "Failed to delete post")
		}
		if err := tx.Users.DecrementPostCount(post.UserID); err != nil {
			return internalErr("Failed to delete post", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.RecordEvent("post_deleted")
	return nil
}

func (s *postService) TopLiked(ctx context.Context, limit int) ([]models.Post, error) {
	limit = NewPage(1, limit).Limit
	store := s.store.WithContext(ctx)

	posts, err := store.Posts.GetTopLiked(limit)
	if err != nil {
		return nil, internalErr("Failed to get top posts", err)
	}
	if err := attachPostAuthors(store, posts); err != nil {
		return nil, internalErr("Failed to get top posts", err)
	}
	return posts, nil
}
