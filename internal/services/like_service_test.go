package services

import (
	"testing"

	"github.com/anonto42/socialfeed/backend/internal/apperrors"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeService_LikeUnlikeCycle(t *testing.T) {
	e := newEnv(t)
	svc := NewLikeService(e.store, e.log, nil)
	author := e.user(t, "Jane", "Doe", "jane@example.com")
	fan := e.user(t, "John", "Smith", "john@example.com")
	post := testutil.CreatePost(t, e.store, author.ID, "hello")

	likesCount := func() int64 {
		p, err := e.store.Posts.GetPostByID(post.ID)
		require.NoError(t, err)
		return p.LikesCount
	}

	like, err := svc.LikePost(e.ctx, fan.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LikeTypePost, like.LikeType)
	require.NotNil(t, like.PostID)
	assert.Equal(t, post.ID, *like.PostID)
	assert.Equal(t, int64(1), likesCount())

	_, err = svc.LikePost(e.ctx, fan.ID, post.ID)
	assertKind(t, err, apperrors.KindConflict)
	assert.Equal(t, int64(1), likesCount())

	require.NoError(t, svc.UnlikePost(e.ctx, fan.ID, post.ID))
	assert.Equal(t, int64(0), likesCount())

	assertKind(t, svc.UnlikePost(e.ctx, fan.ID, post.ID), apperrors.KindNotFound)
	assert.Equal(t, int64(0), likesCount())

	_, err = svc.LikePost(e.ctx, fan.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), likesCount())

	notes := e.notifications(t, author.ID)
	require.Len(t, notes, 2)
	assert.Equal(t, "John Smith liked your post", notes[0].Content)
	assert.Equal(t, models.NotificationLike, notes[0].NotificationType)
}

func TestLikeService_SelfLikeDoesNotNotify(t *testing.T) {
	e := newEnv(t)
	svc := NewLikeService(e.store, e.log, nil)
	author := e.user(t, "Jane", "Doe", "jane@example.com")
	post := testutil.CreatePost(t, e.store, author.ID, "hello")

	_, err := svc.LikePost(e.ctx, author.ID, post.ID)
	require.NoError(t, err)
	assert.Empty(t, e.notifications(t, author.ID))
}

func TestLikeService_MissingTargets(t *testing.T) {
	e := newEnv(t)
	svc := NewLikeService(e.store, e.log, nil)
	user := e.user(t, "Jane", "Doe", "jane@example.com")

	_, err := svc.LikePost(e.ctx, user.ID, 9999)
	assertKind(t, err, apperrors.KindNotFound)

	_, err = svc.LikeComment(e.ctx, user.ID, 9999)
	assertKind(t, err, apperrors.KindNotFound)
}

func TestLikeService_CommentLikes(t *testing.T) {
	e := newEnv(t)
	likes := NewLikeService(e.store, e.log, nil)
	comments := NewCommentService(e.store, e.log, nil)
	author := e.user(t, "Jane", "Doe", "jane@example.com")
	fan := e.user(t, "John", "Smith", "john@example.com")
	post := testutil.CreatePost(t, e.store, author.ID, "hello")

	comment, err := comments.AddComment(e.ctx, post.ID, author.ID, "my own comment")
	require.NoError(t, err)

	like, err := likes.LikeComment(e.ctx, fan.ID, comment.ID)
	require.NoError(t, err)
	require.NotNil(t, like.CommentID)
	assert.Nil(t, like.PostID)

	_, err = likes.LikeComment(e.ctx, fan.ID, comment.ID)
	assertKind(t, err, apperrors.KindConflict)

	got, err := e.store.Comments.GetCommentByID(comment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.LikesCount)

	notes := e.notifications(t, author.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, "John Smith liked your comment", notes[0].Content)

	require.NoError(t, likes.UnlikeComment(e.ctx, fan.ID, comment.ID))
	got, err = e.store.Comments.GetCommentByID(comment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.LikesCount)

	// post likes are tracked independently of comment likes
	p, err := e.store.Posts.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.LikesCount)
}
