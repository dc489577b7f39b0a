package services

import (
	"testing"

	"github.com/anonto42/socialfeed/backend/internal/apperrors"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_AddCommentNotifiesAuthor(t *testing.T) {
	e := newEnv(t)
	svc := NewCommentService(e.store, e.log, nil)
	author := e.user(t, "Jane", "Doe", "jane@example.com")
	reader := e.user(t, "John", "Smith", "john@example.com")
	post := testutil.CreatePost(t, e.store, author.ID, "hello")

	comment, err := svc.AddComment(e.ctx, post.ID, reader.ID, " great post ")
	require.NoError(t, err)
	assert.Equal(t, "great post", comment.Content)
	assert.Nil(t, comment.ReplyTo)
	assert.Equal(t, "John Smith", comment.Author.FullName)

	got, err := e.store.Posts.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.CommentsCount)

	notes := e.notifications(t, author.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, "John Smith commented on your post", notes[0].Content)
	assert.Equal(t, models.NotificationComment, notes[0].NotificationType)
	assert.False(t, notes[0].IsRead)
}

func TestCommentService_SelfCommentDoesNotNotify(t *testing.T) {
	e := newEnv(t)
	svc := NewCommentService(e.store, e.log, nil)
	author := e.user(t, "Jane", "Doe", "jane@example.com")
	post := testutil.CreatePost(t, e.store, author.ID, "hello")

	_, err := svc.AddComment(e.ctx, post.ID, author.ID, "talking to myself")
	require.NoError(t, err)
	assert.Empty(t, e.notifications(t, author.ID))
}

func TestCommentService_AddCommentErrors(t *testing.T) {
	e := newEnv(t)
	svc := NewCommentService(e.store, e.log, nil)
	author := e.user(t, "Jane", "Doe", "jane@example.com")
	post := testutil.CreatePost(t, e.store, author.ID, "hello")

	_, err := svc.AddComment(e.ctx, 9999, author.ID, "hi")
	assertKind(t, err, apperrors.KindNotFound)

	_, err = svc.AddComment(e.ctx, post.ID, author.ID, "   ")
	assertKind(t, err, apperrors.KindValidation)
}

func TestCommentService_ReplyChain(t *testing.T) {
	e := newEnv(t)
	svc := NewCommentService(e.store, e.log, nil)
	author := e.user(t, "Jane", "Doe", "jane@example.com")
	reader := e.user(t, "John", "Smith", "john@example.com")
	post := testutil.CreatePost(t, e.store, author.ID, "hello")

	top, err := svc.AddComment(e.ctx, post.ID, reader.ID, "first")
	require.NoError(t, err)
	reply, err := svc.Reply(e.ctx, top.ID, author.ID, "thanks")
	require.NoError(t, err)
	nested, err := svc.Reply(e.ctx, reply.ID, reader.ID, "you're welcome")
	require.NoError(t, err)

	assert.Equal(t, post.ID, reply.PostID)
	assert.Equal(t, post.ID, nested.PostID)
	assert.Equal(t, top.ID, *reply.ReplyTo)
	assert.Equal(t, reply.ID, *nested.ReplyTo)

	got, err := e.store.Posts.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.CommentsCount)

	readerNotes := e.notifications(t, reader.ID)
	require.Len(t, readerNotes, 1)
	assert.Equal(t, "Jane Doe replied to your comment", readerNotes[0].Content)

	_, err = svc.Reply(e.ctx, 9999, author.ID, "orphan")
	assertKind(t, err, apperrors.KindNotFound)
}
