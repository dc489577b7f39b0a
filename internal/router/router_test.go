package router

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anonto42/socialfeed/backend/internal/auth"
	"github.com/anonto42/socialfeed/backend/internal/handlers"
	"github.com/anonto42/socialfeed/backend/internal/middleware"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/testutil"
	"github.com/anonto42/socialfeed/backend/pkg/client"
	"github.com/anonto42/socialfeed/backend/pkg/metrics"
	"github.com/anonto42/socialfeed/backend/pkg/storage"
	"github.com/anonto42/socialfeed/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T, authLimit int) *httptest.Server {
	t.Helper()
	log, _ := test.NewNullLogger()

	local, err := storage.NewLocalStorage(t.TempDir(), "http://example.test/uploads")
	require.NoError(t, err)

	e := echo.New()
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(log)
	SetupRoutes(e, Dependencies{
		DB:      testutil.NewDB(t),
		Logger:  log,
		Tokens:  auth.NewTokenService("router-test-secret", time.Hour),
		Hasher:  auth.NewPasswordHasher(bcrypt.MinCost),
		Storage: local,
		Limiter: middleware.NewLocalRateLimiter(authLimit, time.Minute),
		Metrics: metrics.New(prometheus.NewRegistry()),
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func register(t *testing.T, c *client.Client, first, last, email string) *models.User {
	t.Helper()
	res, err := c.Register(context.Background(), models.RegisterRequest{
		FirstName:   first,
		LastName:    last,
		Email:       email,
		Password:    "password123",
		DateOfBirth: "1990-06-15",
	})
	require.NoError(t, err)
	return res.User
}

func TestScenario_LikeNotifiesAuthor(t *testing.T) {
	srv := newTestServer(t, 100)
	ctx := context.Background()

	jane := client.New(srv.URL)
	john := client.New(srv.URL)
	janeUser := register(t, jane, "Jane", "Doe", "jane@example.com")
	register(t, john, "John", "Smith", "john@example.com")

	post, err := jane.CreatePost(ctx, models.CreatePostRequest{Content: "hello world"})
	require.NoError(t, err)
	assert.Equal(t, janeUser.ID, post.UserID)

	_, err = john.LikePost(ctx, post.ID)
	require.NoError(t, err)

	_, err = john.LikePost(ctx, post.ID)
	assert.Equal(t, http.StatusConflict, client.StatusCode(err))

	detail, err := jane.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.LikesCount)

	notes, err := jane.Notifications(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), notes.UnreadCount)
	require.Len(t, notes.Notifications, 1)
	assert.Equal(t, models.NotificationLike, notes.Notifications[0].NotificationType)
	assert.False(t, notes.Notifications[0].IsRead)

	updated, err := jane.MarkRead(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)
	unread, err := jane.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, unread)

	// deleting someone else's post is forbidden
	assert.Equal(t, http.StatusForbidden, client.StatusCode(john.DeletePost(ctx, post.ID)))
	require.NoError(t, jane.DeletePost(ctx, post.ID))
	_, err = jane.GetPost(ctx, post.ID)
	assert.Equal(t, http.StatusNotFound, client.StatusCode(err))
}

func TestScenario_Pagination(t *testing.T) {
	srv := newTestServer(t, 100)
	ctx := context.Background()

	c := client.New(srv.URL)
	register(t, c, "Jane", "Doe", "jane@example.com")
	for i := 0; i < 15; i++ {
		_, err := c.CreatePost(ctx, models.CreatePostRequest{Content: fmt.Sprintf("post %d", i)})
		require.NoError(t, err)
	}

	page, err := c.ListPosts(ctx, 2, 10)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 5)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.Equal(t, int64(15), page.Pagination.Total)
	require.NotNil(t, page.Posts[0].Author)
	assert.Equal(t, "Jane Doe", page.Posts[0].Author.FullName)
}

func TestScenario_FriendsAndFollowers(t *testing.T) {
	srv := newTestServer(t, 100)
	ctx := context.Background()

	jane := client.New(srv.URL)
	john := client.New(srv.URL)
	janeUser := register(t, jane, "Jane", "Doe", "jane@example.com")
	johnUser := register(t, john, "John", "Smith", "john@example.com")

	_, err := jane.SendFriendRequest(ctx, janeUser.ID)
	assert.Equal(t, http.StatusBadRequest, client.StatusCode(err))

	friendshipID, err := jane.SendFriendRequest(ctx, johnUser.ID)
	require.NoError(t, err)
	_, err = john.SendFriendRequest(ctx, janeUser.ID)
	assert.Equal(t, http.StatusConflict, client.StatusCode(err))

	assert.Equal(t, http.StatusForbidden, client.StatusCode(jane.AcceptFriendRequest(ctx, friendshipID)))
	require.NoError(t, john.AcceptFriendRequest(ctx, friendshipID))

	friends, err := jane.Friends(ctx)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, johnUser.ID, friends[0].User.ID)

	assert.Equal(t, http.StatusBadRequest, client.StatusCode(jane.Follow(ctx, janeUser.ID)))
	require.NoError(t, jane.Follow(ctx, johnUser.ID))
	following, err := jane.IsFollowing(ctx, johnUser.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// public endpoints need no token
	stats, err := client.New(srv.URL).FollowStats(ctx, johnUser.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.FollowersCount)
}

func TestAuthRoutesAreRateLimited(t *testing.T) {
	srv := newTestServer(t, 2)
	ctx := context.Background()
	c := client.New(srv.URL)

	for i := 0; i < 2; i++ {
		_, err := c.Login(ctx, "nobody@example.com", "password123")
		assert.Equal(t, http.StatusUnauthorized, client.StatusCode(err))
	}
	_, err := c.Login(ctx, "nobody@example.com", "password123")
	assert.Equal(t, http.StatusTooManyRequests, client.StatusCode(err))
}

func TestUploadAndStaticServing(t *testing.T) {
	srv := newTestServer(t, 100)
	ctx := context.Background()
	c := client.New(srv.URL)
	register(t, c, "Jane", "Doe", "jane@example.com")

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	res, err := c.UploadImage(ctx, "a.png", bytes.NewReader(png))
	require.NoError(t, err)
	assert.Equal(t, "image/png", res.MimeType)

	resp, err := http.Get(srv.URL + "/uploads/images/" + res.Filename)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, err = client.New(srv.URL).UploadImage(ctx, "a.png", bytes.NewReader(png))
	assert.Equal(t, http.StatusUnauthorized, client.StatusCode(err))
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, 100)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
