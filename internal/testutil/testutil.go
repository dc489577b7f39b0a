// Package testutil opens throwaway databases and seeds fixtures for tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/repositories"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewDB returns a migrated in-memory SQLite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the in-memory database alive and serializes
	// transactions the way a row lock would.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repositories.AutoMigrate(db))
	return db
}

// NewStore is NewDB wrapped in a repositories.Store.
func NewStore(t *testing.T) *repositories.Store {
	t.Helper()
	return repositories.NewStore(NewDB(t))
}

// CreateUser inserts a user with a placeholder password hash.
func CreateUser(t *testing.T, store *repositories.Store, first, last, email string) *models.User {
	t.Helper()
	user := &models.User{
		FirstName:    first,
		LastName:     last,
		Email:        email,
		PasswordHash: "not-a-real-hash",
		DateOfBirth:  time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Users.CreateUser(user))
	return user
}

// CreatePost inserts a post directly, bypassing the service counters.
func CreatePost(t *testing.T, store *repositories.Store, userID uint, content string) *models.Post {
	t.Helper()
	post := &models.Post{UserID: userID, Content: content}
	require.NoError(t, store.Posts.CreatePost(post))
	return post
}
