package handlers

import (
	"context"
	"mime/multipart"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/stretchr/testify/mock"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (*services.AuthResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*services.AuthResult)
	return res, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (*services.AuthResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*services.AuthResult)
	return res, args.Error(1)
}

func (m *mockAuthService) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type mockPostService struct{ mock.Mock }

func (m *mockPostService) List(ctx context.Context, page services.Page) ([]models.Post, int64, error) {
	args := m.Called(ctx, page)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Get(1).(int64), args.Error(2)
}

func (m *mockPostService) Get(ctx context.Context, id uint) (*models.PostDetail, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*models.PostDetail)
	return post, args.Error(1)
}

func (m *mockPostService) Create(ctx context.Context, authorID uint, req models.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, authorID, req)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *mockPostService) Delete(ctx context.Context, id, requesterID uint) error {
	return m.Called(ctx, id, requesterID).Error(0)
}

func (m *mockPostService) TopLiked(ctx context.Context, limit int) ([]models.Post, error) {
	args := m.Called(ctx, limit)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Error(1)
}

type mockLikeService struct{ mock.Mock }

func (m *mockLikeService) LikePost(ctx context.Context, userID, postID uint) (*models.Like, error) {
	args := m.Called(ctx, userID, postID)
	like, _ := args.Get(0).(*models.Like)
	return like, args.Error(1)
}

func (m *mockLikeService) UnlikePost(ctx context.Context, userID, postID uint) error {
	return m.Called(ctx, userID, postID).Error(0)
}

func (m *mockLikeService) LikeComment(ctx context.Context, userID, commentID uint) (*models.Like, error) {
	args := m.Called(ctx, userID, commentID)
	like, _ := args.Get(0).(*models.Like)
	return like, args.Error(1)
}

func (m *mockLikeService) UnlikeComment(ctx context.Context, userID, commentID uint) error {
	return m.Called(ctx, userID, commentID).Error(0)
}

type mockNotificationService struct{ mock.Mock }

func (m *mockNotificationService) List(ctx context.Context, userID uint, page, limit int) (*services.NotificationList, error) {
	args := m.Called(ctx, userID, page, limit)
	list, _ := args.Get(0).(*services.NotificationList)
	return list, args.Error(1)
}

func (m *mockNotificationService) Grouped(ctx context.Context, userID uint) (*models.GroupedNotifications, error) {
	args := m.Called(ctx, userID)
	grouped, _ := args.Get(0).(*models.GroupedNotifications)
	return grouped, args.Error(1)
}

func (m *mockNotificationService) MarkRead(ctx context.Context, userID uint, ids []uint) (int64, error) {
	args := m.Called(ctx, userID, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationService) Delete(ctx context.Context, userID, id uint) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockNotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockUploadService struct{ mock.Mock }

func (m *mockUploadService) UploadImage(ctx context.Context, file *multipart.FileHeader) (*services.UploadResult, error) {
	args := m.Called(ctx, file)
	res, _ := args.Get(0).(*services.UploadResult)
	return res, args.Error(1)
}
