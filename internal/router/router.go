package router

import (
	"github.com/anonto42/socialfeed/backend/internal/auth"
	"github.com/anonto42/socialfeed/backend/internal/handlers"
	"github.com/anonto42/socialfeed/backend/internal/middleware"
	"github.com/anonto42/socialfeed/backend/internal/repositories"
	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/anonto42/socialfeed/backend/pkg/metrics"
	"github.com/anonto42/socialfeed/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// uploadBodyLimit leaves headroom over services.MaxImageSize for the
// multipart framing so oversize files reach the service's own check.
const uploadBodyLimit = "6M"

// Dependencies are the long-lived collaborators the routes are built from.
type Dependencies struct {
	DB      *gorm.DB
	Logger  logrus.FieldLogger
	Tokens  *auth.TokenService
	Hasher  *auth.PasswordHasher
	Storage storage.Storage
	Limiter middleware.RateLimiter
	Metrics *metrics.Metrics
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	log := deps.Logger
	e.Use(middleware.MetricsMiddleware(deps.Metrics))

	// Health check - always accessible
	e.GET("/health", handlers.NewHealthHandler(deps.DB).HealthCheck)
	if local, ok := deps.Storage.(*storage.LocalStorage); ok {
		e.Static("/uploads", local.Dir())
	}

	// --- Initialize Services ---
	store := repositories.NewStore(deps.DB)
	hasher := deps.Hasher
	if hasher == nil {
		hasher = auth.NewPasswordHasher(0)
	}
	authService := services.NewAuthService(store, deps.Tokens, hasher, log, deps.Metrics)
	postService := services.NewPostService(store, log, deps.Metrics)
	commentService := services.NewCommentService(store, log, deps.Metrics)
	likeService := services.NewLikeService(store, log, deps.Metrics)
	friendService := services.NewFriendService(store, log, deps.Metrics)
	followerService := services.NewFollowerService(store, log, deps.Metrics)
	notificationService := services.NewNotificationService(store, log, deps.Metrics)
	userService := services.NewUserService(store, log)
	uploadService := services.NewUploadService(deps.Storage, log, deps.Metrics)
	adminService := services.NewAdminService(store)

	requireAuth := middleware.JWTAuthMiddleware(deps.Tokens)
	api := e.Group("/api")

	// --- Authentication (rate limited per client IP) ---
	rateLimit := middleware.RateLimitMiddleware(deps.Limiter, log, deps.Metrics)
	handlers.NewAuthHandler(authService).RegisterAuthRoutes(api.Group("/auth"), rateLimit, requireAuth)
	log.Debug("Auth routes configured.")

	// Posts, comments and likes
	handlers.NewPostHandler(postService).RegisterPostRoutes(api, requireAuth)
	handlers.NewCommentHandler(commentService).RegisterCommentRoutes(api, requireAuth)
	handlers.NewLikeHandler(likeService).RegisterLikeRoutes(api, requireAuth)
	log.Debug("Post, comment and like routes configured.")

	// Social graph
	handlers.NewFriendshipHandler(friendService).RegisterFriendshipRoutes(api.Group("/friends", requireAuth))
	handlers.NewFollowHandler(followerService).RegisterFollowRoutes(api.Group("/followers"), requireAuth)
	log.Debug("Friendship and follower routes configured.")

	handlers.NewNotificationHandler(notificationService).RegisterNotificationRoutes(api.Group("/notifications", requireAuth))
	handlers.NewUserHandler(userService).RegisterUserRoutes(api.Group("/users"), requireAuth)
	handlers.NewUploadHandler(uploadService).RegisterUploadRoutes(api.Group("/upload"), requireAuth, eMiddleware.BodyLimit(uploadBodyLimit))
	handlers.NewAdminHandler(adminService).RegisterAdminRoutes(api.Group("/admin"), requireAuth)

	log.Info("All routes configured.")
}
