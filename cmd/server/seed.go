package main

import (
	"context"

	"github.com/anonto42/socialfeed/backend/internal/auth"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/repositories"
	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/anonto42/socialfeed/backend/pkg/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const demoPassword = "password123"

var demoUsers = []models.RegisterRequest{
	{FirstName: "John", LastName: "Doe", Email: "john.doe@example.com", DateOfBirth: "1990-01-15", PhoneNumber: "+15551230001"},
	{FirstName: "Jane", LastName: "Smith", Email: "jane.smith@example.com", DateOfBirth: "1992-05-20"},
	{FirstName: "Alice", LastName: "Johnson", Email: "alice.johnson@example.com", DateOfBirth: "1988-11-03"},
	{FirstName: "Bob", LastName: "Williams", Email: "bob.williams@example.com", DateOfBirth: "1995-07-30"},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate an empty database with demo data",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.InitDB(cfg, log)
		if err != nil {
			return err
		}
		defer db.CloseDB()

		if err := repositories.AutoMigrate(db.SQL); err != nil {
			return errors.Wrap(err, "failed to auto migrate models")
		}

		store := repositories.NewStore(db.SQL)
		count, err := store.Users.CountUsers()
		if err != nil {
			return errors.Wrap(err, "count users")
		}
		if count > 0 {
			log.WithField("users", count).Info("Database already has users, skipping seed")
			return nil
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return seed(ctx, store)
	},
}

func seed(ctx context.Context, store *repositories.Store) error {
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	authSvc := services.NewAuthService(store, tokens, auth.NewPasswordHasher(0), log, nil)
	posts := services.NewPostService(store, log, nil)
	comments := services.NewCommentService(store, log, nil)
	likes := services.NewLikeService(store, log, nil)
	follows := services.NewFollowerService(store, log, nil)
	friends := services.NewFriendService(store, log, nil)

	users := make([]*models.User, 0, len(demoUsers))
	for _, req := range demoUsers {
		req.Password = demoPassword
		res, err := authSvc.Register(ctx, req)
		if err != nil {
			return errors.Wrapf(err, "register %s", req.Email)
		}
		users = append(users, res.User)
	}
	john, jane, alice, bob := users[0], users[1], users[2], users[3]

	content := []struct {
		author *models.User
		text   string
	}{
		{john, "Hello everyone! Excited to be here."},
		{jane, "Beautiful sunset at the beach today."},
		{alice, "Just finished reading a great book on distributed systems."},
		{bob, "Anyone up for a game this weekend?"},
		{john, "Coffee first, code second."},
	}
	created := make([]*models.Post, 0, len(content))
	for _, c := range content {
		p, err := posts.Create(ctx, c.author.ID, models.CreatePostRequest{Content: c.text})
		if err != nil {
			return errors.Wrap(err, "create post")
		}
		created = append(created, p)
	}

	for _, l := range []struct{ user, post int }{{1, 0}, {2, 0}, {3, 0}, {0, 1}, {2, 1}, {0, 2}} {
		if _, err := likes.LikePost(ctx, users[l.user].ID, created[l.post].ID); err != nil {
			return errors.Wrap(err, "like post")
		}
	}

	comment, err := comments.AddComment(ctx, created[0].ID, jane.ID, "Welcome John!")
	if err != nil {
		return errors.Wrap(err, "add comment")
	}
	if _, err := comments.Reply(ctx, comment.ID, john.ID, "Thanks Jane!"); err != nil {
		return errors.Wrap(err, "reply")
	}
	if _, err := likes.LikeComment(ctx, john.ID, comment.ID); err != nil {
		return errors.Wrap(err, "like comment")
	}

	for _, f := range [][2]*models.User{{jane, john}, {alice, john}, {john, jane}, {bob, alice}} {
		if err := follows.Follow(ctx, f[0].ID, f[1].ID); err != nil {
			return errors.Wrap(err, "follow")
		}
	}

	f, err := friends.SendRequest(ctx, john.ID, jane.ID)
	if err != nil {
		return errors.Wrap(err, "send friend request")
	}
	if _, err := friends.Accept(ctx, f.ID, jane.ID); err != nil {
		return errors.Wrap(err, "accept friend request")
	}
	if _, err := friends.SendRequest(ctx, bob.ID, john.ID); err != nil {
		return errors.Wrap(err, "send friend request")
	}

	log.WithField("users", len(users)).WithField("posts", len(created)).
		Infof("Seed complete, log in as %s / %s", john.Email, demoPassword)
	return nil
}
