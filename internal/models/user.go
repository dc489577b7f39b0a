package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/jinzhu/copier"
)

// User is a registered account. Counter columns are maintained by the
// services inside the same transaction as the rows they summarize.
type User struct {
	ID             uint      `json:"user_id" gorm:"primaryKey"`
	FirstName      string    `json:"first_name" gorm:"size:100;not null"`
	LastName       string    `json:"last_name" gorm:"size:100;not null"`
	Email          string    `json:"email" gorm:"size:255;uniqueIndex;not null"` // unique across all users
	PasswordHash   string    `json:"-" gorm:"not null"`                          // bcrypt hash, never serialized
	DateOfBirth    time.Time `json:"date_of_birth"`
	ProfilePicURL  *string   `json:"profile_pic_url"`
	PostCount      int64     `json:"post_count" gorm:"not null;default:0"`
	FollowersCount int64     `json:"followers_count" gorm:"not null;default:0"`
	FollowingCount int64     `json:"following_count" gorm:"not null;default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FullName joins first and last name the way notifications display it.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// AgeAt returns the user's age in whole years at the given instant.
func (u *User) AgeAt(now time.Time) int {
	if u.DateOfBirth.IsZero() {
		return 0
	}
	age := now.Year() - u.DateOfBirth.Year()
	if now.Month() < u.DateOfBirth.Month() ||
		(now.Month() == u.DateOfBirth.Month() && now.Day() < u.DateOfBirth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// ToCompact returns the public summary embedded in posts, comments and lists.
func (u *User) ToCompact() UserCompact {
	var compact UserCompact
	_ = copier.Copy(&compact, u)
	compact.FullName = u.FullName()
	return compact
}

// UserCompact is the author/friend/follower view of a user.
type UserCompact struct {
	ID            uint    `json:"user_id"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	FullName      string  `json:"full_name"`
	ProfilePicURL *string `json:"profile_pic_url"`
}

// PhoneNumber is an optional contact number attached at registration.
type PhoneNumber struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	PhoneNumber string    `json:"phone_number" gorm:"size:20;not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// RegisterRequest defines the request body for creating an account
type RegisterRequest struct {
	FirstName     string `json:"firstName" validate:"required,max=100"`
	LastName      string `json:"lastName" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,email,max=255"`
	Password      string `json:"password" validate:"required,min=6,max=72"`
	DateOfBirth   string `json:"dateOfBirth" validate:"required"`
	PhoneNumber   string `json:"phoneNumber,omitempty" validate:"omitempty,min=7,max=20"`
	ProfilePicURL string `json:"profilePicUrl,omitempty" validate:"omitempty,url"`
}

// LoginRequest defines the request body for exchanging credentials for a token
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfilePictureRequest defines the request body for PUT /users/profile-picture
type UpdateProfilePictureRequest struct {
	ProfilePicURL string `json:"profilePicUrl"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
