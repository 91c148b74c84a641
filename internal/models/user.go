package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// LikedPost is one entry in a user's liked-set. The JSON field is named
// post_id for every target kind, comments included, because that is the
// layout persisted in the liked_posts column.
type LikedPost struct {
	PostID    int64     `json:"post_id"`
	Timestamp time.Time `json:"timestamp"`
}

// User represents an account created on first GitHub OAuth sign-in.
// The ID is the opaque identifier issued by the OAuth provider.
type User struct {
	ID           string      `json:"id" gorm:"primaryKey"`
	Name         string      `json:"name" gorm:"index"`
	Email        string      `json:"email"`
	ProfileImage string      `json:"profile_image"`
	LikedPosts   []LikedPost `json:"liked_posts" gorm:"serializer:json"`
	CreatedAt    time.Time   `json:"created_at"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}
