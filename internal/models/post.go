package models

import "time"

// Media describes one uploaded attachment on a post. The ID is the object
// key in the media store, kept so the file can be purged when the post or
// the owning account is deleted.
type Media struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type,omitempty"`
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

// Post represents a social media post
type Post struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"index"`
	Content   string    `json:"content"`
	Media     []Media   `json:"media,omitempty" gorm:"serializer:json"`
	Likes     int64     `json:"likes" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`

	Author   *User     `json:"author,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID;references:ID"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content string  `json:"content" validate:"required,min=1,max=280"`
	Media   []Media `json:"media,omitempty" validate:"omitempty,max=4,dive"`
}
