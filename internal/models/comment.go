package models

import "time"

// Comment represents a comment on a post
type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	PostID    int64     `json:"post_id" gorm:"index"`
	UserID    string    `json:"user_id" gorm:"index"`
	Content   string    `json:"content"`
	Likes     int64     `json:"likes" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
