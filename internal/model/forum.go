package model

import (
	"time"

	"github.com/google/uuid"
)

// Forum post categories
const (
	PostCategoryGeneral    = "GENERAL"
	PostCategoryTrafficTip = "TRAFFIC_TIP"
	PostCategoryQuestion   = "QUESTION"
	PostCategoryAlert      = "ALERT"
)

type ForumPost struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Likes     int       `json:"likes"`
	Replies   int       `json:"replies"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ForumComment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	UserID    uuid.UUID `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type CreatePostRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Content  string `json:"content" validate:"required,max=5000"`
	Category string `json:"category" validate:"required,oneof=GENERAL TRAFFIC_TIP QUESTION ALERT"`
}

type UpdatePostRequest struct {
	Title    string `json:"title" validate:"omitempty,max=200"`
	Content  string `json:"content" validate:"omitempty,max=5000"`
	Category string `json:"category" validate:"omitempty,oneof=GENERAL TRAFFIC_TIP QUESTION ALERT"`
}
