package models

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio"`
	AvatarURL   string    `json:"avatar_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type Post struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	ImageURL   string    `json:"image_url"`
	Caption    string    `json:"caption"`
	LikesCount int       `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
	Author     *Profile  `json:"profiles,omitempty"`
}

// Comment is a moderated comment on a post or a reel. Hidden comments stay
// in the table; the UI renders a placeholder with the moderation reason.
type Comment struct {
	ID               uuid.UUID `json:"id"`
	ParentID         uuid.UUID `json:"-"`
	UserID           uuid.UUID `json:"user_id"`
	Content          string    `json:"content"`
	IsHidden         bool      `json:"is_hidden"`
	ModerationReason *string   `json:"moderation_reason,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	Author           *Profile  `json:"profiles,omitempty"`
}

type Reel struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	VideoURL   string    `json:"video_url"`
	Caption    string    `json:"caption"`
	LikesCount int       `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
	Author     *Profile  `json:"profiles,omitempty"`
}

// Message is a direct message. Harmful messages are stored hidden, same as
// comments; delivery is plain request/response.
type Message struct {
	ID               uuid.UUID `json:"id"`
	SenderID         uuid.UUID `json:"sender_id"`
	RecipientID      uuid.UUID `json:"recipient_id"`
	Content          string    `json:"content"`
	IsHidden         bool      `json:"is_hidden"`
	ModerationReason *string   `json:"moderation_reason,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type Favorite struct {
	UserID    uuid.UUID `json:"user_id"`
	PostID    uuid.UUID `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
