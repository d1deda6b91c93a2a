package models

import (
	"time"
)

// ChatRoom pairs the request owner with the assigned technician. One room
// per request, created lazily on first access.
type ChatRoom struct {
	ID           string    `db:"id" json:"id"`
	RequestID    string    `db:"request_id" json:"request_id"`
	UserID       string    `db:"user_id" json:"user_id"`
	TechnicianID string    `db:"technician_id" json:"technician_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Message rows are append-only; IsRead flips in bulk when the recipient
// opens the room.
type Message struct {
	ID        string    `db:"id" json:"id"`
	RoomID    string    `db:"room_id" json:"room_id"`
	SenderID  string    `db:"sender_id" json:"sender_id"`
	Body      string    `db:"body" json:"body"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type SendMessageRequest struct {
	Body string `json:"body" validate:"required,min=1,max=4000"`
}

type ChatRoomResponse struct {
	Room     *ChatRoom  `json:"room"`
	Messages []*Message `json:"messages"`
	Unread   int        `json:"unread"`
}
