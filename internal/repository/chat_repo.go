package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/repairlink/repairlink/internal/models"
)

type ChatRepository interface {
	CreateRoom(ctx context.Context, room *models.ChatRoom) error
	GetRoomByRequestID(ctx context.Context, requestID string) (*models.ChatRoom, error)
	AppendMessage(ctx context.Context, msg *models.Message) error
	ListMessages(ctx context.Context, roomID string, limit int) ([]*models.Message, error)
	CountUnread(ctx context.Context, roomID, recipientID string) (int, error)
	MarkRead(ctx context.Context, roomID, recipientID string) error
}

type chatRepository struct {
	db *sqlx.DB
}

func NewChatRepository(db *sqlx.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateRoom(ctx context.Context, room *models.ChatRoom) error {
	if room.ID == "" {
		room.ID = uuid.New().String()
	}
	room.CreatedAt = time.Now()

	query := `
		INSERT INTO chat_rooms (id, request_id, user_id, technician_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		room.ID, room.RequestID, room.UserID, room.TechnicianID, room.CreatedAt)
	return err
}

func (r *chatRepository) GetRoomByRequestID(ctx context.Context, requestID string) (*models.ChatRoom, error) {
	var room models.ChatRoom
	query := `SELECT * FROM chat_rooms WHERE request_id = $1`
	err := r.db.GetContext(ctx, &room, query, requestID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &room, err
}

func (r *chatRepository) AppendMessage(ctx context.Context, msg *models.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	msg.CreatedAt = time.Now()

	query := `
		INSERT INTO messages (id, room_id, sender_id, body, is_read, created_at)
		VALUES ($1, $2, $3, $4, false, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.RoomID, msg.SenderID, msg.Body, msg.CreatedAt)
	return err
}

func (r *chatRepository) ListMessages(ctx context.Context, roomID string, limit int) ([]*models.Message, error) {
	if limit <= 0 {
		limit = 100
	}
	var msgs []*models.Message
	query := `SELECT * FROM messages WHERE room_id = $1 ORDER BY created_at ASC LIMIT $2`
	err := r.db.SelectContext(ctx, &msgs, query, roomID, limit)
	return msgs, err
}

func (r *chatRepository) CountUnread(ctx context.Context, roomID, recipientID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM messages WHERE room_id = $1 AND sender_id != $2 AND is_read = false`
	err := r.db.GetContext(ctx, &count, query, roomID, recipientID)
	return count, err
}

// MarkRead flips every unread message not sent by the recipient.
func (r *chatRepository) MarkRead(ctx context.Context, roomID, recipientID string) error {
	query := `UPDATE messages SET is_read = true WHERE room_id = $1 AND sender_id != $2 AND is_read = false`
	_, err := r.db.ExecContext(ctx, query, roomID, recipientID)
	return err
}
