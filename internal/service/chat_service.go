package service

import (
	"context"

	apperrors "github.com/repairlink/repairlink/internal/errors"
	"github.com/repairlink/repairlink/internal/models"
	"github.com/repairlink/repairlink/internal/repository"
)

type ChatService interface {
	// GetRoom returns the request's chat room with its messages, creating
	// the room on first access and marking the caller's unread as read.
	GetRoom(ctx context.Context, user *models.User, technician *models.Technician, requestID string) (*models.ChatRoomResponse, error)
	SendMessage(ctx context.Context, user *models.User, technician *models.Technician, requestID string, req *models.SendMessageRequest) (*models.Message, error)
}

type chatService struct {
	chatRepo       repository.ChatRepository
	requestRepo    repository.RequestRepository
	technicianRepo repository.TechnicianRepository
	notifier       Notifier
}

func NewChatService(chatRepo repository.ChatRepository, requestRepo repository.RequestRepository, technicianRepo repository.TechnicianRepository, notifier Notifier) ChatService {
	return &chatService{
		chatRepo:       chatRepo,
		requestRepo:    requestRepo,
		technicianRepo: technicianRepo,
		notifier:       notifier,
	}
}

func (s *chatService) GetRoom(ctx context.Context, user *models.User, technician *models.Technician, requestID string) (*models.ChatRoomResponse, error) {
	room, err := s.resolveRoom(ctx, user, technician, requestID)
	if err != nil {
		return nil, err
	}

	messages, err := s.chatRepo.ListMessages(ctx, room.ID, 100)
	if err != nil {
		return nil, err
	}

	unread, err := s.chatRepo.CountUnread(ctx, room.ID, user.ID)
	if err != nil {
		return nil, err
	}

	// Opening the room reads everything addressed to the caller.
	if unread > 0 {
		if err := s.chatRepo.MarkRead(ctx, room.ID, user.ID); err != nil {
			return nil, err
		}
	}

	return &models.ChatRoomResponse{
		Room:     room,
		Messages: messages,
		Unread:   unread,
	}, nil
}

func (s *chatService) SendMessage(ctx context.Context, user *models.User, technician *models.Technician, requestID string, req *models.SendMessageRequest) (*models.Message, error) {
	room, err := s.resolveRoom(ctx, user, technician, requestID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		RoomID:   room.ID,
		SenderID: user.ID,
		Body:     req.Body,
	}
	if err := s.chatRepo.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}

	recipientID := room.UserID
	if user.ID == room.UserID {
		recipientID = room.TechnicianID
	}
	s.notifier.Notify(ctx, recipientID, models.NotificationNewMessage,
		"New message on your repair request", "رسالة جديدة على طلب الإصلاح الخاص بك", &requestID)

	return msg, nil
}

// resolveRoom checks access and lazily creates the per-request room. A
// room needs both parties, so it only exists once a technician is
// assigned.
func (s *chatService) resolveRoom(ctx context.Context, user *models.User, technician *models.Technician, requestID string) (*models.ChatRoom, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperrors.NotFound("request")
	}
	if !models.CanAccessRequest(user, technician, request) {
		return nil, apperrors.Forbidden("you do not have access to this request")
	}

	room, err := s.chatRepo.GetRoomByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if room != nil {
		return room, nil
	}

	if request.TechnicianID == nil {
		return nil, apperrors.BadRequest("chat opens once a technician is assigned")
	}

	assigned, err := s.technicianRepo.GetByID(ctx, *request.TechnicianID)
	if err != nil {
		return nil, err
	}
	if assigned == nil {
		return nil, apperrors.NotFound("technician")
	}

	room = &models.ChatRoom{
		RequestID:    requestID,
		UserID:       request.UserID,
		TechnicianID: assigned.UserID,
	}
	if err := s.chatRepo.CreateRoom(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}
