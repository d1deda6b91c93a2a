package service

import (
	"context"
	"log"

	"github.com/repairlink/repairlink/internal/models"
	"github.com/repairlink/repairlink/internal/repository"
)

// Notifier delivers best-effort user notifications. Failures are logged and
// swallowed: notifications are not correctness-critical to the lifecycle.
type Notifier interface {
	Notify(ctx context.Context, userID, kind, titleEn, titleAr string, requestID *string)
	ListForUser(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkRead(ctx context.Context, userID string) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) Notifier {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) Notify(ctx context.Context, userID, kind, titleEn, titleAr string, requestID *string) {
	n := &models.Notification{
		UserID:    userID,
		Kind:      kind,
		TitleEn:   titleEn,
		TitleAr:   titleAr,
		RequestID: requestID,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("failed to deliver notification to user %s: %v", userID, err)
	}
}

func (s *notificationService) ListForUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	return s.notificationRepo.ListByUserID(ctx, userID, 50)
}

func (s *notificationService) MarkRead(ctx context.Context, userID string) error {
	return s.notificationRepo.MarkRead(ctx, userID)
}
