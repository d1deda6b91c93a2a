package service

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/repairlink/repairlink/internal/database"
	apperrors "github.com/repairlink/repairlink/internal/errors"
	"github.com/repairlink/repairlink/internal/models"
	"github.com/repairlink/repairlink/internal/repository"
)

type ReceiptService interface {
	UploadReceipt(ctx context.Context, user *models.User, requestID string, req *models.UploadReceiptRequest) (*models.PaymentReceipt, error)
	GetByRequestID(ctx context.Context, user *models.User, technician *models.Technician, requestID string) (*models.PaymentReceipt, error)
	ListPending(ctx context.Context) ([]*models.PaymentReceipt, error)
	Review(ctx context.Context, admin *models.User, receiptID string, approve bool) error
}

type receiptService struct {
	runTx       func(ctx context.Context, fn func(*sqlx.Tx) error) error
	receiptRepo repository.ReceiptRepository
	requestRepo repository.RequestRepository
	notifier    Notifier
}

func NewReceiptService(db *sqlx.DB, receiptRepo repository.ReceiptRepository, requestRepo repository.RequestRepository, notifier Notifier) ReceiptService {
	return &receiptService{
		runTx: func(ctx context.Context, fn func(*sqlx.Tx) error) error {
			return database.RunInTx(ctx, db, fn)
		},
		receiptRepo: receiptRepo,
		requestRepo: requestRepo,
		notifier:    notifier,
	}
}

func (s *receiptService) UploadReceipt(ctx context.Context, user *models.User, requestID string, req *models.UploadReceiptRequest) (*models.PaymentReceipt, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperrors.NotFound("request")
	}
	if request.UserID != user.ID {
		return nil, apperrors.Forbidden("only the request owner may upload a receipt")
	}
	if request.PaymentMethod != models.PaymentMethodBankTransfer {
		return nil, apperrors.BadRequest("receipts apply to bank transfer payments only")
	}

	existing, err := s.receiptRepo.GetByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("a receipt has already been uploaded for this request")
	}

	receipt := &models.PaymentReceipt{
		RequestID: requestID,
		UserID:    user.ID,
		ImageURL:  req.ImageURL,
		Amount:    req.Amount,
	}

	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, err
	}

	return receipt, nil
}

func (s *receiptService) GetByRequestID(ctx context.Context, user *models.User, technician *models.Technician, requestID string) (*models.PaymentReceipt, error) {
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

	receipt, err := s.receiptRepo.GetByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperrors.NotFound("receipt")
	}
	return receipt, nil
}

func (s *receiptService) ListPending(ctx context.Context) ([]*models.PaymentReceipt, error) {
	return s.receiptRepo.ListPending(ctx)
}

// Review settles a pending receipt. Approval is the only path that marks
// the parent request paid; rejection leaves the request unpaid.
func (s *receiptService) Review(ctx context.Context, admin *models.User, receiptID string, approve bool) error {
	receipt, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return err
	}
	if receipt == nil {
		return apperrors.NotFound("receipt")
	}
	if receipt.Status != models.ReceiptStatusPending {
		return apperrors.Conflict("receipt has already been reviewed")
	}

	status := models.ReceiptStatusRejected
	if approve {
		status = models.ReceiptStatusApproved
	}

	// The verdict and the paid flag land together: a receipt must never
	// read approved against a request that is still unpaid.
	err = s.runTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.receiptRepo.SetStatus(ctx, tx, receiptID, status, admin.ID); err != nil {
			return err
		}
		if approve {
			return s.requestRepo.UpdatePaymentStatusTx(ctx, tx, receipt.RequestID, models.PaymentStatusPaid)
		}
		return nil
	})
	if err != nil {
		return err
	}

	titleEn := "Your payment receipt was rejected"
	titleAr := "تم رفض إيصال الدفع الخاص بك"
	if approve {
		titleEn = "Your payment receipt was approved"
		titleAr = "تم قبول إيصال الدفع الخاص بك"
	}
	s.notifier.Notify(ctx, receipt.UserID, models.NotificationReceiptReviewed, titleEn, titleAr, &receipt.RequestID)

	return nil
}
