package service

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	apperrors "github.com/repairlink/repairlink/internal/errors"
	"github.com/repairlink/repairlink/internal/models"
	"github.com/repairlink/repairlink/internal/repository"
)

type fakeReceiptRepo struct {
	repository.ReceiptRepository
	byID        map[string]*models.PaymentReceipt
	byRequest   map[string]*models.PaymentReceipt
	created     *models.PaymentReceipt
	tx          *txCounter
	setStatus   string
	setStatusIn int
}

func (f *fakeReceiptRepo) Create(ctx context.Context, receipt *models.PaymentReceipt) error {
	receipt.Status = models.ReceiptStatusPending
	f.created = receipt
	f.byRequest[receipt.RequestID] = receipt
	return nil
}

func (f *fakeReceiptRepo) GetByID(ctx context.Context, id string) (*models.PaymentReceipt, error) {
	return f.byID[id], nil
}

func (f *fakeReceiptRepo) GetByRequestID(ctx context.Context, requestID string) (*models.PaymentReceipt, error) {
	return f.byRequest[requestID], nil
}

func (f *fakeReceiptRepo) SetStatus(ctx context.Context, tx *sqlx.Tx, id, status, reviewedBy string) error {
	f.setStatus = status
	f.setStatusIn = f.tx.n
	return nil
}

type paymentStatusRecorder struct {
	*fakeRequestRepo
	paid   map[string]string
	paidIn int
}

func (r *paymentStatusRecorder) UpdatePaymentStatusTx(ctx context.Context, tx *sqlx.Tx, id, paymentStatus string) error {
	r.paid[id] = paymentStatus
	r.paidIn = r.tx.n
	return nil
}

type noopNotifier struct{}

func (noopNotifier) Notify(ctx context.Context, userID, kind, titleEn, titleAr string, requestID *string) {
}
func (noopNotifier) ListForUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	return nil, nil
}
func (noopNotifier) MarkRead(ctx context.Context, userID string) error { return nil }

func newTestReceiptService(paymentMethod string) (*receiptService, *fakeReceiptRepo, *paymentStatusRecorder) {
	tx := &txCounter{}
	requestRepo := &paymentStatusRecorder{
		fakeRequestRepo: &fakeRequestRepo{
			requests: map[string]*models.ServiceRequest{
				"req-1": {
					ID:            "req-1",
					UserID:        "owner",
					Status:        models.RequestStatusCompleted,
					PaymentMethod: paymentMethod,
					TotalHalalas:  45000,
				},
			},
			tx: tx,
		},
		paid: map[string]string{},
	}
	receiptRepo := &fakeReceiptRepo{
		byID:      map[string]*models.PaymentReceipt{},
		byRequest: map[string]*models.PaymentReceipt{},
		tx:        tx,
	}

	svc := &receiptService{
		runTx: func(ctx context.Context, fn func(*sqlx.Tx) error) error {
			tx.n++
			return fn(nil)
		},
		receiptRepo: receiptRepo,
		requestRepo: requestRepo,
		notifier:    noopNotifier{},
	}
	return svc, receiptRepo, requestRepo
}

func TestUploadReceipt(t *testing.T) {
	owner := &models.User{ID: "owner", Role: models.RoleUser}
	req := &models.UploadReceiptRequest{ImageURL: "https://cdn.example.com/r.jpg", Amount: 45000}

	t.Run("happy path", func(t *testing.T) {
		svc, receiptRepo, _ := newTestReceiptService(models.PaymentMethodBankTransfer)

		receipt, err := svc.UploadReceipt(context.Background(), owner, "req-1", req)
		if err != nil {
			t.Fatalf("UploadReceipt() error = %v", err)
		}
		if receipt.Status != models.ReceiptStatusPending {
			t.Errorf("receipt status = %q, want pending", receipt.Status)
		}
		if receiptRepo.created == nil {
			t.Fatal("receipt was not persisted")
		}
	})

	t.Run("not the owner", func(t *testing.T) {
		svc, _, _ := newTestReceiptService(models.PaymentMethodBankTransfer)
		stranger := &models.User{ID: "stranger", Role: models.RoleUser}

		_, err := svc.UploadReceipt(context.Background(), stranger, "req-1", req)
		apiErr, ok := err.(*apperrors.APIError)
		if !ok || apiErr.StatusCode != 403 {
			t.Errorf("expected 403 APIError, got %v", err)
		}
	})

	t.Run("cash request", func(t *testing.T) {
		svc, _, _ := newTestReceiptService(models.PaymentMethodCash)

		_, err := svc.UploadReceipt(context.Background(), owner, "req-1", req)
		apiErr, ok := err.(*apperrors.APIError)
		if !ok || apiErr.StatusCode != 400 {
			t.Errorf("expected 400 APIError, got %v", err)
		}
	})

	t.Run("duplicate upload", func(t *testing.T) {
		svc, receiptRepo, _ := newTestReceiptService(models.PaymentMethodBankTransfer)
		receiptRepo.byRequest["req-1"] = &models.PaymentReceipt{ID: "rc-1"}

		_, err := svc.UploadReceipt(context.Background(), owner, "req-1", req)
		apiErr, ok := err.(*apperrors.APIError)
		if !ok || apiErr.StatusCode != 409 {
			t.Errorf("expected 409 APIError, got %v", err)
		}
	})
}

func TestReviewReceipt(t *testing.T) {
	admin := &models.User{ID: "admin", Role: models.RoleAdmin}

	t.Run("approval marks request paid", func(t *testing.T) {
		svc, receiptRepo, requestRepo := newTestReceiptService(models.PaymentMethodBankTransfer)
		receiptRepo.byID["rc-1"] = &models.PaymentReceipt{
			ID: "rc-1", RequestID: "req-1", UserID: "owner", Status: models.ReceiptStatusPending,
		}

		if err := svc.Review(context.Background(), admin, "rc-1", true); err != nil {
			t.Fatalf("Review() error = %v", err)
		}
		if receiptRepo.setStatus != models.ReceiptStatusApproved {
			t.Errorf("receipt status = %q, want approved", receiptRepo.setStatus)
		}
		if requestRepo.paid["req-1"] != models.PaymentStatusPaid {
			t.Error("approval must mark the request paid")
		}
		// The verdict and the paid flag must land in the same transaction.
		if receiptRepo.setStatusIn == 0 || receiptRepo.setStatusIn != requestRepo.paidIn {
			t.Errorf("verdict written in transaction %d, paid flag in %d; want the same one",
				receiptRepo.setStatusIn, requestRepo.paidIn)
		}
	})

	t.Run("rejection leaves request unpaid", func(t *testing.T) {
		svc, receiptRepo, requestRepo := newTestReceiptService(models.PaymentMethodBankTransfer)
		receiptRepo.byID["rc-1"] = &models.PaymentReceipt{
			ID: "rc-1", RequestID: "req-1", UserID: "owner", Status: models.ReceiptStatusPending,
		}

		if err := svc.Review(context.Background(), admin, "rc-1", false); err != nil {
			t.Fatalf("Review() error = %v", err)
		}
		if receiptRepo.setStatus != models.ReceiptStatusRejected {
			t.Errorf("receipt status = %q, want rejected", receiptRepo.setStatus)
		}
		if len(requestRepo.paid) != 0 {
			t.Error("rejection must not touch the payment status")
		}
	})

	t.Run("double review", func(t *testing.T) {
		svc, receiptRepo, _ := newTestReceiptService(models.PaymentMethodBankTransfer)
		receiptRepo.byID["rc-1"] = &models.PaymentReceipt{
			ID: "rc-1", RequestID: "req-1", Status: models.ReceiptStatusApproved,
		}

		err := svc.Review(context.Background(), admin, "rc-1", true)
		apiErr, ok := err.(*apperrors.APIError)
		if !ok || apiErr.StatusCode != 409 {
			t.Errorf("expected 409 APIError, got %v", err)
		}
	})
}
