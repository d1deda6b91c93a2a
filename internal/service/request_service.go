package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/repairlink/repairlink/internal/config"
	"github.com/repairlink/repairlink/internal/database"
	apperrors "github.com/repairlink/repairlink/internal/errors"
	"github.com/repairlink/repairlink/internal/models"
	"github.com/repairlink/repairlink/internal/repository"
)

type RequestService interface {
	CreateRequest(ctx context.Context, user *models.User, req *models.CreateRequestRequest) (*models.ServiceRequest, error)
	GetRequest(ctx context.Context, user *models.User, technician *models.Technician, id string) (*models.RequestResponse, error)
	ListOwn(ctx context.Context, userID string) ([]*models.ServiceRequest, error)
	ListAssigned(ctx context.Context, technicianID string) ([]*models.ServiceRequest, error)
	ListAll(ctx context.Context, status string) ([]*models.ServiceRequest, error)
	AssignTechnician(ctx context.Context, requestID, technicianID string) (*models.ServiceRequest, error)
	AdminUpdateStatus(ctx context.Context, requestID, status string) error
	TechnicianUpdateStatus(ctx context.Context, technician *models.Technician, requestID, status string) error
}

type requestService struct {
	runTx          func(ctx context.Context, fn func(*sqlx.Tx) error) error
	cfg            *config.Config
	requestRepo    repository.RequestRepository
	technicianRepo repository.TechnicianRepository
	userRepo       repository.UserRepository
	loyaltyRepo    repository.LoyaltyRepository
	pricingService PricingService
	couponService  CouponService
	notifier       Notifier
}

func NewRequestService(
	db *sqlx.DB,
	cfg *config.Config,
	requestRepo repository.RequestRepository,
	technicianRepo repository.TechnicianRepository,
	userRepo repository.UserRepository,
	loyaltyRepo repository.LoyaltyRepository,
	pricingService PricingService,
	couponService CouponService,
	notifier Notifier,
) RequestService {
	return &requestService{
		runTx: func(ctx context.Context, fn func(*sqlx.Tx) error) error {
			return database.RunInTx(ctx, db, fn)
		},
		cfg:            cfg,
		requestRepo:    requestRepo,
		technicianRepo: technicianRepo,
		userRepo:       userRepo,
		loyaltyRepo:    loyaltyRepo,
		pricingService: pricingService,
		couponService:  couponService,
		notifier:       notifier,
	}
}

func (s *requestService) CreateRequest(ctx context.Context, user *models.User, req *models.CreateRequestRequest) (*models.ServiceRequest, error) {
	pricing, err := s.pricingService.Resolve(ctx, req.DeviceModelID, req.ServiceTypeID)
	if err != nil {
		return nil, err
	}
	if pricing == nil {
		return nil, apperrors.NotFound("pricing for this device and service")
	}

	request := &models.ServiceRequest{
		// The id is minted up front so the coupon usage row can reference
		// it inside the same transaction.
		ID:            uuid.New().String(),
		UserID:        user.ID,
		DeviceModelID: req.DeviceModelID,
		ServiceTypeID: req.ServiceTypeID,
		PricingID:     pricing.ID,
		ServiceMode:   req.ServiceMode,
		Address:       req.Address,
		City:          req.City,
		Country:       req.Country,
		PhoneNumber:   req.PhoneNumber,
		PreferredDate: req.PreferredDate,
		// Price snapshot: later pricing edits never touch this request.
		TotalHalalas:  pricing.PriceHalalas,
		PaymentMethod: req.PaymentMethod,
	}
	if req.IssueDescription != "" {
		request.IssueDescription = &req.IssueDescription
	}
	if req.PreferredSlot != "" {
		request.PreferredSlot = &req.PreferredSlot
	}

	err = s.runTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.requestRepo.Create(ctx, tx, request); err != nil {
			return err
		}

		// The request row goes in first so the usage ledger can reference
		// it; the discounted total lands before the transaction commits.
		if req.CouponCode != "" {
			discount, err := s.couponService.RedeemTx(ctx, tx, user.ID, req.CouponCode, request.TotalHalalas, &request.ID)
			if err != nil {
				return err
			}
			request.TotalHalalas -= discount
			return s.requestRepo.UpdateTotal(ctx, tx, request.ID, request.TotalHalalas)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, user.ID, models.NotificationRequestCreated,
		"Your repair request has been received", "تم استلام طلب الإصلاح الخاص بك", &request.ID)

	return request, nil
}

func (s *requestService) GetRequest(ctx context.Context, user *models.User, technician *models.Technician, id string) (*models.RequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperrors.NotFound("request")
	}

	if !models.CanAccessRequest(user, technician, request) {
		return nil, apperrors.Forbidden("you do not have access to this request")
	}

	response := request.ToResponse()

	owner, err := s.userRepo.GetByID(ctx, request.UserID)
	if err == nil && owner != nil {
		response.User = owner.ToResponse()
	}

	if request.TechnicianID != nil {
		assigned, err := s.technicianRepo.GetByID(ctx, *request.TechnicianID)
		if err == nil && assigned != nil {
			response.Technician = assigned.ToResponse()
		}
	}

	return response, nil
}

func (s *requestService) ListOwn(ctx context.Context, userID string) ([]*models.ServiceRequest, error) {
	return s.requestRepo.ListByUserID(ctx, userID)
}

func (s *requestService) ListAssigned(ctx context.Context, technicianID string) ([]*models.ServiceRequest, error) {
	return s.requestRepo.ListByTechnicianID(ctx, technicianID)
}

func (s *requestService) ListAll(ctx context.Context, status string) ([]*models.ServiceRequest, error) {
	return s.requestRepo.ListByStatus(ctx, status)
}

func (s *requestService) AssignTechnician(ctx context.Context, requestID, technicianID string) (*models.ServiceRequest, error) {
	technician, err := s.technicianRepo.GetByID(ctx, technicianID)
	if err != nil {
		return nil, err
	}
	if technician == nil {
		return nil, apperrors.NotFound("technician")
	}
	if !technician.IsActive {
		return nil, apperrors.BadRequest("technician is not active")
	}

	var request *models.ServiceRequest
	err = s.runTx(ctx, func(tx *sqlx.Tx) error {
		request, err = s.requestRepo.GetByIDForUpdate(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if request == nil {
			return apperrors.NotFound("request")
		}

		if !request.CanTransitionTo(models.RequestStatusTechnicianAssigned) {
			return apperrors.InvalidTransition(request.Status, models.RequestStatusTechnicianAssigned)
		}

		return s.requestRepo.AssignTechnician(ctx, tx, requestID, technicianID)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, request.UserID, models.NotificationTechnicianSet,
		"A technician has been assigned to your request", "تم تعيين فني لطلبك", &request.ID)

	return s.requestRepo.GetByID(ctx, requestID)
}

func (s *requestService) AdminUpdateStatus(ctx context.Context, requestID, status string) error {
	// technician_assigned is only reachable through AssignTechnician, which
	// writes technician_id and assigned_at alongside the status. A bare
	// status write would strand the request with neither.
	if status == models.RequestStatusTechnicianAssigned {
		return apperrors.BadRequest("use the assignment endpoint to assign a technician")
	}
	return s.transition(ctx, requestID, status, nil)
}

func (s *requestService) TechnicianUpdateStatus(ctx context.Context, technician *models.Technician, requestID, status string) error {
	if status != models.RequestStatusInProgress && status != models.RequestStatusCompleted {
		return apperrors.BadRequest("technicians may only move requests to in_progress or completed")
	}
	return s.transition(ctx, requestID, status, technician)
}

// transition drives a status change under a row lock. When actor is
// non-nil the caller is a technician and must be the assigned one.
func (s *requestService) transition(ctx context.Context, requestID, status string, actor *models.Technician) error {
	var request *models.ServiceRequest
	err := s.runTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		request, err = s.requestRepo.GetByIDForUpdate(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if request == nil {
			return apperrors.NotFound("request")
		}

		if actor != nil && !request.IsAssignedTo(actor.ID) {
			return apperrors.NotAssigned()
		}

		if !request.CanTransitionTo(status) {
			return apperrors.InvalidTransition(request.Status, status)
		}

		if status == models.RequestStatusCompleted {
			return s.complete(ctx, tx, request)
		}
		return s.requestRepo.UpdateStatusTx(ctx, tx, requestID, status)
	})
	if err != nil {
		return err
	}

	kind := models.NotificationStatusChanged
	titleEn := "Your repair request status has changed"
	titleAr := "تم تحديث حالة طلب الإصلاح الخاص بك"
	if status == models.RequestStatusCompleted {
		s.awardPoints(ctx, request)
		kind = models.NotificationRequestCompleted
		titleEn = "Your repair request has been completed"
		titleAr = "تم إنجاز طلب الإصلاح الخاص بك"
	}
	s.notifier.Notify(ctx, request.UserID, kind, titleEn, titleAr, &request.ID)

	return nil
}

// complete marks the request done and bumps the technician's job counter
// inside the caller's transaction.
func (s *requestService) complete(ctx context.Context, tx *sqlx.Tx, request *models.ServiceRequest) error {
	if err := s.requestRepo.MarkCompleted(ctx, tx, request.ID); err != nil {
		return err
	}

	if request.TechnicianID != nil {
		if err := s.technicianRepo.IncrementCompletedJobs(ctx, tx, *request.TechnicianID); err != nil {
			return err
		}
	}
	return nil
}

// awardPoints credits completion points in a transaction of their own,
// after the lifecycle change has committed. Points are a perk, not part
// of the lifecycle contract: a failed insert here must not unwind a
// completed repair.
func (s *requestService) awardPoints(ctx context.Context, request *models.ServiceRequest) {
	points := request.TotalHalalas / 100 * s.cfg.PointsPerRiyal
	if points <= 0 {
		return
	}

	note := "earned on request completion"
	txn := &models.PointsTransaction{
		UserID:    request.UserID,
		RequestID: &request.ID,
		Points:    points,
		Kind:      models.PointsEarn,
		Note:      &note,
	}

	err := s.runTx(ctx, func(tx *sqlx.Tx) error {
		return s.loyaltyRepo.Append(ctx, tx, txn)
	})
	if err != nil {
		log.Printf("failed to award loyalty points for request %s: %v", request.ID, err)
	}
}
