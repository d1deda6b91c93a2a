package service

import (
	"context"
	"log"

	"github.com/repairlink/repairlink/internal/cache"
	apperrors "github.com/repairlink/repairlink/internal/errors"
	"github.com/repairlink/repairlink/internal/models"
	"github.com/repairlink/repairlink/internal/repository"
)

type LocationService interface {
	UpdateLocation(ctx context.Context, technician *models.Technician, req *models.UpdateLocationRequest) error
	// GetRequestLocation serves the polling read path: cache first, the
	// append-only table as fallback.
	GetRequestLocation(ctx context.Context, user *models.User, technician *models.Technician, requestID string) (*models.TechnicianLocation, error)
	GetNearby(ctx context.Context, city string, lat, lng, radiusKm float64) ([]cache.TechnicianWithDistance, error)
}

type locationService struct {
	locationRepo  repository.LocationRepository
	requestRepo   repository.RequestRepository
	locationCache cache.TechnicianLocationCache
}

func NewLocationService(locationRepo repository.LocationRepository, requestRepo repository.RequestRepository, locationCache cache.TechnicianLocationCache) LocationService {
	return &locationService{
		locationRepo:  locationRepo,
		requestRepo:   requestRepo,
		locationCache: locationCache,
	}
}

func (s *locationService) UpdateLocation(ctx context.Context, technician *models.Technician, req *models.UpdateLocationRequest) error {
	loc := &models.TechnicianLocation{
		TechnicianID: technician.ID,
		Lat:          req.Lat,
		Lng:          req.Lng,
		Speed:        req.Speed,
		Heading:      req.Heading,
	}

	if req.RequestID != "" {
		request, err := s.requestRepo.GetByID(ctx, req.RequestID)
		if err != nil {
			return err
		}
		if request == nil {
			return apperrors.NotFound("request")
		}
		if !request.IsAssignedTo(technician.ID) {
			return apperrors.NotAssigned()
		}
		loc.RequestID = &req.RequestID
	}

	if err := s.locationRepo.Append(ctx, loc); err != nil {
		return err
	}

	// Cache failure degrades reads to Postgres, it never fails the write.
	if err := s.locationCache.UpdateLocation(ctx, technician.ID, technician.City, req.Lat, req.Lng, req.Speed, req.Heading); err != nil {
		log.Printf("failed to cache location for technician %s: %v", technician.ID, err)
	}

	return nil
}

func (s *locationService) GetRequestLocation(ctx context.Context, user *models.User, technician *models.Technician, requestID string) (*models.TechnicianLocation, error) {
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
	if request.TechnicianID == nil {
		return nil, apperrors.NotFound("technician location")
	}

	if fix, err := s.locationCache.GetLocation(ctx, *request.TechnicianID); err == nil && fix != nil {
		loc := &models.TechnicianLocation{
			TechnicianID: *request.TechnicianID,
			RequestID:    &requestID,
			Lat:          fix.Lat,
			Lng:          fix.Lng,
		}
		if fix.Speed != 0 {
			loc.Speed = &fix.Speed
		}
		if fix.Heading != 0 {
			loc.Heading = &fix.Heading
		}
		return loc, nil
	}

	loc, err := s.locationRepo.GetLatestByTechnicianID(ctx, *request.TechnicianID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, apperrors.NotFound("technician location")
	}
	return loc, nil
}

func (s *locationService) GetNearby(ctx context.Context, city string, lat, lng, radiusKm float64) ([]cache.TechnicianWithDistance, error) {
	if radiusKm <= 0 || radiusKm > 50 {
		radiusKm = 10
	}
	return s.locationCache.GetNearby(ctx, city, lat, lng, radiusKm)
}
