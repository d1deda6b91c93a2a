package service

import (
	"context"

	"github.com/repairlink/repairlink/internal/models"
	"github.com/repairlink/repairlink/internal/repository"
)

// PricingService resolves the fixed price for a (device model, service
// type) pair. There is no computation: prices are seeded rows, and a
// missing row means the service is simply not offered for that model.
type PricingService interface {
	Resolve(ctx context.Context, deviceModelID, serviceTypeID string) (*models.ServicePricing, error)
	ListForModel(ctx context.Context, deviceModelID string) ([]*models.ServicePricing, error)
}

type pricingService struct {
	pricingRepo repository.PricingRepository
}

func NewPricingService(pricingRepo repository.PricingRepository) PricingService {
	return &pricingService{pricingRepo: pricingRepo}
}

func (s *pricingService) Resolve(ctx context.Context, deviceModelID, serviceTypeID string) (*models.ServicePricing, error) {
	return s.pricingRepo.GetByPair(ctx, deviceModelID, serviceTypeID)
}

func (s *pricingService) ListForModel(ctx context.Context, deviceModelID string) ([]*models.ServicePricing, error) {
	return s.pricingRepo.ListByDeviceModel(ctx, deviceModelID)
}
