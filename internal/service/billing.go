package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type BillingRepository interface {
	Create(ctx context.Context, billing domain.Billing) (domain.Billing, error)
	FindByID(ctx context.Context, id uint) (domain.Billing, error)
	FindAll(ctx context.Context) ([]domain.Billing, error)
	Update(ctx context.Context, billing domain.Billing) (domain.Billing, error)
	Delete(ctx context.Context, id uint) error
}

// PriceLookup is what billing needs from the catalog.
type PriceLookup interface {
	FindByID(ctx context.Context, id uint) (domain.Service, error)
}

type DiscountLookup interface {
	FindByServiceID(ctx context.Context, serviceID uint) (domain.Discount, error)
}

type BillingService struct {
	repo      BillingRepository
	services  PriceLookup
	discounts DiscountLookup
}

func NewBillingService(repo BillingRepository, services PriceLookup, discounts DiscountLookup) *BillingService {
	return &BillingService{
		repo:      repo,
		services:  services,
		discounts: discounts,
	}
}

func (s *BillingService) GetBillings(ctx context.Context) ([]domain.Billing, error) {
	billings, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return billings, nil
}

func (s *BillingService) GetBilling(ctx context.Context, id uint) (domain.Billing, error) {
	billing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Billing{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return billing, nil
}

// CreateBilling stores a billing. With a ServiceID the amount and provider
// come from the service, discounted for partySize guests.
func (s *BillingService) CreateBilling(ctx context.Context, billing domain.Billing, partySize int) (domain.Billing, error) {
	billing, err := s.price(ctx, billing, partySize)
	if err != nil {
		return domain.Billing{}, err
	}

	created, err := s.repo.Create(ctx, billing)
	if err != nil {
		return domain.Billing{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// UpdateBilling replaces a billing as given; amounts are not re-derived.
func (s *BillingService) UpdateBilling(ctx context.Context, billing domain.Billing) (domain.Billing, error) {
	if billing.Amount < 0 {
		return domain.Billing{}, domain.NewValidationError("amount", "must be no less than 0")
	}

	updated, err := s.repo.Update(ctx, billing)
	if err != nil {
		return domain.Billing{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *BillingService) DeleteBilling(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *BillingService) price(ctx context.Context, billing domain.Billing, partySize int) (domain.Billing, error) {
	if billing.ServiceID == nil {
		if billing.Amount < 0 {
			return domain.Billing{}, domain.NewValidationError("amount", "must be no less than 0")
		}
		return billing, nil
	}

	svc, err := s.services.FindByID(ctx, *billing.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Billing{}, domain.NewValidationError("serviceId", fmt.Sprintf("service %d does not exist", *billing.ServiceID))
		}
		return domain.Billing{}, fmt.Errorf("s.services.FindByID -> %w", err)
	}
	if billing.ProviderID != 0 && billing.ProviderID != svc.ProviderID {
		return domain.Billing{}, domain.NewValidationError("providerId", "does not match the service provider")
	}
	if partySize < 1 {
		partySize = 1
	}

	amount := svc.Price
	discount, err := s.discounts.FindByServiceID(ctx, svc.ID)
	switch {
	case err == nil:
		amount = discount.Apply(svc.Price, partySize)
	case !errors.Is(err, domain.ErrNotFound):
		return domain.Billing{}, fmt.Errorf("s.discounts.FindByServiceID -> %w", err)
	}

	billing.ProviderID = svc.ProviderID
	billing.Amount = amount

	return billing, nil
}
