package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type ServiceRepository interface {
	Create(ctx context.Context, svc domain.Service) (domain.Service, error)
	FindByID(ctx context.Context, id uint) (domain.Service, error)
	FindAll(ctx context.Context) ([]domain.Service, error)
	Update(ctx context.Context, svc domain.Service) (domain.Service, error)
	AddGuest(ctx context.Context, serviceID, guestID uint) error
	Delete(ctx context.Context, id uint) error
}

// OfferingService manages services offered by providers. The name avoids a
// clash with the package name.
type OfferingService struct {
	repo ServiceRepository
}

func NewOfferingService(repo ServiceRepository) *OfferingService {
	return &OfferingService{
		repo: repo,
	}
}

func (s *OfferingService) GetServices(ctx context.Context) ([]domain.Service, error) {
	services, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return services, nil
}

func (s *OfferingService) GetService(ctx context.Context, id uint) (domain.Service, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Service{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return svc, nil
}

func (s *OfferingService) CreateService(ctx context.Context, svc domain.Service) (domain.Service, error) {
	if err := validatePrice(svc.Price); err != nil {
		return domain.Service{}, err
	}

	created, err := s.repo.Create(ctx, svc)
	if err != nil {
		return domain.Service{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *OfferingService) UpdateService(ctx context.Context, svc domain.Service) (domain.Service, error) {
	if err := validatePrice(svc.Price); err != nil {
		return domain.Service{}, err
	}

	updated, err := s.repo.Update(ctx, svc)
	if err != nil {
		return domain.Service{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *OfferingService) AddGuest(ctx context.Context, serviceID, guestID uint) error {
	if err := s.repo.AddGuest(ctx, serviceID, guestID); err != nil {
		return fmt.Errorf("s.repo.AddGuest -> %w", err)
	}

	return nil
}

func (s *OfferingService) DeleteService(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func validatePrice(price int) error {
	if price < 0 {
		return domain.NewValidationError("price", "must be no less than 0")
	}

	return nil
}
