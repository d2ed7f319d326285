package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type ProviderRepository interface {
	Create(ctx context.Context, provider domain.Provider) (domain.Provider, error)
	FindByID(ctx context.Context, id uint) (domain.Provider, error)
	FindAll(ctx context.Context) ([]domain.Provider, error)
	FindServices(ctx context.Context, id uint) ([]domain.Service, error)
	Update(ctx context.Context, provider domain.Provider) (domain.Provider, error)
	Delete(ctx context.Context, id uint) error
}

type ProviderService struct {
	repo ProviderRepository
}

func NewProviderService(repo ProviderRepository) *ProviderService {
	return &ProviderService{
		repo: repo,
	}
}

func (s *ProviderService) GetProviders(ctx context.Context) ([]domain.Provider, error) {
	providers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return providers, nil
}

func (s *ProviderService) GetProvider(ctx context.Context, id uint) (domain.Provider, error) {
	provider, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Provider{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return provider, nil
}

func (s *ProviderService) GetProviderServices(ctx context.Context, id uint) ([]domain.Service, error) {
	services, err := s.repo.FindServices(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindServices -> %w", err)
	}

	return services, nil
}

func (s *ProviderService) CreateProvider(ctx context.Context, provider domain.Provider) (domain.Provider, error) {
	created, err := s.repo.Create(ctx, provider)
	if err != nil {
		return domain.Provider{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ProviderService) UpdateProvider(ctx context.Context, provider domain.Provider) (domain.Provider, error) {
	updated, err := s.repo.Update(ctx, provider)
	if err != nil {
		return domain.Provider{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *ProviderService) DeleteProvider(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
