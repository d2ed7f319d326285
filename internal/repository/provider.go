package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
	"github.com/vietanh2810/shared-experiences-api/internal/repository/dao"
)

var ErrProviderNotFound = dao.ErrProviderNotFound

type ProviderDAO interface {
	Insert(ctx context.Context, provider dao.Provider) (dao.Provider, error)
	FindByID(ctx context.Context, id uint) (dao.Provider, error)
	FindAll(ctx context.Context) ([]dao.Provider, error)
	FindServices(ctx context.Context, id uint) ([]dao.Service, error)
	Update(ctx context.Context, provider dao.Provider) (dao.Provider, error)
	Delete(ctx context.Context, id uint) error
}

type ProviderRepository struct {
	dao ProviderDAO
}

func NewProviderRepository(dao ProviderDAO) *ProviderRepository {
	return &ProviderRepository{
		dao: dao,
	}
}

func (r *ProviderRepository) Create(ctx context.Context, provider domain.Provider) (domain.Provider, error) {
	created, err := r.dao.Insert(ctx, providerToDAO(provider))
	if err != nil {
		return domain.Provider{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return providerToDomain(created), nil
}

func (r *ProviderRepository) FindByID(ctx context.Context, id uint) (domain.Provider, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Provider{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return providerToDomain(found), nil
}

func (r *ProviderRepository) FindAll(ctx context.Context) ([]domain.Provider, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	providers := make([]domain.Provider, 0, len(found))
	for _, p := range found {
		providers = append(providers, providerToDomain(p))
	}

	return providers, nil
}

func (r *ProviderRepository) FindServices(ctx context.Context, id uint) ([]domain.Service, error) {
	found, err := r.dao.FindServices(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindServices -> %w", err)
	}

	return servicesToDomain(found), nil
}

func (r *ProviderRepository) Update(ctx context.Context, provider domain.Provider) (domain.Provider, error) {
	updated, err := r.dao.Update(ctx, providerToDAO(provider))
	if err != nil {
		return domain.Provider{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return providerToDomain(updated), nil
}

func (r *ProviderRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func providerToDAO(p domain.Provider) dao.Provider {
	return dao.Provider{
		ID:                      p.ID,
		Name:                    p.Name,
		Address:                 p.Address,
		Number:                  p.Number,
		TouristicOperatorPermit: p.TouristicOperatorPermit,
		UserID:                  p.UserID,
	}
}

func providerToDomain(p dao.Provider) domain.Provider {
	return domain.Provider{
		ID:                      p.ID,
		Name:                    p.Name,
		Address:                 p.Address,
		Number:                  p.Number,
		TouristicOperatorPermit: p.TouristicOperatorPermit,
		UserID:                  p.UserID,
	}
}
