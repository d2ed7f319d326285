package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
	"github.com/vietanh2810/shared-experiences-api/internal/repository/dao"
)

var ErrServiceNotFound = dao.ErrServiceNotFound

type ServiceDAO interface {
	Insert(ctx context.Context, svc dao.Service) (dao.Service, error)
	FindByID(ctx context.Context, id uint) (dao.Service, error)
	FindAll(ctx context.Context) ([]dao.Service, error)
	Update(ctx context.Context, svc dao.Service) (dao.Service, error)
	AddGuest(ctx context.Context, serviceID, guestID uint) error
	Delete(ctx context.Context, id uint) error
}

type ServiceRepository struct {
	dao ServiceDAO
}

func NewServiceRepository(dao ServiceDAO) *ServiceRepository {
	return &ServiceRepository{
		dao: dao,
	}
}

func (r *ServiceRepository) Create(ctx context.Context, svc domain.Service) (domain.Service, error) {
	created, err := r.dao.Insert(ctx, serviceToDAO(svc))
	if err != nil {
		return domain.Service{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return serviceToDomain(created), nil
}

func (r *ServiceRepository) FindByID(ctx context.Context, id uint) (domain.Service, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Service{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return serviceToDomain(found), nil
}

func (r *ServiceRepository) FindAll(ctx context.Context) ([]domain.Service, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return servicesToDomain(found), nil
}

func (r *ServiceRepository) Update(ctx context.Context, svc domain.Service) (domain.Service, error) {
	updated, err := r.dao.Update(ctx, serviceToDAO(svc))
	if err != nil {
		return domain.Service{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return serviceToDomain(updated), nil
}

func (r *ServiceRepository) AddGuest(ctx context.Context, serviceID, guestID uint) error {
	if err := r.dao.AddGuest(ctx, serviceID, guestID); err != nil {
		return fmt.Errorf("r.dao.AddGuest -> %w", err)
	}

	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func serviceToDAO(s domain.Service) dao.Service {
	return dao.Service{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		Date:        s.Date,
		ProviderID:  s.ProviderID,
		GuestIDs:    s.GuestIDs,
	}
}

func serviceToDomain(s dao.Service) domain.Service {
	guestIDs := s.GuestIDs
	if guestIDs == nil {
		guestIDs = []uint{}
	}

	return domain.Service{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		Date:        s.Date,
		ProviderID:  s.ProviderID,
		GuestIDs:    guestIDs,
	}
}

func servicesToDomain(found []dao.Service) []domain.Service {
	services := make([]domain.Service, 0, len(found))
	for _, s := range found {
		services = append(services, serviceToDomain(s))
	}

	return services
}
