package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
	"github.com/vietanh2810/shared-experiences-api/internal/repository/dao"
)

var ErrSharedExperienceNotFound = dao.ErrSharedExperienceNotFound

type SharedExperienceDAO interface {
	Insert(ctx context.Context, exp dao.SharedExperience) (dao.SharedExperience, error)
	FindByID(ctx context.Context, id uint) (dao.SharedExperience, error)
	FindAll(ctx context.Context) ([]dao.SharedExperience, error)
	Update(ctx context.Context, exp dao.SharedExperience) (dao.SharedExperience, error)
	AddGuest(ctx context.Context, expID, guestID uint) error
	AddService(ctx context.Context, expID, serviceID uint) error
	Delete(ctx context.Context, id uint) error
}

type SharedExperienceRepository struct {
	dao SharedExperienceDAO
}

func NewSharedExperienceRepository(dao SharedExperienceDAO) *SharedExperienceRepository {
	return &SharedExperienceRepository{
		dao: dao,
	}
}

func (r *SharedExperienceRepository) Create(ctx context.Context, exp domain.SharedExperience) (domain.SharedExperience, error) {
	created, err := r.dao.Insert(ctx, experienceToDAO(exp))
	if err != nil {
		return domain.SharedExperience{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return experienceToDomain(created), nil
}

func (r *SharedExperienceRepository) FindByID(ctx context.Context, id uint) (domain.SharedExperience, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.SharedExperience{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return experienceToDomain(found), nil
}

func (r *SharedExperienceRepository) FindAll(ctx context.Context) ([]domain.SharedExperience, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return experiencesToDomain(found), nil
}

func (r *SharedExperienceRepository) Update(ctx context.Context, exp domain.SharedExperience) (domain.SharedExperience, error) {
	updated, err := r.dao.Update(ctx, experienceToDAO(exp))
	if err != nil {
		return domain.SharedExperience{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return experienceToDomain(updated), nil
}

func (r *SharedExperienceRepository) AddGuest(ctx context.Context, expID, guestID uint) error {
	if err := r.dao.AddGuest(ctx, expID, guestID); err != nil {
		return fmt.Errorf("r.dao.AddGuest -> %w", err)
	}

	return nil
}

func (r *SharedExperienceRepository) AddService(ctx context.Context, expID, serviceID uint) error {
	if err := r.dao.AddService(ctx, expID, serviceID); err != nil {
		return fmt.Errorf("r.dao.AddService -> %w", err)
	}

	return nil
}

func (r *SharedExperienceRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func experienceToDAO(e domain.SharedExperience) dao.SharedExperience {
	return dao.SharedExperience{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Date:        e.Date,
		ServiceIDs:  e.ServiceIDs,
		GuestIDs:    e.GuestIDs,
	}
}

func experienceToDomain(e dao.SharedExperience) domain.SharedExperience {
	exp := domain.SharedExperience{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Date:        e.Date,
		ServiceIDs:  e.ServiceIDs,
		GuestIDs:    e.GuestIDs,
	}
	if exp.ServiceIDs == nil {
		exp.ServiceIDs = []uint{}
	}
	if exp.GuestIDs == nil {
		exp.GuestIDs = []uint{}
	}

	return exp
}

func experiencesToDomain(found []dao.SharedExperience) []domain.SharedExperience {
	exps := make([]domain.SharedExperience, 0, len(found))
	for _, e := range found {
		exps = append(exps, experienceToDomain(e))
	}

	return exps
}
