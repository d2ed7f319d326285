package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type SharedExperienceRepository interface {
	Create(ctx context.Context, exp domain.SharedExperience) (domain.SharedExperience, error)
	FindByID(ctx context.Context, id uint) (domain.SharedExperience, error)
	FindAll(ctx context.Context) ([]domain.SharedExperience, error)
	Update(ctx context.Context, exp domain.SharedExperience) (domain.SharedExperience, error)
	AddGuest(ctx context.Context, expID, guestID uint) error
	AddService(ctx context.Context, expID, serviceID uint) error
	Delete(ctx context.Context, id uint) error
}

type SharedExperienceService struct {
	repo SharedExperienceRepository
}

func NewSharedExperienceService(repo SharedExperienceRepository) *SharedExperienceService {
	return &SharedExperienceService{
		repo: repo,
	}
}

func (s *SharedExperienceService) GetSharedExperiences(ctx context.Context) ([]domain.SharedExperience, error) {
	exps, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return exps, nil
}

func (s *SharedExperienceService) GetSharedExperience(ctx context.Context, id uint) (domain.SharedExperience, error) {
	exp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.SharedExperience{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return exp, nil
}

func (s *SharedExperienceService) CreateSharedExperience(ctx context.Context, exp domain.SharedExperience) (domain.SharedExperience, error) {
	exp.ServiceIDs = uniqueIDs(exp.ServiceIDs)
	exp.GuestIDs = uniqueIDs(exp.GuestIDs)

	created, err := s.repo.Create(ctx, exp)
	if err != nil {
		return domain.SharedExperience{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *SharedExperienceService) UpdateSharedExperience(ctx context.Context, exp domain.SharedExperience) (domain.SharedExperience, error) {
	exp.ServiceIDs = uniqueIDs(exp.ServiceIDs)
	exp.GuestIDs = uniqueIDs(exp.GuestIDs)

	updated, err := s.repo.Update(ctx, exp)
	if err != nil {
		return domain.SharedExperience{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *SharedExperienceService) AddGuest(ctx context.Context, expID, guestID uint) error {
	if err := s.repo.AddGuest(ctx, expID, guestID); err != nil {
		return fmt.Errorf("s.repo.AddGuest -> %w", err)
	}

	return nil
}

func (s *SharedExperienceService) AddService(ctx context.Context, expID, serviceID uint) error {
	if err := s.repo.AddService(ctx, expID, serviceID); err != nil {
		return fmt.Errorf("s.repo.AddService -> %w", err)
	}

	return nil
}

func (s *SharedExperienceService) DeleteSharedExperience(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// uniqueIDs drops repeats and keeps first-seen order.
func uniqueIDs(in []uint) []uint {
	out := make([]uint, 0, len(in))
	seen := make(map[uint]struct{}, len(in))
	for _, id := range in {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
