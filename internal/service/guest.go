package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type GuestRepository interface {
	Create(ctx context.Context, guest domain.Guest) (domain.Guest, error)
	FindByID(ctx context.Context, id uint) (domain.Guest, error)
	FindAll(ctx context.Context) ([]domain.Guest, error)
	Update(ctx context.Context, guest domain.Guest) (domain.Guest, error)
	Delete(ctx context.Context, id uint) error
}

type GuestService struct {
	repo GuestRepository
}

func NewGuestService(repo GuestRepository) *GuestService {
	return &GuestService{
		repo: repo,
	}
}

func (s *GuestService) GetGuests(ctx context.Context) ([]domain.Guest, error) {
	guests, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return guests, nil
}

func (s *GuestService) GetGuest(ctx context.Context, id uint) (domain.Guest, error) {
	guest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Guest{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return guest, nil
}

func (s *GuestService) CreateGuest(ctx context.Context, guest domain.Guest) (domain.Guest, error) {
	created, err := s.repo.Create(ctx, guest)
	if err != nil {
		return domain.Guest{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *GuestService) UpdateGuest(ctx context.Context, guest domain.Guest) (domain.Guest, error) {
	updated, err := s.repo.Update(ctx, guest)
	if err != nil {
		return domain.Guest{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *GuestService) DeleteGuest(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
