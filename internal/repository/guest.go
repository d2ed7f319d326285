package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
	"github.com/vietanh2810/shared-experiences-api/internal/repository/dao"
)

var ErrGuestNotFound = dao.ErrGuestNotFound

type GuestDAO interface {
	Insert(ctx context.Context, guest dao.Guest) (dao.Guest, error)
	FindByID(ctx context.Context, id uint) (dao.Guest, error)
	FindAll(ctx context.Context) ([]dao.Guest, error)
	Update(ctx context.Context, guest dao.Guest) (dao.Guest, error)
	Delete(ctx context.Context, id uint) error
}

type GuestRepository struct {
	dao GuestDAO
}

func NewGuestRepository(dao GuestDAO) *GuestRepository {
	return &GuestRepository{
		dao: dao,
	}
}

func (r *GuestRepository) Create(ctx context.Context, guest domain.Guest) (domain.Guest, error) {
	created, err := r.dao.Insert(ctx, guestToDAO(guest))
	if err != nil {
		return domain.Guest{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return guestToDomain(created), nil
}

func (r *GuestRepository) FindByID(ctx context.Context, id uint) (domain.Guest, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Guest{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return guestToDomain(found), nil
}

func (r *GuestRepository) FindAll(ctx context.Context) ([]domain.Guest, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return guestsToDomain(found), nil
}

func (r *GuestRepository) Update(ctx context.Context, guest domain.Guest) (domain.Guest, error) {
	updated, err := r.dao.Update(ctx, guestToDAO(guest))
	if err != nil {
		return domain.Guest{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return guestToDomain(updated), nil
}

func (r *GuestRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func guestToDAO(g domain.Guest) dao.Guest {
	return dao.Guest{
		ID:     g.ID,
		Name:   g.Name,
		Number: g.Number,
		Age:    g.Age,
		UserID: g.UserID,
	}
}

func guestToDomain(g dao.Guest) domain.Guest {
	return domain.Guest{
		ID:     g.ID,
		Name:   g.Name,
		Number: g.Number,
		Age:    g.Age,
		UserID: g.UserID,
	}
}

func guestsToDomain(found []dao.Guest) []domain.Guest {
	guests := make([]domain.Guest, 0, len(found))
	for _, g := range found {
		guests = append(guests, guestToDomain(g))
	}

	return guests
}
