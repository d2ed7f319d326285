package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
	"github.com/vietanh2810/shared-experiences-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
)

type UserDAO interface {
	InsertWithProfile(ctx context.Context, user dao.User, provider *dao.Provider, guest *dao.Guest) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	Count(ctx context.Context) (int64, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) CreateWithProfile(ctx context.Context, user domain.User, profile domain.Profile) (domain.User, error) {
	var (
		provider *dao.Provider
		guest    *dao.Guest
	)
	if profile.Provider != nil {
		p := providerToDAO(*profile.Provider)
		provider = &p
	}
	if profile.Guest != nil {
		g := guestToDAO(*profile.Guest)
		guest = &g
	}

	created, err := r.dao.InsertWithProfile(ctx, userToDAO(user), provider, guest)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.InsertWithProfile -> %w", err)
	}

	return userToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return userToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return userToDomain(found), nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return n, nil
}

func userToDAO(u domain.User) dao.User {
	return dao.User{
		ID:          u.ID,
		Email:       u.Email,
		Password:    u.Password,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Role:        string(u.Role),
	}
}

func userToDomain(u dao.User) domain.User {
	return domain.User{
		ID:          u.ID,
		Email:       u.Email,
		Password:    u.Password,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Role:        domain.Role(u.Role),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
