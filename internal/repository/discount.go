package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
	"github.com/vietanh2810/shared-experiences-api/internal/repository/dao"
)

var ErrDiscountNotFound = dao.ErrDiscountNotFound

type DiscountDAO interface {
	Insert(ctx context.Context, discount dao.Discount) (dao.Discount, error)
	FindByID(ctx context.Context, id uint) (dao.Discount, error)
	FindByServiceID(ctx context.Context, serviceID uint) (dao.Discount, error)
	FindAll(ctx context.Context) ([]dao.Discount, error)
	Update(ctx context.Context, discount dao.Discount) (dao.Discount, error)
	Delete(ctx context.Context, id uint) error
}

type DiscountRepository struct {
	dao DiscountDAO
}

func NewDiscountRepository(dao DiscountDAO) *DiscountRepository {
	return &DiscountRepository{
		dao: dao,
	}
}

func (r *DiscountRepository) Create(ctx context.Context, discount domain.Discount) (domain.Discount, error) {
	created, err := r.dao.Insert(ctx, discountToDAO(discount))
	if err != nil {
		return domain.Discount{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return discountToDomain(created), nil
}

func (r *DiscountRepository) FindByID(ctx context.Context, id uint) (domain.Discount, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Discount{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return discountToDomain(found), nil
}

func (r *DiscountRepository) FindByServiceID(ctx context.Context, serviceID uint) (domain.Discount, error) {
	found, err := r.dao.FindByServiceID(ctx, serviceID)
	if err != nil {
		return domain.Discount{}, fmt.Errorf("r.dao.FindByServiceID -> %w", err)
	}

	return discountToDomain(found), nil
}

func (r *DiscountRepository) FindAll(ctx context.Context) ([]domain.Discount, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	discounts := make([]domain.Discount, 0, len(found))
	for _, d := range found {
		discounts = append(discounts, discountToDomain(d))
	}

	return discounts, nil
}

func (r *DiscountRepository) Update(ctx context.Context, discount domain.Discount) (domain.Discount, error) {
	updated, err := r.dao.Update(ctx, discountToDAO(discount))
	if err != nil {
		return domain.Discount{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return discountToDomain(updated), nil
}

func (r *DiscountRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func discountToDAO(d domain.Discount) dao.Discount {
	return dao.Discount{
		ID:         d.ID,
		Name:       d.Name,
		ServiceID:  d.ServiceID,
		GuestCount: d.GuestCount,
		Percentage: d.Percentage,
	}
}

func discountToDomain(d dao.Discount) domain.Discount {
	return domain.Discount{
		ID:         d.ID,
		Name:       d.Name,
		ServiceID:  d.ServiceID,
		GuestCount: d.GuestCount,
		Percentage: d.Percentage,
	}
}
