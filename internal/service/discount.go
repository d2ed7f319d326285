package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type DiscountRepository interface {
	Create(ctx context.Context, discount domain.Discount) (domain.Discount, error)
	FindByID(ctx context.Context, id uint) (domain.Discount, error)
	FindByServiceID(ctx context.Context, serviceID uint) (domain.Discount, error)
	FindAll(ctx context.Context) ([]domain.Discount, error)
	Update(ctx context.Context, discount domain.Discount) (domain.Discount, error)
	Delete(ctx context.Context, id uint) error
}

type DiscountService struct {
	repo DiscountRepository
}

func NewDiscountService(repo DiscountRepository) *DiscountService {
	return &DiscountService{
		repo: repo,
	}
}

func (s *DiscountService) GetDiscounts(ctx context.Context) ([]domain.Discount, error) {
	discounts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return discounts, nil
}

func (s *DiscountService) GetDiscount(ctx context.Context, id uint) (domain.Discount, error) {
	discount, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Discount{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return discount, nil
}

func (s *DiscountService) CreateDiscount(ctx context.Context, discount domain.Discount) (domain.Discount, error) {
	if err := validateDiscount(discount); err != nil {
		return domain.Discount{}, err
	}

	created, err := s.repo.Create(ctx, discount)
	if err != nil {
		return domain.Discount{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *DiscountService) UpdateDiscount(ctx context.Context, discount domain.Discount) (domain.Discount, error) {
	if err := validateDiscount(discount); err != nil {
		return domain.Discount{}, err
	}

	updated, err := s.repo.Update(ctx, discount)
	if err != nil {
		return domain.Discount{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *DiscountService) DeleteDiscount(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func validateDiscount(d domain.Discount) error {
	verr := &domain.ValidationError{}
	if d.Percentage < 0 || d.Percentage > 100 {
		verr.Add("percentage", "must be between 0 and 100")
	}
	if d.GuestCount < 1 {
		verr.Add("guestCount", "must be no less than 1")
	}
	if verr.Empty() {
		return nil
	}

	return verr
}
