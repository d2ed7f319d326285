package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
	"github.com/vietanh2810/shared-experiences-api/internal/repository/dao"
)

var ErrBillingNotFound = dao.ErrBillingNotFound

type BillingDAO interface {
	Insert(ctx context.Context, billing dao.Billing) (dao.Billing, error)
	FindByID(ctx context.Context, id uint) (dao.Billing, error)
	FindAll(ctx context.Context) ([]dao.Billing, error)
	Update(ctx context.Context, billing dao.Billing) (dao.Billing, error)
	Delete(ctx context.Context, id uint) error
}

type BillingRepository struct {
	dao BillingDAO
}

func NewBillingRepository(dao BillingDAO) *BillingRepository {
	return &BillingRepository{
		dao: dao,
	}
}

func (r *BillingRepository) Create(ctx context.Context, billing domain.Billing) (domain.Billing, error) {
	created, err := r.dao.Insert(ctx, billingToDAO(billing))
	if err != nil {
		return domain.Billing{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return billingToDomain(created), nil
}

func (r *BillingRepository) FindByID(ctx context.Context, id uint) (domain.Billing, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Billing{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return billingToDomain(found), nil
}

func (r *BillingRepository) FindAll(ctx context.Context) ([]domain.Billing, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return billingsToDomain(found), nil
}

func (r *BillingRepository) Update(ctx context.Context, billing domain.Billing) (domain.Billing, error) {
	updated, err := r.dao.Update(ctx, billingToDAO(billing))
	if err != nil {
		return domain.Billing{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return billingToDomain(updated), nil
}

func (r *BillingRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func billingToDAO(b domain.Billing) dao.Billing {
	return dao.Billing{
		ID:         b.ID,
		Amount:     b.Amount,
		Date:       b.Date,
		GuestID:    b.GuestID,
		ProviderID: b.ProviderID,
		ServiceID:  b.ServiceID,
	}
}

func billingToDomain(b dao.Billing) domain.Billing {
	return domain.Billing{
		ID:         b.ID,
		Amount:     b.Amount,
		Date:       b.Date,
		GuestID:    b.GuestID,
		ProviderID: b.ProviderID,
		ServiceID:  b.ServiceID,
	}
}

func billingsToDomain(found []dao.Billing) []domain.Billing {
	billings := make([]domain.Billing, 0, len(found))
	for _, b := range found {
		billings = append(billings, billingToDomain(b))
	}

	return billings
}
