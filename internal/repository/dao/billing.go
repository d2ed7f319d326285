package dao

import (
	"context"

	"gorm.io/gorm"
)

type BillingDAO struct {
	db *gorm.DB
}

func NewBillingDAO(db *gorm.DB) *BillingDAO {
	return &BillingDAO{
		db: db,
	}
}

func billingRefs(b Billing) []ref {
	return []ref{
		one("guestId", tableGuests, b.GuestID),
		one("providerId", tableProviders, b.ProviderID),
		optional("serviceId", tableServices, b.ServiceID),
	}
}

func (d *BillingDAO) Insert(ctx context.Context, billing Billing) (Billing, error) {
	billing.ID = 0
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return insertBilling(tx, &billing)
	})
	if err != nil {
		return Billing{}, err
	}

	return billing, nil
}

func insertBilling(tx *gorm.DB, billing *Billing) error {
	if err := checkRefs(tx, billingRefs(*billing)...); err != nil {
		return err
	}

	return translate(tx.Create(billing).Error, "guestId")
}

func (d *BillingDAO) FindByID(ctx context.Context, id uint) (Billing, error) {
	var billing Billing
	if err := d.db.WithContext(ctx).First(&billing, id).Error; err != nil {
		return Billing{}, notFound(err, ErrBillingNotFound)
	}

	return billing, nil
}

func (d *BillingDAO) FindAll(ctx context.Context) ([]Billing, error) {
	var billings []Billing
	if err := d.db.WithContext(ctx).Order("id").Find(&billings).Error; err != nil {
		return nil, err
	}

	return billings, nil
}

func (d *BillingDAO) Update(ctx context.Context, billing Billing) (Billing, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Billing
		if err := tx.First(&existing, billing.ID).Error; err != nil {
			return notFound(err, ErrBillingNotFound)
		}
		if err := checkRefs(tx, billingRefs(billing)...); err != nil {
			return err
		}

		billing.CreatedAt = existing.CreatedAt
		return translate(tx.Save(&billing).Error, "guestId")
	})
	if err != nil {
		return Billing{}, err
	}

	return billing, nil
}

func (d *BillingDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Billing{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBillingNotFound
	}

	return nil
}
