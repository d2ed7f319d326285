package dao

import (
	"context"

	"gorm.io/gorm"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type DiscountDAO struct {
	db *gorm.DB
}

func NewDiscountDAO(db *gorm.DB) *DiscountDAO {
	return &DiscountDAO{
		db: db,
	}
}

func (d *DiscountDAO) Insert(ctx context.Context, discount Discount) (Discount, error) {
	discount.ID = 0
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return insertDiscount(tx, &discount)
	})
	if err != nil {
		return Discount{}, err
	}

	return discount, nil
}

func insertDiscount(tx *gorm.DB, discount *Discount) error {
	if err := checkRefs(tx, one("serviceId", tableServices, discount.ServiceID)); err != nil {
		return err
	}
	if err := tx.Create(discount).Error; err != nil {
		return discountErr(err)
	}

	return nil
}

func discountErr(err error) error {
	if isUniqueViolation(err) {
		return domain.NewValidationError("serviceId", "service already has a discount")
	}

	return translate(err, "serviceId")
}

func (d *DiscountDAO) FindByID(ctx context.Context, id uint) (Discount, error) {
	var discount Discount
	if err := d.db.WithContext(ctx).First(&discount, id).Error; err != nil {
		return Discount{}, notFound(err, ErrDiscountNotFound)
	}

	return discount, nil
}

func (d *DiscountDAO) FindByServiceID(ctx context.Context, serviceID uint) (Discount, error) {
	var discount Discount
	if err := d.db.WithContext(ctx).Where("service_id = ?", serviceID).First(&discount).Error; err != nil {
		return Discount{}, notFound(err, ErrDiscountNotFound)
	}

	return discount, nil
}

func (d *DiscountDAO) FindAll(ctx context.Context) ([]Discount, error) {
	var discounts []Discount
	if err := d.db.WithContext(ctx).Order("id").Find(&discounts).Error; err != nil {
		return nil, err
	}

	return discounts, nil
}

func (d *DiscountDAO) Update(ctx context.Context, discount Discount) (Discount, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Discount
		if err := tx.First(&existing, discount.ID).Error; err != nil {
			return notFound(err, ErrDiscountNotFound)
		}
		if err := checkRefs(tx, one("serviceId", tableServices, discount.ServiceID)); err != nil {
			return err
		}

		discount.CreatedAt = existing.CreatedAt
		if err := tx.Save(&discount).Error; err != nil {
			return discountErr(err)
		}

		return nil
	})
	if err != nil {
		return Discount{}, err
	}

	return discount, nil
}

func (d *DiscountDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Discount{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDiscountNotFound
	}

	return nil
}
