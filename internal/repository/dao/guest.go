package dao

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type GuestDAO struct {
	db *gorm.DB
}

func NewGuestDAO(db *gorm.DB) *GuestDAO {
	return &GuestDAO{
		db: db,
	}
}

func (d *GuestDAO) Insert(ctx context.Context, guest Guest) (Guest, error) {
	guest.ID = 0
	if err := d.db.WithContext(ctx).Create(&guest).Error; err != nil {
		return Guest{}, err
	}

	return guest, nil
}

func (d *GuestDAO) FindByID(ctx context.Context, id uint) (Guest, error) {
	var guest Guest
	if err := d.db.WithContext(ctx).First(&guest, id).Error; err != nil {
		return Guest{}, notFound(err, ErrGuestNotFound)
	}

	return guest, nil
}

func (d *GuestDAO) FindAll(ctx context.Context) ([]Guest, error) {
	var guests []Guest
	if err := d.db.WithContext(ctx).Order("id").Find(&guests).Error; err != nil {
		return nil, err
	}

	return guests, nil
}

func (d *GuestDAO) Update(ctx context.Context, guest Guest) (Guest, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Guest
		if err := tx.First(&existing, guest.ID).Error; err != nil {
			return notFound(err, ErrGuestNotFound)
		}

		guest.UserID = existing.UserID
		guest.CreatedAt = existing.CreatedAt
		return tx.Save(&guest).Error
	})
	if err != nil {
		return Guest{}, err
	}

	return guest, nil
}

// Delete removes the guest, its billings and every membership link.
func (d *GuestDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var guest Guest
		if err := tx.First(&guest, id).Error; err != nil {
			return notFound(err, ErrGuestNotFound)
		}

		if err := tx.Where("guest_id = ?", id).Delete(&Billing{}).Error; err != nil {
			return fmt.Errorf("delete billings -> %w", err)
		}
		for _, join := range []string{joinExperienceGuests, joinServiceGuests} {
			if err := tx.Exec("DELETE FROM "+join+" WHERE guest_id = ?", id).Error; err != nil {
				return fmt.Errorf("delete %s links -> %w", join, err)
			}
		}

		return tx.Delete(&guest).Error
	})
}
