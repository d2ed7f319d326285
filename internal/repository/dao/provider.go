package dao

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type ProviderDAO struct {
	db *gorm.DB
}

func NewProviderDAO(db *gorm.DB) *ProviderDAO {
	return &ProviderDAO{
		db: db,
	}
}

func (d *ProviderDAO) Insert(ctx context.Context, provider Provider) (Provider, error) {
	provider.ID = 0
	if err := d.db.WithContext(ctx).Omit("Services").Create(&provider).Error; err != nil {
		return Provider{}, err
	}

	return provider, nil
}

func (d *ProviderDAO) FindByID(ctx context.Context, id uint) (Provider, error) {
	var provider Provider
	if err := d.db.WithContext(ctx).First(&provider, id).Error; err != nil {
		return Provider{}, notFound(err, ErrProviderNotFound)
	}

	return provider, nil
}

func (d *ProviderDAO) FindAll(ctx context.Context) ([]Provider, error) {
	var providers []Provider
	if err := d.db.WithContext(ctx).Order("id").Find(&providers).Error; err != nil {
		return nil, err
	}

	return providers, nil
}

// FindServices lists the services a provider offers.
func (d *ProviderDAO) FindServices(ctx context.Context, id uint) ([]Service, error) {
	tx := d.db.WithContext(ctx)

	var provider Provider
	if err := tx.First(&provider, id).Error; err != nil {
		return nil, notFound(err, ErrProviderNotFound)
	}

	var services []Service
	if err := tx.Where("provider_id = ?", id).Order("id").Find(&services).Error; err != nil {
		return nil, err
	}

	return attachServiceGuests(tx, services)
}

func (d *ProviderDAO) Update(ctx context.Context, provider Provider) (Provider, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Provider
		if err := tx.First(&existing, provider.ID).Error; err != nil {
			return notFound(err, ErrProviderNotFound)
		}

		// The account link is owned by registration, not by profile edits.
		provider.UserID = existing.UserID
		provider.CreatedAt = existing.CreatedAt
		return tx.Omit("Services").Save(&provider).Error
	})
	if err != nil {
		return Provider{}, err
	}

	return provider, nil
}

// Delete removes the provider together with its services and billings.
func (d *ProviderDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var provider Provider
		if err := tx.First(&provider, id).Error; err != nil {
			return notFound(err, ErrProviderNotFound)
		}

		var serviceIDs []uint
		if err := tx.Model(&Service{}).Where("provider_id = ?", id).Pluck("id", &serviceIDs).Error; err != nil {
			return fmt.Errorf("pluck service ids -> %w", err)
		}
		if err := deleteServices(tx, serviceIDs); err != nil {
			return err
		}

		if err := tx.Where("provider_id = ?", id).Delete(&Billing{}).Error; err != nil {
			return fmt.Errorf("delete billings -> %w", err)
		}

		return tx.Delete(&provider).Error
	})
}
