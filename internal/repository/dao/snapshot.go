package dao

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Snapshot struct {
	Providers   []Provider
	Services    []Service
	Guests      []Guest
	Experiences []SharedExperience
	Billings    []Billing
}

type SnapshotDAO struct {
	db *gorm.DB
}

func NewSnapshotDAO(db *gorm.DB) *SnapshotDAO {
	return &SnapshotDAO{
		db: db,
	}
}

// Load reads every report input inside one read-only transaction.
func (d *SnapshotDAO) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("id").Find(&snap.Providers).Error; err != nil {
			return err
		}
		if err := tx.Order("id").Find(&snap.Guests).Error; err != nil {
			return err
		}
		if err := tx.Order("id").Find(&snap.Billings).Error; err != nil {
			return err
		}

		if err := tx.Order("id").Find(&snap.Services).Error; err != nil {
			return err
		}
		services, err := attachServiceGuests(tx, snap.Services)
		if err != nil {
			return err
		}
		snap.Services = services

		if err = tx.Order("id").Find(&snap.Experiences).Error; err != nil {
			return err
		}
		exps, err := attachExperienceLinks(tx, snap.Experiences)
		if err != nil {
			return err
		}
		snap.Experiences = exps

		return nil
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return Snapshot{}, err
	}

	return snap, nil
}
