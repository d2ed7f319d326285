package dao

import (
	"context"

	"gorm.io/gorm"
)

type SharedExperienceDAO struct {
	db *gorm.DB
}

func NewSharedExperienceDAO(db *gorm.DB) *SharedExperienceDAO {
	return &SharedExperienceDAO{
		db: db,
	}
}

func experienceRefs(exp SharedExperience) []ref {
	return []ref{
		{field: "serviceIds", table: tableServices, ids: exp.ServiceIDs},
		{field: "guestIds", table: tableGuests, ids: exp.GuestIDs},
	}
}

func (d *SharedExperienceDAO) Insert(ctx context.Context, exp SharedExperience) (SharedExperience, error) {
	exp.ID = 0
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return insertExperience(tx, &exp)
	})
	if err != nil {
		return SharedExperience{}, err
	}

	return exp, nil
}

func insertExperience(tx *gorm.DB, exp *SharedExperience) error {
	if err := checkRefs(tx, experienceRefs(*exp)...); err != nil {
		return err
	}
	if err := tx.Omit("Services", "Guests").Create(exp).Error; err != nil {
		return err
	}

	return replaceExperienceLinks(tx, *exp)
}

func replaceExperienceLinks(tx *gorm.DB, exp SharedExperience) error {
	if err := replaceLinks(tx, joinExperienceServices, "shared_experience_id", "service_id", exp.ID, exp.ServiceIDs); err != nil {
		return err
	}

	return replaceLinks(tx, joinExperienceGuests, "shared_experience_id", "guest_id", exp.ID, exp.GuestIDs)
}

func (d *SharedExperienceDAO) FindByID(ctx context.Context, id uint) (SharedExperience, error) {
	var exp SharedExperience
	if err := d.db.WithContext(ctx).First(&exp, id).Error; err != nil {
		return SharedExperience{}, notFound(err, ErrSharedExperienceNotFound)
	}

	found, err := attachExperienceLinks(d.db.WithContext(ctx), []SharedExperience{exp})
	if err != nil {
		return SharedExperience{}, err
	}

	return found[0], nil
}

func (d *SharedExperienceDAO) FindAll(ctx context.Context) ([]SharedExperience, error) {
	var exps []SharedExperience
	if err := d.db.WithContext(ctx).Order("id").Find(&exps).Error; err != nil {
		return nil, err
	}

	return attachExperienceLinks(d.db.WithContext(ctx), exps)
}

func attachExperienceLinks(tx *gorm.DB, exps []SharedExperience) ([]SharedExperience, error) {
	owners := ids(exps, func(e SharedExperience) uint { return e.ID })

	services, err := loadLinks(tx, joinExperienceServices, "shared_experience_id", "service_id", owners)
	if err != nil {
		return nil, err
	}
	guests, err := loadLinks(tx, joinExperienceGuests, "shared_experience_id", "guest_id", owners)
	if err != nil {
		return nil, err
	}

	for i := range exps {
		exps[i].ServiceIDs = services[exps[i].ID]
		exps[i].GuestIDs = guests[exps[i].ID]
	}

	return exps, nil
}

// Update replaces every field and both link lists.
func (d *SharedExperienceDAO) Update(ctx context.Context, exp SharedExperience) (SharedExperience, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing SharedExperience
		if err := tx.First(&existing, exp.ID).Error; err != nil {
			return notFound(err, ErrSharedExperienceNotFound)
		}
		if err := checkRefs(tx, experienceRefs(exp)...); err != nil {
			return err
		}

		exp.CreatedAt = existing.CreatedAt
		if err := tx.Omit("Services", "Guests").Save(&exp).Error; err != nil {
			return err
		}

		return replaceExperienceLinks(tx, exp)
	})
	if err != nil {
		return SharedExperience{}, err
	}

	return exp, nil
}

func (d *SharedExperienceDAO) AddGuest(ctx context.Context, expID, guestID uint) error {
	return d.addLink(ctx, expID, one("guestId", tableGuests, guestID), joinExperienceGuests, "guest_id")
}

func (d *SharedExperienceDAO) AddService(ctx context.Context, expID, serviceID uint) error {
	return d.addLink(ctx, expID, one("serviceId", tableServices, serviceID), joinExperienceServices, "service_id")
}

func (d *SharedExperienceDAO) addLink(ctx context.Context, expID uint, target ref, join, otherCol string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exp SharedExperience
		if err := tx.First(&exp, expID).Error; err != nil {
			return notFound(err, ErrSharedExperienceNotFound)
		}
		if err := checkRefs(tx, target); err != nil {
			return err
		}

		return addLink(tx, join, "shared_experience_id", otherCol, expID, target.ids[0])
	})
}

func (d *SharedExperienceDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exp SharedExperience
		if err := tx.First(&exp, id).Error; err != nil {
			return notFound(err, ErrSharedExperienceNotFound)
		}

		exp.ServiceIDs, exp.GuestIDs = nil, nil
		if err := replaceExperienceLinks(tx, exp); err != nil {
			return err
		}

		return tx.Delete(&exp).Error
	})
}
