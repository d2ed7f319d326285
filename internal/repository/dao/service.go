package dao

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type ServiceDAO struct {
	db *gorm.DB
}

func NewServiceDAO(db *gorm.DB) *ServiceDAO {
	return &ServiceDAO{
		db: db,
	}
}

func serviceRefs(svc Service) []ref {
	return []ref{
		one("providerId", tableProviders, svc.ProviderID),
		{field: "guestIds", table: tableGuests, ids: svc.GuestIDs},
	}
}

func (d *ServiceDAO) Insert(ctx context.Context, svc Service) (Service, error) {
	svc.ID = 0
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return insertService(tx, &svc)
	})
	if err != nil {
		return Service{}, err
	}

	return svc, nil
}

func insertService(tx *gorm.DB, svc *Service) error {
	if err := checkRefs(tx, serviceRefs(*svc)...); err != nil {
		return err
	}
	if err := tx.Omit("Guests").Create(svc).Error; err != nil {
		return translate(err, "providerId")
	}

	return replaceLinks(tx, joinServiceGuests, "service_id", "guest_id", svc.ID, svc.GuestIDs)
}

func (d *ServiceDAO) FindByID(ctx context.Context, id uint) (Service, error) {
	var svc Service
	if err := d.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return Service{}, notFound(err, ErrServiceNotFound)
	}

	withGuests, err := attachServiceGuests(d.db.WithContext(ctx), []Service{svc})
	if err != nil {
		return Service{}, err
	}

	return withGuests[0], nil
}

func (d *ServiceDAO) FindAll(ctx context.Context) ([]Service, error) {
	var services []Service
	if err := d.db.WithContext(ctx).Order("id").Find(&services).Error; err != nil {
		return nil, err
	}

	return attachServiceGuests(d.db.WithContext(ctx), services)
}

func attachServiceGuests(tx *gorm.DB, services []Service) ([]Service, error) {
	links, err := loadLinks(tx, joinServiceGuests, "service_id", "guest_id", ids(services, func(s Service) uint { return s.ID }))
	if err != nil {
		return nil, err
	}
	for i := range services {
		services[i].GuestIDs = links[services[i].ID]
	}

	return services, nil
}

// Update replaces every field and the guest list.
func (d *ServiceDAO) Update(ctx context.Context, svc Service) (Service, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Service
		if err := tx.First(&existing, svc.ID).Error; err != nil {
			return notFound(err, ErrServiceNotFound)
		}
		if err := checkRefs(tx, serviceRefs(svc)...); err != nil {
			return err
		}

		svc.CreatedAt = existing.CreatedAt
		if err := tx.Omit("Guests").Save(&svc).Error; err != nil {
			return translate(err, "providerId")
		}

		return replaceLinks(tx, joinServiceGuests, "service_id", "guest_id", svc.ID, svc.GuestIDs)
	})
	if err != nil {
		return Service{}, err
	}

	return svc, nil
}

func (d *ServiceDAO) AddGuest(ctx context.Context, serviceID, guestID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var svc Service
		if err := tx.First(&svc, serviceID).Error; err != nil {
			return notFound(err, ErrServiceNotFound)
		}
		if err := checkRefs(tx, one("guestId", tableGuests, guestID)); err != nil {
			return err
		}

		return addLink(tx, joinServiceGuests, "service_id", "guest_id", serviceID, guestID)
	})
}

func (d *ServiceDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var svc Service
		if err := tx.First(&svc, id).Error; err != nil {
			return notFound(err, ErrServiceNotFound)
		}

		return deleteServices(tx, []uint{id})
	})
}

// deleteServices removes services with their discount and membership links.
// Billings keep their amount but lose the service reference.
func deleteServices(tx *gorm.DB, serviceIDs []uint) error {
	if len(serviceIDs) == 0 {
		return nil
	}

	for _, join := range []string{joinExperienceServices, joinServiceGuests} {
		if err := tx.Exec("DELETE FROM "+join+" WHERE service_id IN ?", serviceIDs).Error; err != nil {
			return fmt.Errorf("delete %s links -> %w", join, err)
		}
	}
	if err := tx.Where("service_id IN ?", serviceIDs).Delete(&Discount{}).Error; err != nil {
		return fmt.Errorf("delete discounts -> %w", err)
	}
	if err := tx.Model(&Billing{}).Where("service_id IN ?", serviceIDs).Update("service_id", nil).Error; err != nil {
		return fmt.Errorf("detach billings -> %w", err)
	}
	if err := tx.Where("id IN ?", serviceIDs).Delete(&Service{}).Error; err != nil {
		return fmt.Errorf("delete services -> %w", err)
	}

	return nil
}
