package dao

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

// SeedSet mirrors domain.Dataset. Reference fields hold 1-based positions
// into the set's own slices.
type SeedSet struct {
	Users       []SeedUser
	Providers   []Provider
	Services    []Service
	Guests      []Guest
	Experiences []SharedExperience
	Discounts   []Discount
	Billings    []Billing
}

type SeedUser struct {
	User     User
	Provider *Provider
	Guest    *Guest
}

type SeedDAO struct {
	db *gorm.DB
}

func NewSeedDAO(db *gorm.DB) *SeedDAO {
	return &SeedDAO{
		db: db,
	}
}

// Seed inserts the whole set in one transaction; nothing is kept on failure.
func (d *SeedDAO) Seed(ctx context.Context, set SeedSet) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range set.Users {
			u := &set.Users[i]
			if err := insertUserWithProfile(tx, &u.User, u.Provider, u.Guest); err != nil {
				return fmt.Errorf("seed user %s -> %w", u.User.Email, err)
			}
		}

		providerIDs := make([]uint, len(set.Providers))
		for i := range set.Providers {
			p := set.Providers[i]
			p.ID = 0
			if err := tx.Omit("Services").Create(&p).Error; err != nil {
				return fmt.Errorf("seed provider %q -> %w", p.Name, err)
			}
			providerIDs[i] = p.ID
		}

		guestIDs := make([]uint, len(set.Guests))
		for i := range set.Guests {
			g := set.Guests[i]
			g.ID = 0
			if err := tx.Create(&g).Error; err != nil {
				return fmt.Errorf("seed guest %q -> %w", g.Name, err)
			}
			guestIDs[i] = g.ID
		}

		serviceIDs := make([]uint, len(set.Services))
		for i := range set.Services {
			s := set.Services[i]
			s.ID = 0
			var err error
			if s.ProviderID, err = domain.ResolveRef(providerIDs, s.ProviderID); err != nil {
				return fmt.Errorf("seed service %q -> %w", s.Name, err)
			}
			if s.GuestIDs, err = domain.ResolveRefs(guestIDs, s.GuestIDs); err != nil {
				return fmt.Errorf("seed service %q -> %w", s.Name, err)
			}
			if err = insertService(tx, &s); err != nil {
				return fmt.Errorf("seed service %q -> %w", s.Name, err)
			}
			serviceIDs[i] = s.ID
		}

		for i := range set.Experiences {
			e := set.Experiences[i]
			e.ID = 0
			var err error
			if e.ServiceIDs, err = domain.ResolveRefs(serviceIDs, e.ServiceIDs); err != nil {
				return fmt.Errorf("seed experience %q -> %w", e.Name, err)
			}
			if e.GuestIDs, err = domain.ResolveRefs(guestIDs, e.GuestIDs); err != nil {
				return fmt.Errorf("seed experience %q -> %w", e.Name, err)
			}
			if err = insertExperience(tx, &e); err != nil {
				return fmt.Errorf("seed experience %q -> %w", e.Name, err)
			}
		}

		for i := range set.Discounts {
			disc := set.Discounts[i]
			disc.ID = 0
			var err error
			if disc.ServiceID, err = domain.ResolveRef(serviceIDs, disc.ServiceID); err != nil {
				return fmt.Errorf("seed discount %q -> %w", disc.Name, err)
			}
			if err = insertDiscount(tx, &disc); err != nil {
				return fmt.Errorf("seed discount %q -> %w", disc.Name, err)
			}
		}

		for i := range set.Billings {
			b := set.Billings[i]
			b.ID = 0
			var err error
			if b.GuestID, err = domain.ResolveRef(guestIDs, b.GuestID); err != nil {
				return fmt.Errorf("seed billing %d -> %w", i+1, err)
			}
			if b.ProviderID, err = domain.ResolveRef(providerIDs, b.ProviderID); err != nil {
				return fmt.Errorf("seed billing %d -> %w", i+1, err)
			}
			if b.ServiceID != nil {
				id, err := domain.ResolveRef(serviceIDs, *b.ServiceID)
				if err != nil {
					return fmt.Errorf("seed billing %d -> %w", i+1, err)
				}
				b.ServiceID = &id
			}
			if err = insertBilling(tx, &b); err != nil {
				return fmt.Errorf("seed billing %d -> %w", i+1, err)
			}
		}

		return nil
	})
}
