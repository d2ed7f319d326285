package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type SeedStore struct {
	base
	users *UserStore
}

func NewSeedStore(db *mongo.Database) *SeedStore {
	return &SeedStore{base: base{db: db}, users: NewUserStore(db)}
}

func (s *SeedStore) HasUsers(ctx context.Context) (bool, error) {
	n, err := s.users.Count(ctx)
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

// Seed inserts the dataset in one transaction; nothing is kept on failure.
func (s *SeedStore) Seed(ctx context.Context, ds domain.Dataset) error {
	return s.withTx(ctx, func(sc mongo.SessionContext) error {
		for i := range ds.Users {
			var profile domain.Profile
			if i < len(ds.Profiles) {
				profile = ds.Profiles[i]
			}
			if err := insertUser(sc, s.base, &ds.Users[i], profile); err != nil {
				return fmt.Errorf("seed user %s -> %w", ds.Users[i].Email, err)
			}
		}

		providerIDs := make([]uint, len(ds.Providers))
		for i, p := range ds.Providers {
			id, err := s.nextID(sc, colProviders)
			if err != nil {
				return err
			}
			p.ID = id
			if _, err = s.col(colProviders).InsertOne(sc, providerToDoc(p)); err != nil {
				return fmt.Errorf("seed provider %q -> %w", p.Name, err)
			}
			providerIDs[i] = id
		}

		guestIDs := make([]uint, len(ds.Guests))
		for i, g := range ds.Guests {
			id, err := s.nextID(sc, colGuests)
			if err != nil {
				return err
			}
			g.ID = id
			if _, err = s.col(colGuests).InsertOne(sc, guestToDoc(g)); err != nil {
				return fmt.Errorf("seed guest %q -> %w", g.Name, err)
			}
			guestIDs[i] = id
		}

		serviceIDs := make([]uint, len(ds.Services))
		for i, svc := range ds.Services {
			var err error
			if svc.ProviderID, err = domain.ResolveRef(providerIDs, svc.ProviderID); err != nil {
				return fmt.Errorf("seed service %q -> %w", svc.Name, err)
			}
			if svc.GuestIDs, err = domain.ResolveRefs(guestIDs, svc.GuestIDs); err != nil {
				return fmt.Errorf("seed service %q -> %w", svc.Name, err)
			}
			if err = insertService(sc, s.base, &svc); err != nil {
				return fmt.Errorf("seed service %q -> %w", svc.Name, err)
			}
			serviceIDs[i] = svc.ID
		}

		for _, exp := range ds.Experiences {
			var err error
			if exp.ServiceIDs, err = domain.ResolveRefs(serviceIDs, exp.ServiceIDs); err != nil {
				return fmt.Errorf("seed experience %q -> %w", exp.Name, err)
			}
			if exp.GuestIDs, err = domain.ResolveRefs(guestIDs, exp.GuestIDs); err != nil {
				return fmt.Errorf("seed experience %q -> %w", exp.Name, err)
			}
			if err = insertExperience(sc, s.base, &exp); err != nil {
				return fmt.Errorf("seed experience %q -> %w", exp.Name, err)
			}
		}

		for _, disc := range ds.Discounts {
			var err error
			if disc.ServiceID, err = domain.ResolveRef(serviceIDs, disc.ServiceID); err != nil {
				return fmt.Errorf("seed discount %q -> %w", disc.Name, err)
			}
			if err = insertDiscount(sc, s.base, &disc); err != nil {
				return fmt.Errorf("seed discount %q -> %w", disc.Name, err)
			}
		}

		for i, b := range ds.Billings {
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
			if err = insertBilling(sc, s.base, &b); err != nil {
				return fmt.Errorf("seed billing %d -> %w", i+1, err)
			}
		}

		return nil
	})
}
