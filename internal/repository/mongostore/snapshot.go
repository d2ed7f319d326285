package mongostore

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type SnapshotStore struct {
	base
}

func NewSnapshotStore(db *mongo.Database) *SnapshotStore {
	return &SnapshotStore{base{db: db}}
}

// Snapshot reads all report inputs in one transaction so they share a
// point-in-time view.
func (s *SnapshotStore) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	var snap domain.Snapshot

	err := s.withTx(ctx, func(sc mongo.SessionContext) error {
		var (
			providers []providerDoc
			services  []serviceDoc
			guests    []guestDoc
			exps      []experienceDoc
			billings  []billingDoc
		)
		if err := s.findAll(sc, colProviders, bson.M{}, &providers); err != nil {
			return err
		}
		if err := s.findAll(sc, colServices, bson.M{}, &services); err != nil {
			return err
		}
		if err := s.findAll(sc, colGuests, bson.M{}, &guests); err != nil {
			return err
		}
		if err := s.findAll(sc, colExperiences, bson.M{}, &exps); err != nil {
			return err
		}
		if err := s.findAll(sc, colBillings, bson.M{}, &billings); err != nil {
			return err
		}

		snap = domain.Snapshot{
			Providers:   make([]domain.Provider, 0, len(providers)),
			Services:    servicesToDomain(services),
			Guests:      guestsToDomain(guests),
			Experiences: experiencesToDomain(exps),
			Billings:    billingsToDomain(billings),
		}
		for _, p := range providers {
			snap.Providers = append(snap.Providers, p.toDomain())
		}

		return nil
	}, options.Transaction().SetReadConcern(readconcern.Snapshot()))
	if err != nil {
		return domain.Snapshot{}, err
	}

	for i := range snap.Services {
		sortIDs(snap.Services[i].GuestIDs)
	}
	for i := range snap.Experiences {
		sortIDs(snap.Experiences[i].ServiceIDs)
		sortIDs(snap.Experiences[i].GuestIDs)
	}

	return snap, nil
}

func sortIDs(ids []uint) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
