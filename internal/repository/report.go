package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
	"github.com/vietanh2810/shared-experiences-api/internal/repository/dao"
)

type SnapshotDAO interface {
	Load(ctx context.Context) (dao.Snapshot, error)
}

type SnapshotRepository struct {
	dao SnapshotDAO
}

func NewSnapshotRepository(dao SnapshotDAO) *SnapshotRepository {
	return &SnapshotRepository{
		dao: dao,
	}
}

func (r *SnapshotRepository) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	snap, err := r.dao.Load(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("r.dao.Load -> %w", err)
	}

	providers := make([]domain.Provider, 0, len(snap.Providers))
	for _, p := range snap.Providers {
		providers = append(providers, providerToDomain(p))
	}

	return domain.Snapshot{
		Providers:   providers,
		Services:    servicesToDomain(snap.Services),
		Guests:      guestsToDomain(snap.Guests),
		Experiences: experiencesToDomain(snap.Experiences),
		Billings:    billingsToDomain(snap.Billings),
	}, nil
}
