package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
	"github.com/vietanh2810/shared-experiences-api/internal/repository/dao"
)

type SeedDAO interface {
	Seed(ctx context.Context, set dao.SeedSet) error
}

type SeedRepository struct {
	dao   SeedDAO
	users UserDAO
}

func NewSeedRepository(dao SeedDAO, users UserDAO) *SeedRepository {
	return &SeedRepository{
		dao:   dao,
		users: users,
	}
}

func (r *SeedRepository) HasUsers(ctx context.Context) (bool, error) {
	n, err := r.users.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("r.users.Count -> %w", err)
	}

	return n > 0, nil
}

func (r *SeedRepository) Seed(ctx context.Context, ds domain.Dataset) error {
	set := dao.SeedSet{
		Users:       make([]dao.SeedUser, 0, len(ds.Users)),
		Providers:   make([]dao.Provider, 0, len(ds.Providers)),
		Services:    make([]dao.Service, 0, len(ds.Services)),
		Guests:      make([]dao.Guest, 0, len(ds.Guests)),
		Experiences: make([]dao.SharedExperience, 0, len(ds.Experiences)),
		Discounts:   make([]dao.Discount, 0, len(ds.Discounts)),
		Billings:    make([]dao.Billing, 0, len(ds.Billings)),
	}

	for i, u := range ds.Users {
		su := dao.SeedUser{User: userToDAO(u)}
		if i < len(ds.Profiles) {
			if p := ds.Profiles[i].Provider; p != nil {
				mapped := providerToDAO(*p)
				su.Provider = &mapped
			}
			if g := ds.Profiles[i].Guest; g != nil {
				mapped := guestToDAO(*g)
				su.Guest = &mapped
			}
		}
		set.Users = append(set.Users, su)
	}
	for _, p := range ds.Providers {
		set.Providers = append(set.Providers, providerToDAO(p))
	}
	for _, s := range ds.Services {
		set.Services = append(set.Services, serviceToDAO(s))
	}
	for _, g := range ds.Guests {
		set.Guests = append(set.Guests, guestToDAO(g))
	}
	for _, e := range ds.Experiences {
		set.Experiences = append(set.Experiences, experienceToDAO(e))
	}
	for _, d := range ds.Discounts {
		set.Discounts = append(set.Discounts, discountToDAO(d))
	}
	for _, b := range ds.Billings {
		set.Billings = append(set.Billings, billingToDAO(b))
	}

	if err := r.dao.Seed(ctx, set); err != nil {
		return fmt.Errorf("r.dao.Seed -> %w", err)
	}

	return nil
}
