package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type Seeder interface {
	HasUsers(ctx context.Context) (bool, error)
	Seed(ctx context.Context, ds domain.Dataset) error
}

type SeedService struct {
	seeder     Seeder
	bcryptCost int
	now        func() time.Time
}

func NewSeedService(seeder Seeder, bcryptCost int) *SeedService {
	return &SeedService{
		seeder:     seeder,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// Seed loads the demo dataset into an empty store. It reports false when
// accounts already exist and nothing was written.
func (s *SeedService) Seed(ctx context.Context) (bool, error) {
	has, err := s.seeder.HasUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("s.seeder.HasUsers -> %w", err)
	}
	if has {
		zap.L().Info("seed skipped, users already exist")
		return false, nil
	}

	ds, err := s.dataset()
	if err != nil {
		return false, err
	}
	if err = s.seeder.Seed(ctx, ds); err != nil {
		return false, fmt.Errorf("s.seeder.Seed -> %w", err)
	}

	zap.L().Info("seed completed",
		zap.Int("users", len(ds.Users)),
		zap.Int("providers", len(ds.Providers)),
		zap.Int("services", len(ds.Services)),
		zap.Int("guests", len(ds.Guests)),
		zap.Int("billings", len(ds.Billings)),
	)

	return true, nil
}

type seedAccount struct {
	email, password, first, last string
	role                         domain.Role
}

var seedAccounts = []seedAccount{
	{"admin@example.com", "Admin123!", "Admin", "User", domain.RoleAdmin},
	{"manager@example.com", "Manager123!", "Manager", "User", domain.RoleManager},
	{"provider@example.com", "Provider123!", "Provider", "User", domain.RoleProvider},
	{"guest@example.com", "Guest123!", "Guest", "User", domain.RoleGuest},
}

// Positions used as references inside the dataset.
const (
	refNoahsHotel = 1
	refSkyline    = 3
	refCityTours  = 5

	refSingleRoom  = 1
	refDoubleRoom  = 2
	refFlight      = 3
	refWalkingTour = 4

	refJoan    = 1
	refSuzanne = 2
	refPatrick = 3
	refAnne    = 4
)

func (s *SeedService) dataset() (domain.Dataset, error) {
	var ds domain.Dataset

	for _, a := range seedAccounts {
		hashed, err := hashPassword(a.password, s.bcryptCost)
		if err != nil {
			return domain.Dataset{}, err
		}
		user := domain.User{
			Email:     a.email,
			Password:  hashed,
			FirstName: a.first,
			LastName:  a.last,
			Role:      a.role,
		}

		var profile domain.Profile
		switch a.role {
		case domain.RoleProvider:
			profile.Provider = &domain.Provider{
				Name:                    "Test Provider",
				Address:                 "Test Address",
				Number:                  "123456789",
				TouristicOperatorPermit: "Test-123456",
			}
		case domain.RoleGuest:
			profile.Guest = &domain.Guest{
				Name:   user.FullName(),
				Number: "123456789",
				Age:    30,
			}
		}

		ds.Users = append(ds.Users, user)
		ds.Profiles = append(ds.Profiles, profile)
	}

	ds.Providers = []domain.Provider{
		{Name: "Noah's Hotel", Address: "Finlandsgade 17, 8200 Aarhus N", Number: "+45 71555080", TouristicOperatorPermit: "12345678"},
		{Name: "Grand Ocean Resort", Address: "Beach Road 42, 8000 Aarhus C", Number: "+45 71717171", TouristicOperatorPermit: "87654321"},
		{Name: "Skyline Adventures", Address: "Mountain View 99, 9000 Aalborg", Number: "+45 70707070", TouristicOperatorPermit: "12348765"},
		{Name: "Sunset Bistro", Address: "Harbor Street 12, 5000 Odense", Number: "+45 72727272", TouristicOperatorPermit: "87651234"},
		{Name: "City Tour Guides", Address: "Old Town Square 3, 1000 Copenhagen", Number: "+45 73737373", TouristicOperatorPermit: "12345679"},
	}

	ds.Guests = []domain.Guest{
		{Name: "Joan Eriksen", Number: "+45 11113333", Age: 27},
		{Name: "Suzanne Mortensen", Number: "+45 22224444", Age: 29},
		{Name: "Patrick Larsen", Number: "+45 33335555", Age: 32},
		{Name: "Anne Christensen", Number: "+45 44446666", Age: 26},
	}

	ds.Services = []domain.Service{
		{
			Name:        "Night at Noah's Hotel Single Room",
			Description: "A cozy single room at Noah's Hotel.",
			Price:       730,
			Date:        time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			ProviderID:  refNoahsHotel,
			GuestIDs:    []uint{refJoan, refSuzanne, refPatrick, refAnne},
		},
		{
			Name:        "Night at Noah's Hotel Double Room",
			Description: "A spacious double room at Noah's Hotel.",
			Price:       910,
			Date:        time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			ProviderID:  refNoahsHotel,
		},
		{
			Name:        "Flight AAR – VIE",
			Description: "One-way flight from Aarhus (AAR) to Vienna (VIE).",
			Price:       1000,
			Date:        time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			ProviderID:  refSkyline,
		},
		{
			Name:        "Vienna Historic Center Walking Tour",
			Description: "Guided walking tour of Vienna's historic center.",
			Price:       100,
			Date:        time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC),
			ProviderID:  refCityTours,
			GuestIDs:    []uint{refJoan, refSuzanne},
		},
	}

	now := s.now().UTC().Truncate(time.Second)
	ds.Experiences = []domain.SharedExperience{
		{
			Name:        "Trip to Austria",
			Description: "A group trip exploring Vienna, including flights, hotel stays, and guided tours.",
			Date:        now.AddDate(0, 0, 30),
			ServiceIDs:  []uint{refSingleRoom, refFlight, refWalkingTour},
			GuestIDs:    []uint{refJoan, refSuzanne, refPatrick, refAnne},
		},
		{
			Name:        "Dinner Downtown",
			Description: "A fine dining experience at a highly-rated restaurant in the city center.",
			Date:        now.AddDate(0, 0, 15),
		},
		{
			Name:        "Pottery Weekend",
			Description: "Two days of wheel throwing and glazing with a local ceramicist.",
			Date:        now.AddDate(0, 0, 45),
		},
	}

	ds.Discounts = []domain.Discount{
		{Name: "Single room group rate", ServiceID: refSingleRoom, GuestCount: 10, Percentage: 10},
		{Name: "Double room group rate", ServiceID: refDoubleRoom, GuestCount: 10, Percentage: 10},
	}

	billed := func(guest uint, svcRef uint) domain.Billing {
		svc := ds.Services[svcRef-1]
		ref := svcRef
		return domain.Billing{
			Amount:     svc.Price,
			Date:       now,
			GuestID:    guest,
			ProviderID: svc.ProviderID,
			ServiceID:  &ref,
		}
	}
	ds.Billings = []domain.Billing{
		billed(refJoan, refWalkingTour),
		billed(refSuzanne, refWalkingTour),
	}
	for _, g := range []uint{refJoan, refSuzanne, refPatrick, refAnne} {
		ds.Billings = append(ds.Billings, billed(g, refSingleRoom), billed(g, refFlight))
	}

	return ds, nil
}
