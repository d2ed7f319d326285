package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

func TestDiscountService_CreateDiscount_Validation(t *testing.T) {
	tests := []struct {
		name     string
		discount domain.Discount
	}{
		{name: "percentage above 100", discount: domain.Discount{ServiceID: 1, GuestCount: 2, Percentage: 101}},
		{name: "negative percentage", discount: domain.Discount{ServiceID: 1, GuestCount: 2, Percentage: -5}},
		{name: "zero guest count", discount: domain.Discount{ServiceID: 1, Percentage: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockDiscountRepo)
			svc := NewDiscountService(repo)

			_, err := svc.CreateDiscount(context.Background(), tt.discount)

			assert.ErrorIs(t, err, domain.ErrValidation)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestDiscountService_CreateDiscount(t *testing.T) {
	repo := new(mockDiscountRepo)
	svc := NewDiscountService(repo)
	in := domain.Discount{Name: "group", ServiceID: 1, GuestCount: 10, Percentage: 10}
	repo.On("Create", mock.Anything, in).Return(domain.Discount{ID: 3, ServiceID: 1, GuestCount: 10, Percentage: 10}, nil)

	created, err := svc.CreateDiscount(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, uint(3), created.ID)
}

func TestSharedExperienceService_CreateDeduplicatesLinks(t *testing.T) {
	repo := new(mockExperienceRepo)
	svc := NewSharedExperienceService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(e domain.SharedExperience) bool {
		return assert.ObjectsAreEqual([]uint{3, 1}, e.ServiceIDs) && assert.ObjectsAreEqual([]uint{2}, e.GuestIDs)
	})).Return(domain.SharedExperience{ID: 1}, nil)

	_, err := svc.CreateSharedExperience(context.Background(), domain.SharedExperience{
		Name:       "Trip",
		ServiceIDs: []uint{3, 1, 3},
		GuestIDs:   []uint{2, 2},
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSharedExperienceService_AddGuest_NotFound(t *testing.T) {
	repo := new(mockExperienceRepo)
	svc := NewSharedExperienceService(repo)
	repo.On("AddGuest", mock.Anything, uint(9), uint(1)).Return(domain.ErrNotFound)

	err := svc.AddGuest(context.Background(), 9, 1)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
