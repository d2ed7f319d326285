package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

func TestSeedService_SkipsWhenUsersExist(t *testing.T) {
	seeder := new(mockSeeder)
	svc := NewSeedService(seeder, bcrypt.MinCost)
	seeder.On("HasUsers", mock.Anything).Return(true, nil)

	seeded, err := svc.Seed(context.Background())

	require.NoError(t, err)
	assert.False(t, seeded)
	seeder.AssertNotCalled(t, "Seed", mock.Anything, mock.Anything)
}

func TestSeedService_Seed(t *testing.T) {
	seeder := new(mockSeeder)
	svc := NewSeedService(seeder, bcrypt.MinCost)
	svc.now = func() time.Time { return time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC) }

	var got domain.Dataset
	seeder.On("HasUsers", mock.Anything).Return(false, nil)
	seeder.On("Seed", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).(domain.Dataset) }).
		Return(nil)

	seeded, err := svc.Seed(context.Background())

	require.NoError(t, err)
	assert.True(t, seeded)

	require.Len(t, got.Users, 4)
	require.Len(t, got.Profiles, 4)
	assert.NotNil(t, got.Profiles[2].Provider)
	assert.NotNil(t, got.Profiles[3].Guest)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.Users[0].Password), []byte("Admin123!")))

	assert.Len(t, got.Providers, 5)
	assert.Len(t, got.Services, 4)
	assert.Len(t, got.Guests, 4)
	assert.Len(t, got.Billings, 10)

	for _, b := range got.Billings {
		require.NotNil(t, b.ServiceID)
		svcRef := got.Services[*b.ServiceID-1]
		assert.Equal(t, svcRef.Price, b.Amount)
		assert.Equal(t, svcRef.ProviderID, b.ProviderID)
	}
	for _, d := range got.Discounts {
		assert.LessOrEqual(t, int(d.ServiceID), len(got.Services))
	}
}
