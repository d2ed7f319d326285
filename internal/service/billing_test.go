package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

func uintPtr(v uint) *uint { return &v }

func TestBillingService_CreateBilling_DerivesAmount(t *testing.T) {
	tests := []struct {
		name       string
		partySize  int
		discount   domain.Discount
		discErr    error
		wantAmount int
	}{
		{name: "no discount", partySize: 12, discErr: domain.ErrNotFound, wantAmount: 730},
		{name: "below threshold", partySize: 3, discount: domain.Discount{GuestCount: 10, Percentage: 10}, wantAmount: 730},
		{name: "threshold reached", partySize: 10, discount: domain.Discount{GuestCount: 10, Percentage: 10}, wantAmount: 657},
		{name: "party size defaults to one", partySize: 0, discount: domain.Discount{GuestCount: 1, Percentage: 50}, wantAmount: 365},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockBillingRepo)
			services := new(mockServiceLookup)
			discounts := new(mockDiscountLookup)
			svc := NewBillingService(repo, services, discounts)

			services.On("FindByID", mock.Anything, uint(2)).
				Return(domain.Service{ID: 2, Price: 730, ProviderID: 9}, nil)
			discounts.On("FindByServiceID", mock.Anything, uint(2)).Return(tt.discount, tt.discErr)
			repo.On("Create", mock.Anything, mock.MatchedBy(func(b domain.Billing) bool {
				return b.Amount == tt.wantAmount && b.ProviderID == 9 && b.GuestID == 1
			})).Return(domain.Billing{ID: 5, Amount: tt.wantAmount, ProviderID: 9}, nil)

			created, err := svc.CreateBilling(context.Background(), domain.Billing{GuestID: 1, ServiceID: uintPtr(2)}, tt.partySize)

			require.NoError(t, err)
			assert.Equal(t, tt.wantAmount, created.Amount)
			repo.AssertExpectations(t)
		})
	}
}

func TestBillingService_CreateBilling_UnknownService(t *testing.T) {
	repo := new(mockBillingRepo)
	services := new(mockServiceLookup)
	svc := NewBillingService(repo, services, new(mockDiscountLookup))

	services.On("FindByID", mock.Anything, uint(99)).Return(domain.Service{}, domain.ErrNotFound)

	_, err := svc.CreateBilling(context.Background(), domain.Billing{GuestID: 1, ServiceID: uintPtr(99)}, 1)

	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBillingService_CreateBilling_ProviderMismatch(t *testing.T) {
	services := new(mockServiceLookup)
	svc := NewBillingService(new(mockBillingRepo), services, new(mockDiscountLookup))

	services.On("FindByID", mock.Anything, uint(2)).Return(domain.Service{ID: 2, ProviderID: 9}, nil)

	_, err := svc.CreateBilling(context.Background(), domain.Billing{GuestID: 1, ProviderID: 4, ServiceID: uintPtr(2)}, 1)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBillingService_CreateBilling_ExplicitAmount(t *testing.T) {
	repo := new(mockBillingRepo)
	svc := NewBillingService(repo, new(mockServiceLookup), new(mockDiscountLookup))

	in := domain.Billing{Amount: 250, GuestID: 1, ProviderID: 2}
	repo.On("Create", mock.Anything, in).Return(domain.Billing{ID: 1, Amount: 250, GuestID: 1, ProviderID: 2}, nil)

	created, err := svc.CreateBilling(context.Background(), in, 1)

	require.NoError(t, err)
	assert.Equal(t, 250, created.Amount)

	_, err = svc.CreateBilling(context.Background(), domain.Billing{Amount: -1, GuestID: 1, ProviderID: 2}, 1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBillingService_DeleteBilling_NotFound(t *testing.T) {
	repo := new(mockBillingRepo)
	svc := NewBillingService(repo, new(mockServiceLookup), new(mockDiscountLookup))
	repo.On("Delete", mock.Anything, uint(3)).Return(domain.ErrNotFound)

	err := svc.DeleteBilling(context.Background(), 3)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
