package v1

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
	"github.com/vietanh2810/shared-experiences-api/internal/service"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, in service.RegisterInput) (domain.User, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuthService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

type mockProviderService struct {
	mock.Mock
}

func (m *mockProviderService) GetProviders(ctx context.Context) ([]domain.Provider, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Provider), args.Error(1)
}

func (m *mockProviderService) GetProvider(ctx context.Context, id uint) (domain.Provider, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Provider), args.Error(1)
}

func (m *mockProviderService) GetProviderServices(ctx context.Context, id uint) ([]domain.Service, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.Service), args.Error(1)
}

func (m *mockProviderService) CreateProvider(ctx context.Context, provider domain.Provider) (domain.Provider, error) {
	args := m.Called(ctx, provider)
	return args.Get(0).(domain.Provider), args.Error(1)
}

func (m *mockProviderService) UpdateProvider(ctx context.Context, provider domain.Provider) (domain.Provider, error) {
	args := m.Called(ctx, provider)
	return args.Get(0).(domain.Provider), args.Error(1)
}

func (m *mockProviderService) DeleteProvider(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockBillingService struct {
	mock.Mock
}

func (m *mockBillingService) GetBillings(ctx context.Context) ([]domain.Billing, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Billing), args.Error(1)
}

func (m *mockBillingService) GetBilling(ctx context.Context, id uint) (domain.Billing, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Billing), args.Error(1)
}

func (m *mockBillingService) CreateBilling(ctx context.Context, billing domain.Billing, partySize int) (domain.Billing, error) {
	args := m.Called(ctx, billing, partySize)
	return args.Get(0).(domain.Billing), args.Error(1)
}

func (m *mockBillingService) UpdateBilling(ctx context.Context, billing domain.Billing) (domain.Billing, error) {
	args := m.Called(ctx, billing)
	return args.Get(0).(domain.Billing), args.Error(1)
}

func (m *mockBillingService) DeleteBilling(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockReportService struct {
	mock.Mock
}

func (m *mockReportService) Table1(ctx context.Context) ([]domain.ProviderRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ProviderRow), args.Error(1)
}

func (m *mockReportService) Table2(ctx context.Context) ([]domain.ServiceRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ServiceRow), args.Error(1)
}

func (m *mockReportService) Table3(ctx context.Context) ([]domain.ExperienceRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ExperienceRow), args.Error(1)
}

func (m *mockReportService) Table4(ctx context.Context, experienceID uint) ([]domain.GuestNameRow, error) {
	args := m.Called(ctx, experienceID)
	return args.Get(0).([]domain.GuestNameRow), args.Error(1)
}

func (m *mockReportService) Table5(ctx context.Context, experienceID uint) ([]domain.ServiceNameRow, error) {
	args := m.Called(ctx, experienceID)
	return args.Get(0).([]domain.ServiceNameRow), args.Error(1)
}

func (m *mockReportService) Table6(ctx context.Context, serviceID uint) ([]domain.GuestServiceRow, error) {
	args := m.Called(ctx, serviceID)
	return args.Get(0).([]domain.GuestServiceRow), args.Error(1)
}

func (m *mockReportService) Table7(ctx context.Context) (domain.PriceStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.PriceStats), args.Error(1)
}

func (m *mockReportService) Table8(ctx context.Context) ([]domain.ServiceSalesRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ServiceSalesRow), args.Error(1)
}

func (m *mockReportService) Table9(ctx context.Context) ([]domain.GuestBillingRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.GuestBillingRow), args.Error(1)
}

type mockLogService struct {
	mock.Mock
}

func (m *mockLogService) Search(ctx context.Context, in service.LogSearch) (domain.AuditPage, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.AuditPage), args.Error(1)
}

func (m *mockLogService) OperationTypes(ctx context.Context) ([]domain.OperationCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.OperationCount), args.Error(1)
}
