package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) CreateWithProfile(ctx context.Context, user domain.User, profile domain.Profile) (domain.User, error) {
	args := m.Called(ctx, user, profile)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

type mockServiceLookup struct {
	mock.Mock
}

func (m *mockServiceLookup) FindByID(ctx context.Context, id uint) (domain.Service, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Service), args.Error(1)
}

type mockDiscountLookup struct {
	mock.Mock
}

func (m *mockDiscountLookup) FindByServiceID(ctx context.Context, serviceID uint) (domain.Discount, error) {
	args := m.Called(ctx, serviceID)
	return args.Get(0).(domain.Discount), args.Error(1)
}

type mockBillingRepo struct {
	mock.Mock
}

func (m *mockBillingRepo) Create(ctx context.Context, billing domain.Billing) (domain.Billing, error) {
	args := m.Called(ctx, billing)
	return args.Get(0).(domain.Billing), args.Error(1)
}

func (m *mockBillingRepo) FindByID(ctx context.Context, id uint) (domain.Billing, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Billing), args.Error(1)
}

func (m *mockBillingRepo) FindAll(ctx context.Context) ([]domain.Billing, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Billing), args.Error(1)
}

func (m *mockBillingRepo) Update(ctx context.Context, billing domain.Billing) (domain.Billing, error) {
	args := m.Called(ctx, billing)
	return args.Get(0).(domain.Billing), args.Error(1)
}

func (m *mockBillingRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockAuditStore struct {
	mock.Mock
}

func (m *mockAuditStore) Append(ctx context.Context, rec domain.AuditRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockAuditStore) Search(ctx context.Context, q domain.AuditQuery) ([]domain.AuditRecord, int64, error) {
	args := m.Called(ctx, q)
	records, _ := args.Get(0).([]domain.AuditRecord)
	return records, args.Get(1).(int64), args.Error(2)
}

func (m *mockAuditStore) OperationTypes(ctx context.Context) ([]domain.OperationCount, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).([]domain.OperationCount)
	return counts, args.Error(1)
}

type mockSeeder struct {
	mock.Mock
}

func (m *mockSeeder) HasUsers(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *mockSeeder) Seed(ctx context.Context, ds domain.Dataset) error {
	return m.Called(ctx, ds).Error(0)
}

type mockDiscountRepo struct {
	mock.Mock
}

func (m *mockDiscountRepo) Create(ctx context.Context, discount domain.Discount) (domain.Discount, error) {
	args := m.Called(ctx, discount)
	return args.Get(0).(domain.Discount), args.Error(1)
}

func (m *mockDiscountRepo) FindByID(ctx context.Context, id uint) (domain.Discount, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Discount), args.Error(1)
}

func (m *mockDiscountRepo) FindByServiceID(ctx context.Context, serviceID uint) (domain.Discount, error) {
	args := m.Called(ctx, serviceID)
	return args.Get(0).(domain.Discount), args.Error(1)
}

func (m *mockDiscountRepo) FindAll(ctx context.Context) ([]domain.Discount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Discount), args.Error(1)
}

func (m *mockDiscountRepo) Update(ctx context.Context, discount domain.Discount) (domain.Discount, error) {
	args := m.Called(ctx, discount)
	return args.Get(0).(domain.Discount), args.Error(1)
}

func (m *mockDiscountRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockExperienceRepo struct {
	mock.Mock
}

func (m *mockExperienceRepo) Create(ctx context.Context, exp domain.SharedExperience) (domain.SharedExperience, error) {
	args := m.Called(ctx, exp)
	return args.Get(0).(domain.SharedExperience), args.Error(1)
}

func (m *mockExperienceRepo) FindByID(ctx context.Context, id uint) (domain.SharedExperience, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.SharedExperience), args.Error(1)
}

func (m *mockExperienceRepo) FindAll(ctx context.Context) ([]domain.SharedExperience, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SharedExperience), args.Error(1)
}

func (m *mockExperienceRepo) Update(ctx context.Context, exp domain.SharedExperience) (domain.SharedExperience, error) {
	args := m.Called(ctx, exp)
	return args.Get(0).(domain.SharedExperience), args.Error(1)
}

func (m *mockExperienceRepo) AddGuest(ctx context.Context, expID, guestID uint) error {
	return m.Called(ctx, expID, guestID).Error(0)
}

func (m *mockExperienceRepo) AddService(ctx context.Context, expID, serviceID uint) error {
	return m.Called(ctx, expID, serviceID).Error(0)
}

func (m *mockExperienceRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type stubSnapshot struct {
	snap domain.Snapshot
	err  error
}

func (s stubSnapshot) Snapshot(context.Context) (domain.Snapshot, error) {
	return s.snap, s.err
}
