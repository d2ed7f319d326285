package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

func newTestAuthService(repo AuthUserRepository) *AuthService {
	return NewAuthService(repo, AuthConfig{
		BcryptCost:     bcrypt.MinCost,
		PasswordPolicy: domain.DefaultPasswordPolicy,
	})
}

func TestAuthService_Register_Provider(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestAuthService(repo)

	repo.On("FindByEmail", mock.Anything, "jane@example.com").Return(domain.User{}, domain.ErrNotFound)
	repo.On("CreateWithProfile", mock.Anything,
		mock.MatchedBy(func(u domain.User) bool {
			return u.Email == "jane@example.com" &&
				u.Role == domain.RoleProvider &&
				bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("Secret123!")) == nil
		}),
		mock.MatchedBy(func(p domain.Profile) bool {
			return p.Guest == nil && p.Provider != nil &&
				p.Provider.Name == "Jane Doe" &&
				p.Provider.Number == "N/A" &&
				p.Provider.Address == "Please update your address" &&
				p.Provider.TouristicOperatorPermit == "Pending"
		}),
	).Return(domain.User{ID: 7, Email: "jane@example.com", Role: domain.RoleProvider}, nil)

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:     "Jane@Example.com",
		Password:  "Secret123!",
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      "provider",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, domain.RoleProvider, user.Role)
	repo.AssertExpectations(t)
}

func TestAuthService_Register_PrivilegedRoleFallsBackToGuest(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestAuthService(repo)

	repo.On("FindByEmail", mock.Anything, "eve@example.com").Return(domain.User{}, domain.ErrNotFound)
	repo.On("CreateWithProfile", mock.Anything,
		mock.MatchedBy(func(u domain.User) bool { return u.Role == domain.RoleGuest }),
		mock.MatchedBy(func(p domain.Profile) bool {
			return p.Guest != nil && p.Guest.Number == "555" && p.Guest.Age == 0
		}),
	).Return(domain.User{ID: 1, Role: domain.RoleGuest}, nil)

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:       "eve@example.com",
		Password:    "Secret123!",
		FirstName:   "Eve",
		LastName:    "Smith",
		PhoneNumber: "555",
		Role:        "Admin",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleGuest, user.Role)
	repo.AssertExpectations(t)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestAuthService(repo)

	repo.On("FindByEmail", mock.Anything, "taken@example.com").Return(domain.User{ID: 3}, nil)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:     "taken@example.com",
		Password:  "Secret123!",
		FirstName: "T",
		LastName:  "K",
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateUser)
	repo.AssertNotCalled(t, "CreateWithProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "weak@example.com",
		Password: "password",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "password")
	repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Secret123!"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := domain.User{ID: 4, Email: "bob@example.com", Password: string(hash), Role: domain.RoleManager}

	tests := []struct {
		name     string
		email    string
		password string
		found    domain.User
		findErr  error
		wantErr  error
	}{
		{name: "success", email: "bob@example.com", password: "Secret123!", found: stored},
		{name: "wrong password", email: "bob@example.com", password: "nope", found: stored, wantErr: domain.ErrInvalidCredentials},
		{name: "unknown email", email: "ghost@example.com", password: "Secret123!", findErr: domain.ErrNotFound, wantErr: domain.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockUserRepo)
			svc := newTestAuthService(repo)
			repo.On("FindByEmail", mock.Anything, tt.email).Return(tt.found, tt.findErr)

			user, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, stored.ID, user.ID)
		})
	}
}

func TestAuthService_Login_StoreFailure(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestAuthService(repo)
	boom := errors.New("connection reset")
	repo.On("FindByEmail", mock.Anything, "bob@example.com").Return(domain.User{}, boom)

	_, err := svc.Login(context.Background(), "bob@example.com", "x")

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_GetUser(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestAuthService(repo)

	repo.On("FindByID", mock.Anything, uint(3)).Return(domain.User{ID: 3, Email: "c@x.com"}, nil)
	repo.On("FindByID", mock.Anything, uint(9)).Return(domain.User{}, domain.ErrNotFound)

	user, err := svc.GetUser(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "c@x.com", user.Email)

	_, err = svc.GetUser(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertExpectations(t)
}
