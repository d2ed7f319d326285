package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

var (
	ErrUserEmailExists    = domain.ErrDuplicateUser
	ErrInvalidCredentials = domain.ErrInvalidCredentials
)

type AuthUserRepository interface {
	CreateWithProfile(ctx context.Context, user domain.User, profile domain.Profile) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type AuthConfig struct {
	BcryptCost     int
	PasswordPolicy domain.PasswordPolicy
	// AllowedRoles are the roles a caller may request at registration.
	AllowedRoles []domain.Role
}

type AuthService struct {
	repo AuthUserRepository
	conf AuthConfig

	// dummyHash keeps login timing similar for unknown emails.
	dummyHash []byte
}

func NewAuthService(repo AuthUserRepository, conf AuthConfig) *AuthService {
	if conf.BcryptCost == 0 {
		conf.BcryptCost = bcrypt.DefaultCost
	}
	if len(conf.AllowedRoles) == 0 {
		conf.AllowedRoles = []domain.Role{domain.RoleGuest, domain.RoleProvider}
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), conf.BcryptCost)

	return &AuthService{
		repo:      repo,
		conf:      conf,
		dummyHash: dummy,
	}
}

type RegisterInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	Role        string
}

// Register creates an account and, for Provider and Guest roles, the linked
// profile record.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	if err := s.conf.PasswordPolicy.Check(in.Password); err != nil {
		return domain.User{}, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.checkEmailExists(ctx, email); err != nil {
		return domain.User{}, err
	}

	hashed, err := hashPassword(in.Password, s.conf.BcryptCost)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		Email:       email,
		Password:    hashed,
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Role:        s.resolveRole(in.Role),
	}

	created, err := s.repo.CreateWithProfile(ctx, user, profileFor(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.CreateWithProfile -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return domain.User{}, ErrInvalidCredentials
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser returns the account behind a verified token.
func (s *AuthService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

// resolveRole falls back to Guest for empty, unknown or privileged requests.
func (s *AuthService) resolveRole(requested string) domain.Role {
	role, ok := domain.ParseRole(requested)
	if !ok {
		return domain.RoleGuest
	}
	for _, allowed := range s.conf.AllowedRoles {
		if role == allowed {
			return role
		}
	}

	return domain.RoleGuest
}

func (s *AuthService) checkEmailExists(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return ErrUserEmailExists
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	return nil
}

func profileFor(user domain.User) domain.Profile {
	number := user.PhoneNumber
	if number == "" {
		number = "N/A"
	}

	switch user.Role {
	case domain.RoleProvider:
		return domain.Profile{Provider: &domain.Provider{
			Name:                    user.FullName(),
			Address:                 "Please update your address",
			Number:                  number,
			TouristicOperatorPermit: "Pending",
		}}
	case domain.RoleGuest:
		return domain.Profile{Guest: &domain.Guest{
			Name:   user.FullName(),
			Number: number,
		}}
	}

	return domain.Profile{}
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	return string(hash), nil
}
