package dao

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"size:255;unique;not null"`
	Password string `gorm:"not null"`

	FirstName   string `gorm:"size:100"`
	LastName    string `gorm:"size:100"`
	PhoneNumber string `gorm:"size:20"`
	Role        string `gorm:"size:20;not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

// InsertWithProfile creates the account and its Provider or Guest record in
// one transaction.
func (d *UserDAO) InsertWithProfile(ctx context.Context, user User, provider *Provider, guest *Guest) (User, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return insertUserWithProfile(tx, &user, provider, guest)
	})
	if err != nil {
		return User{}, err
	}

	return user, nil
}

func insertUserWithProfile(tx *gorm.DB, user *User, provider *Provider, guest *Guest) error {
	user.Email = strings.ToLower(user.Email)
	if err := tx.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrUserEmailExists
		}
		return fmt.Errorf("create user -> %w", err)
	}

	if provider != nil {
		provider.UserID = &user.ID
		if err := tx.Create(provider).Error; err != nil {
			return fmt.Errorf("create provider profile -> %w", err)
		}
	}
	if guest != nil {
		guest.UserID = &user.ID
		if err := tx.Create(guest).Error; err != nil {
			return fmt.Errorf("create guest profile -> %w", err)
		}
	}

	return nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		return User{}, notFound(result.Error, ErrUserNotFound)
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := d.db.WithContext(ctx).Model(&User{}).Count(&n).Error; err != nil {
		return 0, err
	}

	return n, nil
}
