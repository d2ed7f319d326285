package mongostore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type UserStore struct {
	base
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{base{db: db}}
}

// CreateWithProfile inserts the account and its Provider or Guest record in
// one transaction.
func (s *UserStore) CreateWithProfile(ctx context.Context, user domain.User, profile domain.Profile) (domain.User, error) {
	err := s.withTx(ctx, func(sc mongo.SessionContext) error {
		return insertUser(sc, s.base, &user, profile)
	})
	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func insertUser(ctx context.Context, b base, user *domain.User, profile domain.Profile) error {
	id, err := b.nextID(ctx, colUsers)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user.ID = id
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt, user.UpdatedAt = now, now

	if _, err = b.col(colUsers).InsertOne(ctx, userToDoc(*user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateUser
		}
		return fmt.Errorf("insert user -> %w", err)
	}

	if p := profile.Provider; p != nil {
		p.UserID = &user.ID
		if p.ID, err = b.nextID(ctx, colProviders); err != nil {
			return err
		}
		if _, err = b.col(colProviders).InsertOne(ctx, providerToDoc(*p)); err != nil {
			return fmt.Errorf("insert provider profile -> %w", err)
		}
	}
	if g := profile.Guest; g != nil {
		g.UserID = &user.ID
		if g.ID, err = b.nextID(ctx, colGuests); err != nil {
			return err
		}
		if _, err = b.col(colGuests).InsertOne(ctx, guestToDoc(*g)); err != nil {
			return fmt.Errorf("insert guest profile -> %w", err)
		}
	}

	return nil
}

func (s *UserStore) FindByID(ctx context.Context, id uint) (domain.User, error) {
	var doc userDoc
	if err := s.findOne(ctx, colUsers, id, &doc, ErrUserNotFound); err != nil {
		return domain.User{}, err
	}

	return doc.toDomain(), nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	var doc userDoc
	err := s.col(colUsers).FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}

	return doc.toDomain(), nil
}

func (s *UserStore) Count(ctx context.Context) (int64, error) {
	return s.col(colUsers).CountDocuments(ctx, bson.M{})
}
