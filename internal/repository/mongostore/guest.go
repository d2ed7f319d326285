package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type GuestStore struct {
	base
}

func NewGuestStore(db *mongo.Database) *GuestStore {
	return &GuestStore{base{db: db}}
}

func (s *GuestStore) Create(ctx context.Context, guest domain.Guest) (domain.Guest, error) {
	id, err := s.nextID(ctx, colGuests)
	if err != nil {
		return domain.Guest{}, err
	}
	guest.ID = id

	if _, err = s.col(colGuests).InsertOne(ctx, guestToDoc(guest)); err != nil {
		return domain.Guest{}, fmt.Errorf("InsertOne -> %w", err)
	}

	return guest, nil
}

func (s *GuestStore) FindByID(ctx context.Context, id uint) (domain.Guest, error) {
	var doc guestDoc
	if err := s.findOne(ctx, colGuests, id, &doc, ErrGuestNotFound); err != nil {
		return domain.Guest{}, err
	}

	return doc.toDomain(), nil
}

func (s *GuestStore) FindAll(ctx context.Context) ([]domain.Guest, error) {
	var docs []guestDoc
	if err := s.findAll(ctx, colGuests, bson.M{}, &docs); err != nil {
		return nil, err
	}

	return guestsToDomain(docs), nil
}

func guestsToDomain(docs []guestDoc) []domain.Guest {
	guests := make([]domain.Guest, 0, len(docs))
	for _, d := range docs {
		guests = append(guests, d.toDomain())
	}

	return guests
}

func (s *GuestStore) Update(ctx context.Context, guest domain.Guest) (domain.Guest, error) {
	set := bson.M{"$set": bson.M{
		"name":   guest.Name,
		"number": guest.Number,
		"age":    guest.Age,
	}}

	var doc guestDoc
	err := s.col(colGuests).FindOneAndUpdate(ctx, bson.M{"_id": guest.ID}, set,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Guest{}, ErrGuestNotFound
	}
	if err != nil {
		return domain.Guest{}, fmt.Errorf("FindOneAndUpdate -> %w", err)
	}

	return doc.toDomain(), nil
}

// Delete removes the guest, its billings and every membership link.
func (s *GuestStore) Delete(ctx context.Context, id uint) error {
	return s.withTx(ctx, func(sc mongo.SessionContext) error {
		if err := s.exists(sc, colGuests, id, ErrGuestNotFound); err != nil {
			return err
		}

		if _, err := s.col(colBillings).DeleteMany(sc, bson.M{"guestId": id}); err != nil {
			return fmt.Errorf("delete billings -> %w", err)
		}
		pull := bson.M{"$pull": bson.M{"guestIds": id}}
		for _, col := range []string{colExperiences, colServices} {
			if _, err := s.col(col).UpdateMany(sc, bson.M{"guestIds": id}, pull); err != nil {
				return fmt.Errorf("unlink guest from %s -> %w", col, err)
			}
		}
		_, err := s.col(colGuests).DeleteOne(sc, bson.M{"_id": id})

		return err
	})
}
