package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type SharedExperienceStore struct {
	base
}

func NewSharedExperienceStore(db *mongo.Database) *SharedExperienceStore {
	return &SharedExperienceStore{base{db: db}}
}

func experienceRefs(exp domain.SharedExperience) []ref {
	return []ref{
		{field: "serviceIds", col: colServices, ids: exp.ServiceIDs},
		{field: "guestIds", col: colGuests, ids: exp.GuestIDs},
	}
}

func (s *SharedExperienceStore) Create(ctx context.Context, exp domain.SharedExperience) (domain.SharedExperience, error) {
	err := s.withTx(ctx, func(sc mongo.SessionContext) error {
		return insertExperience(sc, s.base, &exp)
	})
	if err != nil {
		return domain.SharedExperience{}, err
	}

	return exp, nil
}

func insertExperience(ctx context.Context, b base, exp *domain.SharedExperience) error {
	if err := b.checkRefs(ctx, experienceRefs(*exp)...); err != nil {
		return err
	}

	id, err := b.nextID(ctx, colExperiences)
	if err != nil {
		return err
	}
	exp.ID = id

	doc := experienceToDoc(*exp)
	if _, err = b.col(colExperiences).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("InsertOne -> %w", err)
	}
	*exp = doc.toDomain()

	return nil
}

func (s *SharedExperienceStore) FindByID(ctx context.Context, id uint) (domain.SharedExperience, error) {
	var doc experienceDoc
	if err := s.findOne(ctx, colExperiences, id, &doc, ErrSharedExperienceNotFound); err != nil {
		return domain.SharedExperience{}, err
	}

	return doc.toDomain(), nil
}

func (s *SharedExperienceStore) FindAll(ctx context.Context) ([]domain.SharedExperience, error) {
	var docs []experienceDoc
	if err := s.findAll(ctx, colExperiences, bson.M{}, &docs); err != nil {
		return nil, err
	}

	return experiencesToDomain(docs), nil
}

func experiencesToDomain(docs []experienceDoc) []domain.SharedExperience {
	exps := make([]domain.SharedExperience, 0, len(docs))
	for _, d := range docs {
		exps = append(exps, d.toDomain())
	}

	return exps
}

// Update replaces every field and both link lists.
func (s *SharedExperienceStore) Update(ctx context.Context, exp domain.SharedExperience) (domain.SharedExperience, error) {
	err := s.withTx(ctx, func(sc mongo.SessionContext) error {
		if err := s.exists(sc, colExperiences, exp.ID, ErrSharedExperienceNotFound); err != nil {
			return err
		}
		if err := s.checkRefs(sc, experienceRefs(exp)...); err != nil {
			return err
		}

		doc := experienceToDoc(exp)
		if _, err := s.col(colExperiences).ReplaceOne(sc, bson.M{"_id": exp.ID}, doc); err != nil {
			return fmt.Errorf("ReplaceOne -> %w", err)
		}
		exp = doc.toDomain()

		return nil
	})
	if err != nil {
		return domain.SharedExperience{}, err
	}

	return exp, nil
}

func (s *SharedExperienceStore) AddGuest(ctx context.Context, expID, guestID uint) error {
	return s.addToSet(ctx, expID, one("guestId", colGuests, guestID), "guestIds")
}

func (s *SharedExperienceStore) AddService(ctx context.Context, expID, serviceID uint) error {
	return s.addToSet(ctx, expID, one("serviceId", colServices, serviceID), "serviceIds")
}

// addToSet leaves the document untouched when the id is already linked.
func (s *SharedExperienceStore) addToSet(ctx context.Context, expID uint, target ref, field string) error {
	if err := s.exists(ctx, colExperiences, expID, ErrSharedExperienceNotFound); err != nil {
		return err
	}
	if err := s.checkRefs(ctx, target); err != nil {
		return err
	}

	_, err := s.col(colExperiences).UpdateOne(ctx, bson.M{"_id": expID}, bson.M{"$addToSet": bson.M{field: target.ids[0]}})

	return err
}

func (s *SharedExperienceStore) Delete(ctx context.Context, id uint) error {
	res, err := s.col(colExperiences).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrSharedExperienceNotFound
	}

	return nil
}
