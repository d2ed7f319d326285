package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type DiscountStore struct {
	base
}

func NewDiscountStore(db *mongo.Database) *DiscountStore {
	return &DiscountStore{base{db: db}}
}

func discountErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return domain.NewValidationError("serviceId", "service already has a discount")
	}

	return err
}

func (s *DiscountStore) Create(ctx context.Context, discount domain.Discount) (domain.Discount, error) {
	if err := insertDiscount(ctx, s.base, &discount); err != nil {
		return domain.Discount{}, err
	}

	return discount, nil
}

func insertDiscount(ctx context.Context, b base, discount *domain.Discount) error {
	if err := b.checkRefs(ctx, one("serviceId", colServices, discount.ServiceID)); err != nil {
		return err
	}

	id, err := b.nextID(ctx, colDiscounts)
	if err != nil {
		return err
	}
	discount.ID = id

	if _, err = b.col(colDiscounts).InsertOne(ctx, discountToDoc(*discount)); err != nil {
		return discountErr(fmt.Errorf("InsertOne -> %w", err))
	}

	return nil
}

func (s *DiscountStore) FindByID(ctx context.Context, id uint) (domain.Discount, error) {
	var doc discountDoc
	if err := s.findOne(ctx, colDiscounts, id, &doc, ErrDiscountNotFound); err != nil {
		return domain.Discount{}, err
	}

	return doc.toDomain(), nil
}

func (s *DiscountStore) FindByServiceID(ctx context.Context, serviceID uint) (domain.Discount, error) {
	var doc discountDoc
	err := s.col(colDiscounts).FindOne(ctx, bson.M{"serviceId": serviceID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Discount{}, ErrDiscountNotFound
	}
	if err != nil {
		return domain.Discount{}, err
	}

	return doc.toDomain(), nil
}

func (s *DiscountStore) FindAll(ctx context.Context) ([]domain.Discount, error) {
	var docs []discountDoc
	if err := s.findAll(ctx, colDiscounts, bson.M{}, &docs); err != nil {
		return nil, err
	}

	discounts := make([]domain.Discount, 0, len(docs))
	for _, d := range docs {
		discounts = append(discounts, d.toDomain())
	}

	return discounts, nil
}

func (s *DiscountStore) Update(ctx context.Context, discount domain.Discount) (domain.Discount, error) {
	if err := s.exists(ctx, colDiscounts, discount.ID, ErrDiscountNotFound); err != nil {
		return domain.Discount{}, err
	}
	if err := s.checkRefs(ctx, one("serviceId", colServices, discount.ServiceID)); err != nil {
		return domain.Discount{}, err
	}

	res, err := s.col(colDiscounts).ReplaceOne(ctx, bson.M{"_id": discount.ID}, discountToDoc(discount))
	if err != nil {
		return domain.Discount{}, discountErr(fmt.Errorf("ReplaceOne -> %w", err))
	}
	if res.MatchedCount == 0 {
		return domain.Discount{}, ErrDiscountNotFound
	}

	return discount, nil
}

func (s *DiscountStore) Delete(ctx context.Context, id uint) error {
	res, err := s.col(colDiscounts).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrDiscountNotFound
	}

	return nil
}
