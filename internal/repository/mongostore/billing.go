package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type BillingStore struct {
	base
}

func NewBillingStore(db *mongo.Database) *BillingStore {
	return &BillingStore{base{db: db}}
}

func billingRefs(b domain.Billing) []ref {
	refs := []ref{
		one("guestId", colGuests, b.GuestID),
		one("providerId", colProviders, b.ProviderID),
	}
	if b.ServiceID != nil {
		refs = append(refs, one("serviceId", colServices, *b.ServiceID))
	}

	return refs
}

func (s *BillingStore) Create(ctx context.Context, billing domain.Billing) (domain.Billing, error) {
	if err := insertBilling(ctx, s.base, &billing); err != nil {
		return domain.Billing{}, err
	}

	return billing, nil
}

func insertBilling(ctx context.Context, b base, billing *domain.Billing) error {
	if err := b.checkRefs(ctx, billingRefs(*billing)...); err != nil {
		return err
	}

	id, err := b.nextID(ctx, colBillings)
	if err != nil {
		return err
	}
	billing.ID = id

	if _, err = b.col(colBillings).InsertOne(ctx, billingToDoc(*billing)); err != nil {
		return fmt.Errorf("InsertOne -> %w", err)
	}

	return nil
}

func (s *BillingStore) FindByID(ctx context.Context, id uint) (domain.Billing, error) {
	var doc billingDoc
	if err := s.findOne(ctx, colBillings, id, &doc, ErrBillingNotFound); err != nil {
		return domain.Billing{}, err
	}

	return doc.toDomain(), nil
}

func (s *BillingStore) FindAll(ctx context.Context) ([]domain.Billing, error) {
	var docs []billingDoc
	if err := s.findAll(ctx, colBillings, bson.M{}, &docs); err != nil {
		return nil, err
	}

	return billingsToDomain(docs), nil
}

func billingsToDomain(docs []billingDoc) []domain.Billing {
	billings := make([]domain.Billing, 0, len(docs))
	for _, d := range docs {
		billings = append(billings, d.toDomain())
	}

	return billings
}

func (s *BillingStore) Update(ctx context.Context, billing domain.Billing) (domain.Billing, error) {
	if err := s.exists(ctx, colBillings, billing.ID, ErrBillingNotFound); err != nil {
		return domain.Billing{}, err
	}
	if err := s.checkRefs(ctx, billingRefs(billing)...); err != nil {
		return domain.Billing{}, err
	}

	res, err := s.col(colBillings).ReplaceOne(ctx, bson.M{"_id": billing.ID}, billingToDoc(billing))
	if err != nil {
		return domain.Billing{}, fmt.Errorf("ReplaceOne -> %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.Billing{}, ErrBillingNotFound
	}

	return billing, nil
}

func (s *BillingStore) Delete(ctx context.Context, id uint) error {
	res, err := s.col(colBillings).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrBillingNotFound
	}

	return nil
}
