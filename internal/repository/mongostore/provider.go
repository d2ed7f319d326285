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

type ProviderStore struct {
	base
}

func NewProviderStore(db *mongo.Database) *ProviderStore {
	return &ProviderStore{base{db: db}}
}

func (s *ProviderStore) Create(ctx context.Context, provider domain.Provider) (domain.Provider, error) {
	id, err := s.nextID(ctx, colProviders)
	if err != nil {
		return domain.Provider{}, err
	}
	provider.ID = id

	if _, err = s.col(colProviders).InsertOne(ctx, providerToDoc(provider)); err != nil {
		return domain.Provider{}, fmt.Errorf("InsertOne -> %w", err)
	}

	return provider, nil
}

func (s *ProviderStore) FindByID(ctx context.Context, id uint) (domain.Provider, error) {
	var doc providerDoc
	if err := s.findOne(ctx, colProviders, id, &doc, ErrProviderNotFound); err != nil {
		return domain.Provider{}, err
	}

	return doc.toDomain(), nil
}

func (s *ProviderStore) FindAll(ctx context.Context) ([]domain.Provider, error) {
	var docs []providerDoc
	if err := s.findAll(ctx, colProviders, bson.M{}, &docs); err != nil {
		return nil, err
	}

	providers := make([]domain.Provider, 0, len(docs))
	for _, d := range docs {
		providers = append(providers, d.toDomain())
	}

	return providers, nil
}

func (s *ProviderStore) FindServices(ctx context.Context, id uint) ([]domain.Service, error) {
	if err := s.exists(ctx, colProviders, id, ErrProviderNotFound); err != nil {
		return nil, err
	}

	var docs []serviceDoc
	if err := s.findAll(ctx, colServices, bson.M{"providerId": id}, &docs); err != nil {
		return nil, err
	}

	return servicesToDomain(docs), nil
}

// Update rewrites the editable fields. The account link set at registration
// is left untouched.
func (s *ProviderStore) Update(ctx context.Context, provider domain.Provider) (domain.Provider, error) {
	set := bson.M{"$set": bson.M{
		"name":                    provider.Name,
		"address":                 provider.Address,
		"number":                  provider.Number,
		"touristicOperatorPermit": provider.TouristicOperatorPermit,
	}}

	var doc providerDoc
	err := s.col(colProviders).FindOneAndUpdate(ctx, bson.M{"_id": provider.ID}, set,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Provider{}, ErrProviderNotFound
	}
	if err != nil {
		return domain.Provider{}, fmt.Errorf("FindOneAndUpdate -> %w", err)
	}

	return doc.toDomain(), nil
}

// Delete removes the provider together with its services and billings.
func (s *ProviderStore) Delete(ctx context.Context, id uint) error {
	return s.withTx(ctx, func(sc mongo.SessionContext) error {
		if err := s.exists(sc, colProviders, id, ErrProviderNotFound); err != nil {
			return err
		}

		var docs []serviceDoc
		if err := s.findAll(sc, colServices, bson.M{"providerId": id}, &docs); err != nil {
			return err
		}
		serviceIDs := make([]uint, 0, len(docs))
		for _, d := range docs {
			serviceIDs = append(serviceIDs, d.ID)
		}
		if err := deleteServices(sc, s.base, serviceIDs); err != nil {
			return err
		}

		if _, err := s.col(colBillings).DeleteMany(sc, bson.M{"providerId": id}); err != nil {
			return fmt.Errorf("delete billings -> %w", err)
		}
		_, err := s.col(colProviders).DeleteOne(sc, bson.M{"_id": id})

		return err
	})
}
