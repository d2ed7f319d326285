package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type ServiceStore struct {
	base
}

func NewServiceStore(db *mongo.Database) *ServiceStore {
	return &ServiceStore{base{db: db}}
}

func serviceRefs(svc domain.Service) []ref {
	return []ref{
		one("providerId", colProviders, svc.ProviderID),
		{field: "guestIds", col: colGuests, ids: svc.GuestIDs},
	}
}

func (s *ServiceStore) Create(ctx context.Context, svc domain.Service) (domain.Service, error) {
	err := s.withTx(ctx, func(sc mongo.SessionContext) error {
		return insertService(sc, s.base, &svc)
	})
	if err != nil {
		return domain.Service{}, err
	}

	return svc, nil
}

func insertService(ctx context.Context, b base, svc *domain.Service) error {
	if err := b.checkRefs(ctx, serviceRefs(*svc)...); err != nil {
		return err
	}

	id, err := b.nextID(ctx, colServices)
	if err != nil {
		return err
	}
	svc.ID = id

	doc := serviceToDoc(*svc)
	if _, err = b.col(colServices).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("InsertOne -> %w", err)
	}
	*svc = doc.toDomain()

	return nil
}

func (s *ServiceStore) FindByID(ctx context.Context, id uint) (domain.Service, error) {
	var doc serviceDoc
	if err := s.findOne(ctx, colServices, id, &doc, ErrServiceNotFound); err != nil {
		return domain.Service{}, err
	}

	return doc.toDomain(), nil
}

func (s *ServiceStore) FindAll(ctx context.Context) ([]domain.Service, error) {
	var docs []serviceDoc
	if err := s.findAll(ctx, colServices, bson.M{}, &docs); err != nil {
		return nil, err
	}

	return servicesToDomain(docs), nil
}

func servicesToDomain(docs []serviceDoc) []domain.Service {
	services := make([]domain.Service, 0, len(docs))
	for _, d := range docs {
		services = append(services, d.toDomain())
	}

	return services
}

func (s *ServiceStore) Update(ctx context.Context, svc domain.Service) (domain.Service, error) {
	err := s.withTx(ctx, func(sc mongo.SessionContext) error {
		if err := s.exists(sc, colServices, svc.ID, ErrServiceNotFound); err != nil {
			return err
		}
		if err := s.checkRefs(sc, serviceRefs(svc)...); err != nil {
			return err
		}

		doc := serviceToDoc(svc)
		if _, err := s.col(colServices).ReplaceOne(sc, bson.M{"_id": svc.ID}, doc); err != nil {
			return fmt.Errorf("ReplaceOne -> %w", err)
		}
		svc = doc.toDomain()

		return nil
	})
	if err != nil {
		return domain.Service{}, err
	}

	return svc, nil
}

func (s *ServiceStore) AddGuest(ctx context.Context, serviceID, guestID uint) error {
	if err := s.exists(ctx, colServices, serviceID, ErrServiceNotFound); err != nil {
		return err
	}
	if err := s.checkRefs(ctx, one("guestId", colGuests, guestID)); err != nil {
		return err
	}

	_, err := s.col(colServices).UpdateOne(ctx, bson.M{"_id": serviceID}, bson.M{"$addToSet": bson.M{"guestIds": guestID}})

	return err
}

func (s *ServiceStore) Delete(ctx context.Context, id uint) error {
	return s.withTx(ctx, func(sc mongo.SessionContext) error {
		if err := s.exists(sc, colServices, id, ErrServiceNotFound); err != nil {
			return err
		}

		return deleteServices(sc, s.base, []uint{id})
	})
}

// deleteServices removes services with their discount and membership links.
// Billings keep their amount but lose the service reference.
func deleteServices(ctx context.Context, b base, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	in := bson.M{"$in": ids}

	if _, err := b.col(colExperiences).UpdateMany(ctx, bson.M{"serviceIds": in}, bson.M{"$pull": bson.M{"serviceIds": in}}); err != nil {
		return fmt.Errorf("unlink services -> %w", err)
	}
	if _, err := b.col(colDiscounts).DeleteMany(ctx, bson.M{"serviceId": in}); err != nil {
		return fmt.Errorf("delete discounts -> %w", err)
	}
	if _, err := b.col(colBillings).UpdateMany(ctx, bson.M{"serviceId": in}, bson.M{"$unset": bson.M{"serviceId": ""}}); err != nil {
		return fmt.Errorf("detach billings -> %w", err)
	}
	if _, err := b.col(colServices).DeleteMany(ctx, bson.M{"_id": in}); err != nil {
		return fmt.Errorf("delete services -> %w", err)
	}

	return nil
}
