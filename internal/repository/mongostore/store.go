// Package mongostore keeps the same records as the relational repositories
// in MongoDB. Relationships are embedded id lists on the owning document and
// ids come from a counters collection so both backends expose integer ids.
// Multi-document writes run in transactions, which need a replica set.
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

const (
	colCounters    = "counters"
	colUsers       = "users"
	colProviders   = "providers"
	colGuests      = "guests"
	colServices    = "services"
	colExperiences = "shared_experiences"
	colDiscounts   = "discounts"
	colBillings    = "billings"
)

var (
	ErrUserNotFound             = fmt.Errorf("user: %w", domain.ErrNotFound)
	ErrProviderNotFound         = fmt.Errorf("provider: %w", domain.ErrNotFound)
	ErrGuestNotFound            = fmt.Errorf("guest: %w", domain.ErrNotFound)
	ErrServiceNotFound          = fmt.Errorf("service: %w", domain.ErrNotFound)
	ErrSharedExperienceNotFound = fmt.Errorf("shared experience: %w", domain.ErrNotFound)
	ErrDiscountNotFound         = fmt.Errorf("discount: %w", domain.ErrNotFound)
	ErrBillingNotFound          = fmt.Errorf("billing: %w", domain.ErrNotFound)
)

type base struct {
	db *mongo.Database
}

func (b base) col(name string) *mongo.Collection {
	return b.db.Collection(name)
}

// nextID atomically increments the named sequence.
func (b base) nextID(ctx context.Context, name string) (uint, error) {
	var counter struct {
		Seq uint `bson:"seq"`
	}

	err := b.col(colCounters).FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next %s id -> %w", name, err)
	}

	return counter.Seq, nil
}

func (b base) withTx(ctx context.Context, fn func(sc mongo.SessionContext) error, opts ...*options.TransactionOptions) error {
	sess, err := b.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("StartSession -> %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	}, opts...)

	return err
}

// findOne decodes the document with id into out, or returns sentinel.
func (b base) findOne(ctx context.Context, col string, id interface{}, out interface{}, sentinel error) error {
	err := b.col(col).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return sentinel
	}

	return err
}

func (b base) findAll(ctx context.Context, col string, filter interface{}, out interface{}) error {
	cur, err := b.col(col).Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return err
	}

	return cur.All(ctx, out)
}

func (b base) exists(ctx context.Context, col string, id uint, sentinel error) error {
	n, err := b.col(col).CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return sentinel
	}

	return nil
}

type ref struct {
	field string
	col   string
	ids   []uint
}

// checkRefs reports every field whose ids are not all present.
func (b base) checkRefs(ctx context.Context, refs ...ref) error {
	verr := &domain.ValidationError{}
	for _, r := range refs {
		if len(r.ids) == 0 {
			continue
		}

		unique := dedupe(r.ids)
		var found []struct {
			ID uint `bson:"_id"`
		}
		cur, err := b.col(r.col).Find(ctx, bson.M{"_id": bson.M{"$in": unique}}, options.Find().SetProjection(bson.M{"_id": 1}))
		if err != nil {
			return err
		}
		if err = cur.All(ctx, &found); err != nil {
			return err
		}
		if len(found) == len(unique) {
			continue
		}

		seen := make(map[uint]bool, len(found))
		for _, f := range found {
			seen[f.ID] = true
		}
		var missing []uint
		for _, id := range unique {
			if !seen[id] {
				missing = append(missing, id)
			}
		}
		verr.Add(r.field, fmt.Sprintf("unknown id(s) %v", missing))
	}
	if !verr.Empty() {
		return verr
	}

	return nil
}

func one(field, col string, id uint) ref {
	return ref{field: field, col: col, ids: []uint{id}}
}

func dedupe(ids []uint) []uint {
	out := make([]uint, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	return out
}

// EnsureIndexes creates the unique constraints the stores rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database, auditCollection string) error {
	unique := options.Index().SetUnique(true)
	indexes := map[string]mongo.IndexModel{
		colUsers:        {Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		colDiscounts:    {Keys: bson.D{{Key: "serviceId", Value: 1}}, Options: unique},
		colServices:     {Keys: bson.D{{Key: "providerId", Value: 1}}},
		colBillings:     {Keys: bson.D{{Key: "guestId", Value: 1}}},
		auditCollection: {Keys: bson.D{{Key: "timestamp", Value: -1}}},
	}

	for col, idx := range indexes {
		if _, err := db.Collection(col).Indexes().CreateOne(ctx, idx); err != nil {
			return fmt.Errorf("create index on %s -> %w", col, err)
		}
	}

	return nil
}
