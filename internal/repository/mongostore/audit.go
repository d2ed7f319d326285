package mongostore

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type AuditStore struct {
	col *mongo.Collection
}

func NewAuditStore(db *mongo.Database, collection string) *AuditStore {
	return &AuditStore{col: db.Collection(collection)}
}

func (s *AuditStore) Append(ctx context.Context, rec domain.AuditRecord) error {
	if _, err := s.col.InsertOne(ctx, auditDoc(rec)); err != nil {
		return fmt.Errorf("InsertOne -> %w", err)
	}

	return nil
}

func auditFilter(q domain.AuditQuery) bson.M {
	filter := bson.M{}
	if q.ActorID != "" {
		filter["actorId"] = q.ActorID
	}
	if q.Method != "" {
		filter["method"] = strings.ToUpper(q.Method)
	}
	if q.Description != "" {
		filter["description"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Description), Options: "i"}
	}

	window := bson.M{}
	if q.From != nil {
		window["$gte"] = *q.From
	}
	if q.To != nil {
		window["$lte"] = *q.To
	}
	if len(window) > 0 {
		filter["timestamp"] = window
	}

	return filter
}

func (s *AuditStore) Search(ctx context.Context, q domain.AuditQuery) ([]domain.AuditRecord, int64, error) {
	filter := auditFilter(q)

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("CountDocuments -> %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(q.Offset())).
		SetLimit(int64(q.PageSize))
	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("Find -> %w", err)
	}

	var docs []auditDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("cur.All -> %w", err)
	}

	records := make([]domain.AuditRecord, 0, len(docs))
	for _, d := range docs {
		records = append(records, domain.AuditRecord(d))
	}

	return records, total, nil
}

func (s *AuditStore) OperationTypes(ctx context.Context) ([]domain.OperationCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "method", Value: bson.D{{Key: "$in", Value: domain.WriteMethods}}}}}},
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$description"}, {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	cur, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("Aggregate -> %w", err)
	}

	var rows []struct {
		Description string `bson:"_id"`
		Count       int64  `bson:"count"`
	}
	if err = cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("cur.All -> %w", err)
	}

	counts := make([]domain.OperationCount, 0, len(rows))
	for _, r := range rows {
		counts = append(counts, domain.OperationCount{Description: r.Description, Count: r.Count})
	}

	return counts, nil
}
