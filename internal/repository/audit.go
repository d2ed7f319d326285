package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
	"github.com/vietanh2810/shared-experiences-api/internal/repository/dao"
)

type AuditDAO interface {
	Insert(ctx context.Context, rec dao.AuditRecord) error
	Search(ctx context.Context, q domain.AuditQuery) ([]dao.AuditRecord, int64, error)
	OperationTypes(ctx context.Context) ([]dao.OperationCount, error)
}

type AuditRepository struct {
	dao AuditDAO
}

func NewAuditRepository(dao AuditDAO) *AuditRepository {
	return &AuditRepository{
		dao: dao,
	}
}

func (r *AuditRepository) Append(ctx context.Context, rec domain.AuditRecord) error {
	if err := r.dao.Insert(ctx, dao.AuditRecord(rec)); err != nil {
		return fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return nil
}

func (r *AuditRepository) Search(ctx context.Context, q domain.AuditQuery) ([]domain.AuditRecord, int64, error) {
	found, total, err := r.dao.Search(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.Search -> %w", err)
	}

	records := make([]domain.AuditRecord, 0, len(found))
	for _, rec := range found {
		records = append(records, domain.AuditRecord(rec))
	}

	return records, total, nil
}

func (r *AuditRepository) OperationTypes(ctx context.Context) ([]domain.OperationCount, error) {
	found, err := r.dao.OperationTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.OperationTypes -> %w", err)
	}

	counts := make([]domain.OperationCount, 0, len(found))
	for _, c := range found {
		counts = append(counts, domain.OperationCount(c))
	}

	return counts, nil
}
