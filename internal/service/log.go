package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type AuditStore interface {
	Append(ctx context.Context, rec domain.AuditRecord) error
	Search(ctx context.Context, q domain.AuditQuery) ([]domain.AuditRecord, int64, error)
	OperationTypes(ctx context.Context) ([]domain.OperationCount, error)
}

type LogService struct {
	store AuditStore
}

func NewLogService(store AuditStore) *LogService {
	return &LogService{
		store: store,
	}
}

type LogSearch struct {
	ActorID     string
	Method      string
	Description string
	StartDate   *time.Time
	// EndDate covers the whole calendar day it falls on.
	EndDate  *time.Time
	Page     int
	PageSize int
}

func (s *LogService) Search(ctx context.Context, in LogSearch) (domain.AuditPage, error) {
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return domain.AuditPage{}, domain.NewValidationError("endDate", "must not be before startDate")
	}

	q := domain.AuditQuery{
		ActorID:     strings.TrimSpace(in.ActorID),
		Method:      strings.ToUpper(strings.TrimSpace(in.Method)),
		Description: strings.TrimSpace(in.Description),
		From:        in.StartDate,
		Page:        in.Page,
		PageSize:    in.PageSize,
	}.Normalize()
	if in.EndDate != nil {
		end := endOfDay(*in.EndDate)
		q.To = &end
	}

	records, total, err := s.store.Search(ctx, q)
	if err != nil {
		return domain.AuditPage{}, fmt.Errorf("s.store.Search -> %w", err)
	}
	if records == nil {
		records = []domain.AuditRecord{}
	}

	return domain.AuditPage{
		Records:    records,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: int((total + int64(q.PageSize) - 1) / int64(q.PageSize)),
	}, nil
}

func (s *LogService) OperationTypes(ctx context.Context) ([]domain.OperationCount, error) {
	counts, err := s.store.OperationTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.store.OperationTypes -> %w", err)
	}
	if counts == nil {
		counts = []domain.OperationCount{}
	}

	return counts, nil
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
