package dao

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type AuditRecord struct {
	ID string `gorm:"primaryKey;size:36"`

	Timestamp   time.Time `gorm:"column:occurred_at;not null;index"`
	Method      string    `gorm:"size:10;not null;index"`
	Path        string    `gorm:"size:255;not null"`
	Description string    `gorm:"size:255;not null"`
	ActorID     string    `gorm:"size:64;index"`
	ActorRole   string    `gorm:"size:20"`
	StatusCode  int
	RequestID   string `gorm:"size:64"`
}

type OperationCount struct {
	Description string
	Count       int64
}

type AuditDAO struct {
	db *gorm.DB
}

func NewAuditDAO(db *gorm.DB) *AuditDAO {
	return &AuditDAO{
		db: db,
	}
}

func (d *AuditDAO) Insert(ctx context.Context, rec AuditRecord) error {
	return d.db.WithContext(ctx).Create(&rec).Error
}

// Search returns one page of matching records, newest first, and the total
// number of matches.
func (d *AuditDAO) Search(ctx context.Context, q domain.AuditQuery) ([]AuditRecord, int64, error) {
	tx := d.db.WithContext(ctx).Model(&AuditRecord{})

	if q.ActorID != "" {
		tx = tx.Where("actor_id = ?", q.ActorID)
	}
	if q.Method != "" {
		tx = tx.Where("method = ?", strings.ToUpper(q.Method))
	}
	if q.Description != "" {
		tx = tx.Where("LOWER(description) LIKE ?", "%"+escapeLike(strings.ToLower(q.Description))+"%")
	}
	if q.From != nil {
		tx = tx.Where("occurred_at >= ?", *q.From)
	}
	if q.To != nil {
		tx = tx.Where("occurred_at <= ?", *q.To)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []AuditRecord
	err := tx.Order("occurred_at DESC").Order("id").
		Offset(q.Offset()).Limit(q.PageSize).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (d *AuditDAO) OperationTypes(ctx context.Context) ([]OperationCount, error) {
	var rows []OperationCount
	err := d.db.WithContext(ctx).Model(&AuditRecord{}).
		Select("description, COUNT(*) AS count").
		Where("method IN ?", domain.WriteMethods).
		Group("description").
		Order("count DESC").Order("description").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
