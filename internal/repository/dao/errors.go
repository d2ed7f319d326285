package dao

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

var (
	ErrUserNotFound             = fmt.Errorf("user: %w", domain.ErrNotFound)
	ErrProviderNotFound         = fmt.Errorf("provider: %w", domain.ErrNotFound)
	ErrGuestNotFound            = fmt.Errorf("guest: %w", domain.ErrNotFound)
	ErrServiceNotFound          = fmt.Errorf("service: %w", domain.ErrNotFound)
	ErrSharedExperienceNotFound = fmt.Errorf("shared experience: %w", domain.ErrNotFound)
	ErrDiscountNotFound         = fmt.Errorf("discount: %w", domain.ErrNotFound)
	ErrBillingNotFound          = fmt.Errorf("billing: %w", domain.ErrNotFound)

	ErrUserEmailExists = domain.ErrDuplicateUser
)

const (
	mysqlDuplicateEntry  = 1062
	mysqlNoReferencedRow = 1452
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}

	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.ForeignKeyViolation
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlNoReferencedRow
	}

	return errors.Is(err, gorm.ErrForeignKeyViolated)
}

// notFound maps gorm's missing-row error to the entity sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}

	return err
}

// translate turns a late constraint failure into a validation error on field.
func translate(err error, field string) error {
	if err == nil {
		return nil
	}
	if isForeignKeyViolation(err) {
		return domain.NewValidationError(field, "references a record that does not exist")
	}

	return err
}

type ref struct {
	field string
	table string
	ids   []uint
}

func one(field, table string, id uint) ref {
	return ref{field: field, table: table, ids: []uint{id}}
}

func optional(field, table string, id *uint) ref {
	if id == nil {
		return ref{field: field, table: table}
	}

	return one(field, table, *id)
}

// checkRefs verifies every referenced id exists and reports all offending
// fields at once.
func checkRefs(tx *gorm.DB, refs ...ref) error {
	verr := &domain.ValidationError{}
	for _, r := range refs {
		if len(r.ids) == 0 {
			continue
		}

		missing, err := missingIDs(tx, r.table, r.ids)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			verr.Add(r.field, fmt.Sprintf("unknown id(s) %v", missing))
		}
	}
	if !verr.Empty() {
		return verr
	}

	return nil
}

func missingIDs(tx *gorm.DB, table string, ids []uint) ([]uint, error) {
	var found []uint
	if err := tx.Table(table).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, fmt.Errorf("pluck %s ids -> %w", table, err)
	}

	seen := make(map[uint]bool, len(found))
	for _, id := range found {
		seen[id] = true
	}

	var missing []uint
	for _, id := range ids {
		if !seen[id] {
			missing = append(missing, id)
			seen[id] = true
		}
	}

	return missing, nil
}
