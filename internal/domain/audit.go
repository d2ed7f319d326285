package domain

import "time"

type AuditRecord struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Method      string    `json:"method"`
	Path        string    `json:"path"`
	Description string    `json:"description"`
	ActorID     string    `json:"actorId"`
	ActorRole   string    `json:"actorRole"`
	StatusCode  int       `json:"statusCode"`
	RequestID   string    `json:"requestId,omitempty"`
}

const (
	DefaultAuditPageSize = 20
	MaxAuditPageSize     = 100
)

// AuditQuery filters combine with AND. Zero values disable a filter.
type AuditQuery struct {
	ActorID     string
	Method      string
	Description string
	From        *time.Time
	To          *time.Time
	Page        int
	PageSize    int
}

// Normalize clamps paging into range.
func (q AuditQuery) Normalize() AuditQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultAuditPageSize
	}
	if q.PageSize > MaxAuditPageSize {
		q.PageSize = MaxAuditPageSize
	}

	return q
}

func (q AuditQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

type AuditPage struct {
	Records    []AuditRecord `json:"logs"`
	TotalCount int64         `json:"totalCount"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

type OperationCount struct {
	Description string `json:"description"`
	Count       int64  `json:"count"`
}

// WriteMethods are the HTTP methods counted as operations.
var WriteMethods = []string{"POST", "PUT", "DELETE"}
