package request

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

type LogSearchRequest struct {
	ActorID     string `form:"actorId"`
	Method      string `form:"method"`
	Description string `form:"description"`
	StartDate   string `form:"startDate"`
	EndDate     string `form:"endDate"`
	Page        int    `form:"page"`
	PageSize    int    `form:"pageSize"`
}

func (req *LogSearchRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Method, validation.By(validMethod)),
		validation.Field(&req.StartDate, validation.By(validDate)),
		validation.Field(&req.EndDate, validation.By(validDate)),
		validation.Field(&req.Page, validation.Min(0)),
		validation.Field(&req.PageSize, validation.Min(0), validation.Max(domain.MaxAuditPageSize)),
	)
}

// Range returns the parsed dates; call it after Validate.
func (req *LogSearchRequest) Range() (start, end *time.Time) {
	if t, err := parseDate(req.StartDate); err == nil && t != nil {
		start = t
	}
	if t, err := parseDate(req.EndDate); err == nil && t != nil {
		end = t
	}

	return start, end
}

func validMethod(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	for _, m := range domain.WriteMethods {
		if strings.EqualFold(m, s) {
			return nil
		}
	}

	return errors.New("must be one of POST, PUT, DELETE")
}

func validDate(value interface{}) error {
	s, _ := value.(string)
	_, err := parseDate(s)

	return err
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}

	return nil, errors.New("must be a date like 2006-01-02 or an RFC 3339 timestamp")
}
