package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"

	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type Err struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText string            `json:"status"`
	ErrorText  string            `json:"error,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
}

func (e *Err) Error() string {
	return e.ErrorText
}

func RenderErr(ctx *gin.Context, e *Err) {
	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

// ErrBadRequest fills Fields when err carries per-field messages.
func ErrBadRequest(err error) *Err {
	e := &Err{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Bad request",
		ErrorText:      err.Error(),
	}

	var (
		verr  *domain.ValidationError
		verrs validation.Errors
	)
	switch {
	case errors.As(err, &verr):
		e.StatusText = "Validation failed"
		e.Fields = verr.Fields
	case errors.As(err, &verrs):
		e.StatusText = "Validation failed"
		e.Fields = make(map[string]string, len(verrs))
		for field, fieldErr := range verrs {
			e.Fields[field] = fieldErr.Error()
		}
	}

	return e
}

func ErrNotFound(resource, field string, value interface{}) *Err {
	return &Err{
		Err:            domain.ErrNotFound,
		HTTPStatusCode: http.StatusNotFound,
		StatusText:     "Resource not found",
		ErrorText:      fmt.Sprintf("%s with %s %v not found", resource, field, value),
	}
}

func ErrUnauthenticated(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusUnauthorized,
		StatusText:     "Unauthenticated",
		ErrorText:      err.Error(),
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusForbidden,
		StatusText:     "Permission denied",
		ErrorText:      err.Error(),
	}
}

func ErrTooManyRequests(retryAfter int) *Err {
	return &Err{
		Err:            errors.New("rate limit exceeded"),
		HTTPStatusCode: http.StatusTooManyRequests,
		StatusText:     "Too many requests",
		ErrorText:      fmt.Sprintf("rate limit exceeded, retry in %d seconds", retryAfter),
	}
}

// ErrInternalServerError logs the cause and hides it from the client.
func ErrInternalServerError(err error) *Err {
	zap.L().Error("internal server error", zap.Error(err))

	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     "Internal server error",
		ErrorText:      "something went wrong",
	}
}
