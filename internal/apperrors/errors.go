package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind classifies an operation failure into the HTTP status it maps to.
type Kind int

const (
	KindNotFound Kind = iota
	KindBadRequest
	KindInternal
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...any) *Error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

func Internal(err error, format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...), Err: err}
}

// ClassifyRead maps a read-path failure. Already-classified errors pass
// through unchanged; everything else surfaces as a 500.
func ClassifyRead(err error, message string) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// ClassifyWrite maps a write-path failure. Already-classified errors pass
// through unchanged. Constraint violations (SQLSTATE class 23) keep the
// driver's message detail; any other execution error on a write is still a
// 400, since the transaction was rolled back.
func ClassifyWrite(err error, message string) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && isIntegrityViolation(pgErr.Code) {
		return &Error{Kind: KindBadRequest, Message: message, Err: errors.New(pgErr.Message)}
	}
	return &Error{Kind: KindBadRequest, Message: message, Err: err}
}

func isIntegrityViolation(code string) bool {
	return len(code) == 5 && code[:2] == "23"
}
