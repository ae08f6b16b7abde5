package errorutil

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies application errors for logging and metrics.
type Kind string

const (
	KindValidation     Kind = "VALIDATION"
	KindAuthentication Kind = "AUTHENTICATION"
	KindAuthorization  Kind = "AUTHORIZATION"
	KindNotFound       Kind = "NOT_FOUND"
	KindStorage        Kind = "STORAGE"
	KindInternal       Kind = "INTERNAL"
)

// AppError standardizes application errors. Messages is what goes on the
// wire inside the {"errors": [...]} envelope; Err is the wrapped cause and
// is only ever logged server-side.
type AppError struct {
	Kind       Kind
	Messages   []string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	msg := strings.Join(e.Messages, "; ")
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidation reports malformed or missing request fields.
func NewValidation(messages ...string) error {
	if len(messages) == 0 {
		messages = []string{"Invalid request"}
	}
	return &AppError{Kind: KindValidation, Messages: messages, HTTPStatus: http.StatusBadRequest}
}

// NewAuthentication reports bad credentials or a missing/expired session or token.
func NewAuthentication(message string) error {
	return &AppError{Kind: KindAuthentication, Messages: []string{message}, HTTPStatus: http.StatusUnauthorized}
}

// NewAuthorization reports a valid session with insufficient role or ownership.
func NewAuthorization(message string) error {
	return &AppError{Kind: KindAuthorization, Messages: []string{message}, HTTPStatus: http.StatusForbidden}
}

// NewNotFound reports an absent resource.
func NewNotFound(resource string) error {
	return &AppError{
		Kind:       KindNotFound,
		Messages:   []string{fmt.Sprintf("%s not found", resource)},
		HTTPStatus: http.StatusNotFound,
	}
}

// NewStorage wraps a database I/O failure. The wire message is always the
// generic "Database error"; the cause stays server-side.
func NewStorage(err error) error {
	return &AppError{
		Kind:       KindStorage,
		Messages:   []string{"Database error"},
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewInternal wraps an unexpected failure.
func NewInternal(err error) error {
	return &AppError{
		Kind:       KindInternal,
		Messages:   []string{"Internal server error"},
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToAppError converts generic errors to AppError.
func ToAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ToAppError(NewNotFound("resource"))
	}
	return ToAppError(NewInternal(err))
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
