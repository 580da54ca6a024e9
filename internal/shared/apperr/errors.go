package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Kind classifies an error into one of the API failure categories
type Kind int

const (
	KindDependency Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	default:
		return "dependency"
	}
}

// Error is the application error carried from repositories up to handlers.
// Code is stable and machine readable, Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details any
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

// Is matches two *Error values by Kind and Code so that sentinels survive WithDetails
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// WithDetails returns a copy of e carrying field-level details
func (e *Error) WithDetails(details any) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// Wrap returns a copy of e with err as the cause
func (e *Error) Wrap(err error) *Error {
	cp := *e
	cp.Err = err
	return &cp
}

func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func Unauthenticated(code, message string) *Error {
	return &Error{Kind: KindAuthentication, Code: code, Message: message}
}

func Forbidden(code, message string) *Error {
	return &Error{Kind: KindAuthorization, Code: code, Message: message}
}

func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func Dependency(code, message string, err error) *Error {
	return &Error{Kind: KindDependency, Code: code, Message: message, Err: err}
}

// Common errors shared by every domain
var (
	ErrMissingToken = Unauthenticated("UNAUTHORIZED", "Unauthorized")
	ErrInvalidID    = Validation("INVALID_ID", "Invalid id format")
	ErrInternal     = Dependency("INTERNAL_ERROR", "Internal server error", nil)
)

// As extracts an *Error from err. Unknown errors become a dependency error.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternal.Wrap(err)
}

// HTTPStatus converts error to HTTP status code
func HTTPStatus(err error) int {
	switch As(err).Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf converts error to API error code
func CodeOf(err error) string {
	return As(err).Code
}

func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// FromValidation turns an ozzo-validation result into base with per-field details.
// A nil err stays nil.
func FromValidation(base *Error, err error) error {
	if err == nil {
		return nil
	}

	var fields validation.Errors
	if errors.As(err, &fields) {
		details := make(map[string]string, len(fields))
		for field, fieldErr := range fields {
			details[field] = fieldErr.Error()
		}
		return base.WithDetails(details)
	}
	return base.WithDetails(err.Error())
}

// FromBind turns a request decoding failure into base with details, keyed by
// field when the decoder knows which one failed
func FromBind(base *Error, err error) *Error {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return base.Wrap(err).WithDetails(map[string]string{
			typeErr.Field: "must be a " + kindName(typeErr.Type),
		})
	case errors.As(err, &syntaxErr):
		return base.Wrap(err).WithDetails(map[string]string{"body": "malformed JSON"})
	default:
		return base.Wrap(err).WithDetails(err.Error())
	}
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "list"
	default:
		return "object"
	}
}
