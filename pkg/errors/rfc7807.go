// Package errors provides error kinds for the inventory service and their
// RFC 7807 Problem Details representation.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Standard error functions
var (
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// FieldError represents a validation error for a specific field
type FieldError struct {
	Kind    string `json:"kind"`
	Field   string `json:"field"`
	Message string `json:"message,omitempty"`
}

func (f *FieldError) Error() string {
	return fmt.Sprintf("%s (%s): %s", f.Field, f.Kind, f.Message)
}

func NewFieldError(kind, field, reason string) FieldError {
	return FieldError{Kind: kind, Field: field, Message: reason}
}

// StatusCode represents an HTTP status code error
type StatusCode int

// Error implements error
func (status StatusCode) Error() string {
	return http.StatusText(int(status))
}

func Status(code int) *Error {
	return Wrap(StatusCode(code)).Reason(http.StatusText(code))
}

var (
	Invalid         *Error = Status(http.StatusBadRequest)
	Unauthorized    *Error = Status(http.StatusUnauthorized)
	Forbidden       *Error = Status(http.StatusForbidden)
	NotFound        *Error = Status(http.StatusNotFound)
	Conflict        *Error = Status(http.StatusConflict)
	TooManyRequests *Error = Status(http.StatusTooManyRequests)
	Unavailable     *Error = Status(http.StatusServiceUnavailable)

	// Stale is a 409 for writes against a document that changed after it
	// was read. It does not match Conflict.
	Stale *Error = Conflict.Reason("Stale")
)

// Error is a custom error type for passing more information
type Error struct {
	// Kind is the returned error type
	Kind string `json:"kind"`
	// Message is the human readable string that indicate the error
	Message string `json:"message"`
	// Fields used when there's validation error for a field.
	Fields []FieldError `json:"fields,omitempty"`

	cause error
}

var _ error = (*Error)(nil)

func New(message string) *Error {
	return &Error{Kind: "Unknown", Message: message}
}

func Wrap(err error) *Error {
	return &Error{cause: err}
}

// Error implements error
func (e *Error) Error() string {
	str := fmt.Sprintf("[%s] ", e.Kind)
	if e.Message != "" {
		str += e.Message
	}
	if e.cause != nil {
		str += fmt.Sprintf(" (%s)", e.cause)
	}
	return str
}

// Reason returns a copy of the error with kind set to given value
func (e *Error) Reason(kind string) *Error {
	err := *e
	err.Kind = kind
	return &err
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Explain makes a copy of the error with given message
func (e *Error) Explain(message string, args ...any) *Error {
	err := *e
	err.Message = fmt.Sprintf(message, args...)
	return &err
}

// WithField returns a copy of error with the field appended.
func (e *Error) WithField(kind, field, message string) *Error {
	newError := *e
	newError.Fields = append(append([]FieldError(nil), e.Fields...), NewFieldError(kind, field, message))
	return &newError
}

// Is implements the needed interface for errors.Is
// It checks kind and status code for equality
func (e *Error) Is(target error) bool {
	if e == nil {
		return target == nil
	}
	if other, ok := target.(*Error); ok {
		return other.Kind == e.Kind
	}
	if e.cause != nil {
		return Is(e.cause, target)
	}
	return false
}

// HTTPStatus returns the status code carried by err, or 500.
func HTTPStatus(err error) int {
	var sc StatusCode
	if As(err, &sc) {
		return int(sc)
	}
	return http.StatusInternalServerError
}

// ToProblemDetails converts the error to its RFC 7807 representation.
func (e *Error) ToProblemDetails(instance string) *ProblemDetails {
	status := HTTPStatus(e)
	problemType, title := problemFor(status)
	detail := e.Message
	if detail == "" {
		detail = e.Kind
	}
	p := NewProblemDetails(problemType, title, status, detail, instance)
	for _, f := range e.Fields {
		p.Errors = append(p.Errors, ValidationError{Field: f.Field, Code: f.Kind, Message: f.Message})
	}
	return p
}

// FromError converts any error to problem details. Errors without a known
// kind become an opaque 500.
func FromError(err error, instance string) *ProblemDetails {
	var pd *ProblemDetails
	if As(err, &pd) {
		return pd
	}
	var e *Error
	if As(err, &e) {
		return e.ToProblemDetails(instance)
	}
	return NewInternalError("An unexpected error occurred", instance)
}

// Problem type URIs
const (
	TypeValidationError = "https://api.laptrack.io/problems/validation-error"
	TypeUnauthorized    = "https://api.laptrack.io/problems/unauthorized"
	TypeForbidden       = "https://api.laptrack.io/problems/forbidden"
	TypeNotFound        = "https://api.laptrack.io/problems/not-found"
	TypeConflict        = "https://api.laptrack.io/problems/conflict"
	TypeRateLimit       = "https://api.laptrack.io/problems/rate-limit"
	TypeUnavailable     = "https://api.laptrack.io/problems/service-unavailable"
	TypeInternalError   = "https://api.laptrack.io/problems/internal-error"
)

// Problem titles
const (
	TitleValidationError = "Validation Error"
	TitleUnauthorized    = "Unauthorized"
	TitleForbidden       = "Forbidden"
	TitleNotFound        = "Not Found"
	TitleConflict        = "Conflict"
	TitleRateLimit       = "Rate Limit Exceeded"
	TitleUnavailable     = "Service Unavailable"
	TitleInternalError   = "Internal Server Error"
)

func problemFor(status int) (string, string) {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return TypeValidationError, TitleValidationError
	case http.StatusUnauthorized:
		return TypeUnauthorized, TitleUnauthorized
	case http.StatusForbidden:
		return TypeForbidden, TitleForbidden
	case http.StatusNotFound:
		return TypeNotFound, TitleNotFound
	case http.StatusConflict:
		return TypeConflict, TitleConflict
	case http.StatusTooManyRequests:
		return TypeRateLimit, TitleRateLimit
	case http.StatusServiceUnavailable:
		return TypeUnavailable, TitleUnavailable
	default:
		return TypeInternalError, TitleInternalError
	}
}

// ValidationError represents a validation error for RFC 7807
type ValidationError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value,omitempty"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
}

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Status   int                    `json:"status"`
	Detail   string                 `json:"detail,omitempty"`
	Instance string                 `json:"instance,omitempty"`
	TraceID  string                 `json:"trace_id,omitempty"`
	Errors   []ValidationError      `json:"errors,omitempty"`
	Extra    map[string]interface{} `json:"-"`
}

// Error implements the error interface
func (p *ProblemDetails) Error() string {
	return p.Detail
}

// WithTraceID adds a trace ID to the problem details
func (p *ProblemDetails) WithTraceID(traceID string) *ProblemDetails {
	p.TraceID = traceID
	return p
}

// WithExtra adds extra fields to the problem details (they will be serialized at the top level)
func (p *ProblemDetails) WithExtra(key string, value interface{}) *ProblemDetails {
	if p.Extra == nil {
		p.Extra = make(map[string]interface{})
	}
	p.Extra[key] = value
	return p
}

// MarshalJSON implements custom JSON marshaling to include extra fields at the top level
func (p *ProblemDetails) MarshalJSON() ([]byte, error) {
	result := make(map[string]interface{})
	result["type"] = p.Type
	result["title"] = p.Title
	result["status"] = p.Status
	if p.Detail != "" {
		result["detail"] = p.Detail
	}
	if p.Instance != "" {
		result["instance"] = p.Instance
	}
	if p.TraceID != "" {
		result["trace_id"] = p.TraceID
	}
	if len(p.Errors) > 0 {
		result["errors"] = p.Errors
	}

	for k, v := range p.Extra {
		result[k] = v
	}

	return json.Marshal(result)
}

// NewProblemDetails creates a generic problem details with all fields
func NewProblemDetails(problemType, title string, status int, detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:     problemType,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: instance,
	}
}

// NewUnauthorizedError creates an unauthorized error problem
func NewUnauthorizedError(detail, instance string) *ProblemDetails {
	return NewProblemDetails(TypeUnauthorized, TitleUnauthorized, http.StatusUnauthorized, detail, instance)
}

// NewForbiddenError creates a forbidden error problem
func NewForbiddenError(detail, instance string) *ProblemDetails {
	return NewProblemDetails(TypeForbidden, TitleForbidden, http.StatusForbidden, detail, instance)
}

// NewNotFoundError creates a not found error problem
func NewNotFoundError(detail, instance string) *ProblemDetails {
	return NewProblemDetails(TypeNotFound, TitleNotFound, http.StatusNotFound, detail, instance)
}

// NewRateLimitError creates a rate limit error problem
func NewRateLimitError(detail, instance string) *ProblemDetails {
	return NewProblemDetails(TypeRateLimit, TitleRateLimit, http.StatusTooManyRequests, detail, instance)
}

// NewInternalError creates an internal server error problem
func NewInternalError(detail, instance string) *ProblemDetails {
	return NewProblemDetails(TypeInternalError, TitleInternalError, http.StatusInternalServerError, detail, instance)
}
