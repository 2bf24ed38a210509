package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrPermission   = errors.New("permission denied")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal server error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUpstream     = errors.New("upstream error")
)

type AppError struct {
	BaseError error
	Message   string
	Details   string
	// Step names the write step that failed, empty for errors raised outside a write sequence.
	Step   string
	Fields map[string]string
	Err    error
}

func (e *AppError) Error() string {
	var b strings.Builder
	b.WriteString(e.BaseError.Error())
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Step != "" {
		fmt.Fprintf(&b, " (Step: %s)", e.Step)
	}
	fmt.Fprintf(&b, " (Details: %s", e.Details)
	if e.Err != nil {
		fmt.Fprintf(&b, ", Cause: %v", e.Err)
	}
	b.WriteString(")")
	return b.String()
}

func (e *AppError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.BaseError, e.Err}
	}
	return []error{e.BaseError}
}

func NewAppError(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err}
}

func NewNotFound(resource, identifier string) *AppError {
	msg := fmt.Sprintf("%s not found", resource)
	details := fmt.Sprintf("%s with identifier '%s' was not found", resource, identifier)
	return NewAppError(ErrNotFound, msg, details, nil)
}

func NewInvalidInput(details string, err error) *AppError {
	return NewAppError(ErrInvalidInput, "Invalid input provided", details, err)
}

// NewValidation reports every failing field rule at once. Details lists the
// messages in field order so the error text is stable.
func NewValidation(fields map[string]string) *AppError {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fields[k])
	}
	e := NewAppError(ErrInvalidInput, "Invalid input provided", strings.Join(msgs, ", "), nil)
	e.Fields = fields
	return e
}

func NewConflict(resource, field, value string) *AppError {
	msg := fmt.Sprintf("%s conflict", resource)
	details := fmt.Sprintf("%s with %s '%s' already exists", resource, field, value)
	return NewAppError(ErrConflict, msg, details, nil)
}

func NewInternal(details string, err error) *AppError {
	return NewAppError(ErrInternal, "An internal server error occurred", details, err)
}

func NewUnauthorized(details string, err error) *AppError {
	return NewAppError(ErrUnauthorized, "Invalid credentials", details, err)
}

func NewNotAuthenticated(details string) *AppError {
	return NewAppError(ErrUnauthorized, "Not authenticated", details, nil)
}

func NewPermissionDenied(details string) *AppError {
	return NewAppError(ErrPermission, "Permission denied", details, nil)
}

// NewStorageStep wraps a persistence failure of one write step. Steps before it
// may already be committed.
func NewStorageStep(step, label string, err error) *AppError {
	e := NewAppError(ErrInternal, fmt.Sprintf("Failed to save %s", label), fmt.Sprintf("write step '%s' failed", step), err)
	e.Step = step
	return e
}

func NewUpstream(step, label string, err error) *AppError {
	e := NewAppError(ErrUpstream, fmt.Sprintf("Failed to update %s", label), "credential provider rejected the change", err)
	e.Step = step
	return e
}

// StepOf returns the failing write step carried by err, if any.
func StepOf(err error) (string, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Step != "" {
		return appErr.Step, true
	}
	return "", false
}

func ToHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrPermission) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrConflict) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrUpstream) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (e *AppError) ToJSON() gin.H {
	body := gin.H{
		"success": false,
		"error":   e.BaseError.Error(),
		"message": e.Message,
	}
	if e.Step != "" {
		body["step"] = e.Step
	}
	if len(e.Fields) > 0 {
		body["fields"] = e.Fields
	}
	return body
}
