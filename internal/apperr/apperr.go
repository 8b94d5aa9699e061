// Package apperr defines the user-facing validation failures returned by the
// ledger services. Each failure aborts its unit of work; nothing is persisted.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a ValidationError.
type Kind string

const (
	KindMissingField          Kind = "missing_field"
	KindUnbalancedEntry       Kind = "unbalanced_entry"
	KindDuplicateAccountCode  Kind = "duplicate_account_code"
	KindUnparsableDate        Kind = "unparsable_date"
	KindMissingRequiredColumn Kind = "missing_required_column"
	KindInvalidAmount         Kind = "invalid_amount"
	KindInvalidAccountType    Kind = "invalid_account_type"
	KindUnknownAccount        Kind = "unknown_account"
	KindAccountInUse          Kind = "account_in_use"
	KindNotFound              Kind = "not_found"
	KindUnsupportedFormat     Kind = "unsupported_format"
)

// ValidationError is a recoverable failure with a human-readable message.
type ValidationError struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s [%s]: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches any ValidationError of the same kind, so the sentinels below work
// with errors.Is regardless of field or message.
func (e *ValidationError) Is(target error) bool {
	var t *ValidationError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrMissingField          = &ValidationError{Kind: KindMissingField}
	ErrUnbalancedEntry       = &ValidationError{Kind: KindUnbalancedEntry}
	ErrDuplicateAccountCode  = &ValidationError{Kind: KindDuplicateAccountCode}
	ErrUnparsableDate        = &ValidationError{Kind: KindUnparsableDate}
	ErrMissingRequiredColumn = &ValidationError{Kind: KindMissingRequiredColumn}
	ErrInvalidAmount         = &ValidationError{Kind: KindInvalidAmount}
	ErrInvalidAccountType    = &ValidationError{Kind: KindInvalidAccountType}
	ErrUnknownAccount        = &ValidationError{Kind: KindUnknownAccount}
	ErrAccountInUse          = &ValidationError{Kind: KindAccountInUse}
	ErrNotFound              = &ValidationError{Kind: KindNotFound}
	ErrUnsupportedFormat     = &ValidationError{Kind: KindUnsupportedFormat}
)

// New returns a ValidationError of the given kind.
func New(kind Kind, field, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}

func MissingField(field string) *ValidationError {
	return New(KindMissingField, field, "%s is required", field)
}

func NotFound(what string, id any) *ValidationError {
	return New(KindNotFound, what, "%s %v not found", what, id)
}

// As extracts the ValidationError from err, if any.
func As(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
