package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// Ledger errors. Each maps to a stable Kind recorded on failed journal records.
var (
	ErrCurrencyMismatch     = errors.New("currency mismatch")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrAlreadyPaid          = errors.New("bill already paid")
	ErrSelfTransfer         = errors.New("cannot transfer to the same wallet")
	ErrDuplicateReference   = errors.New("reference already used")
	ErrStoreUnavailable     = errors.New("ledger store unavailable")
	ErrOperationInProgress  = errors.New("operation with this reference is in progress")
	ErrCancelled            = errors.New("operation cancelled")
	ErrConflict             = errors.New("concurrent modification detected")
	ErrInvalidStatusChange  = errors.New("record is not pending")
	ErrUnknownOperationKind = fmt.Errorf("%w: unknown operation kind", ErrValidation)
)

// Kind is the stable, serialisable name of an error class.
type Kind string

const (
	KindCurrencyMismatch    Kind = "CURRENCY_MISMATCH"
	KindInsufficientFunds   Kind = "INSUFFICIENT_FUNDS"
	KindAlreadyPaid         Kind = "ALREADY_PAID"
	KindSelfTransfer        Kind = "SELF_TRANSFER"
	KindNotFound            Kind = "NOT_FOUND"
	KindDuplicateReference  Kind = "DUPLICATE_REFERENCE"
	KindStoreUnavailable    Kind = "STORE_UNAVAILABLE"
	KindValidation          Kind = "VALIDATION"
	KindOperationInProgress Kind = "OPERATION_IN_PROGRESS"
	KindCancelled           Kind = "CANCELLED"
	KindConflict            Kind = "CONFLICT"
	KindInternal            Kind = "INTERNAL"
)

var kindTable = []struct {
	err  error
	kind Kind
}{
	{ErrCurrencyMismatch, KindCurrencyMismatch},
	{ErrInsufficientFunds, KindInsufficientFunds},
	{ErrAlreadyPaid, KindAlreadyPaid},
	{ErrSelfTransfer, KindSelfTransfer},
	{ErrDuplicateReference, KindDuplicateReference},
	{ErrNotFound, KindNotFound},
	{ErrOperationInProgress, KindOperationInProgress},
	{ErrCancelled, KindCancelled},
	{ErrConflict, KindConflict},
	{ErrStoreUnavailable, KindStoreUnavailable},
	{ErrValidation, KindValidation},
	{ErrDuplicate, KindConflict},
}

// KindOf classifies err. Context cancellation is reported as CANCELLED.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	for _, entry := range kindTable {
		if errors.Is(err, entry.err) {
			return entry.kind
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindCancelled
	}
	return KindInternal
}

// FromKind returns the sentinel for a recorded kind, used when replaying a failed operation.
func FromKind(kind Kind) error {
	for _, entry := range kindTable {
		if entry.kind == kind {
			return entry.err
		}
	}
	return fmt.Errorf("operation failed: %s", kind)
}

// HTTPStatus maps an error to the status code the API responds with.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAlreadyPaid, KindOperationInProgress, KindConflict, KindDuplicateReference:
		return http.StatusConflict
	case KindInsufficientFunds, KindCurrencyMismatch, KindSelfTransfer:
		return http.StatusUnprocessableEntity
	case KindStoreUnavailable:
		return http.StatusServiceUnavailable
	case KindCancelled:
		return 499
	default:
		return http.StatusInternalServerError
	}
}

// AppError carries an HTTP code and a client safe message alongside the cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError wraps ErrNotFound with the name of the missing resource.
func NewNotFoundError(resource string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, resource)
}
