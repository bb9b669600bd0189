// internal/apperrors/errors.go
package apperrors

import (
	"fmt"
	"net/http"
)

// AppError is implemented by every business error the services return.
// Handlers use it to pick the HTTP status and machine-readable code; the
// message is safe to show to a UI.
type AppError interface {
	error
	Code() string
	HTTPStatus() int
}

type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string   { return e.Msg }
func (e *UnauthorizedError) Code() string    { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int { return http.StatusUnauthorized }

func NewUnauthorized(msg string) error {
	if msg == "" {
		msg = "Unauthorized"
	}
	return &UnauthorizedError{Msg: msg}
}

type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string   { return e.Msg }
func (e *ForbiddenError) Code() string    { return "FORBIDDEN" }
func (e *ForbiddenError) HTTPStatus() int { return http.StatusForbidden }

func NewForbidden(msg string) error {
	return &ForbiddenError{Msg: msg}
}

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string   { return e.Resource + " not found" }
func (e *NotFoundError) Code() string    { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int { return http.StatusNotFound }

func NewNotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string   { return e.Msg }
func (e *ValidationError) Code() string    { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int { return http.StatusBadRequest }

func NewValidation(msg string) error {
	return &ValidationError{Msg: msg}
}

type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string   { return e.Msg }
func (e *ConflictError) Code() string    { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int { return http.StatusConflict }

func NewConflict(msg string) error {
	return &ConflictError{Msg: msg}
}

// InsufficientStockError carries the quantity still available so the UI can
// report it directly.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Not enough stock. Available: %d", e.Available)
}
func (e *InsufficientStockError) Code() string    { return "INSUFFICIENT_STOCK" }
func (e *InsufficientStockError) HTTPStatus() int { return http.StatusBadRequest }

func NewInsufficientStock(available int) error {
	return &InsufficientStockError{Available: available}
}

// TransactionFailureError wraps a store failure. It is surfaced generically,
// never exposing store internals to the caller; the cause is for logs only.
type TransactionFailureError struct {
	Op  string
	Err error
}

func (e *TransactionFailureError) Error() string {
	return fmt.Sprintf("transaction failed: %s", e.Op)
}
func (e *TransactionFailureError) Code() string    { return "TRANSACTION_FAILURE" }
func (e *TransactionFailureError) HTTPStatus() int { return http.StatusInternalServerError }
func (e *TransactionFailureError) Unwrap() error   { return e.Err }

func NewTransactionFailure(op string, err error) error {
	return &TransactionFailureError{Op: op, Err: err}
}
