package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Gateway communication (GW) ----

// ErrGatewayUnavailable marks a transient provider failure; callers may retry
// with bounded backoff.
func ErrGatewayUnavailable(gateway string, err error) *AppError {
	return Wrap("GW_001", fmt.Sprintf("Gateway %s unavailable", gateway), http.StatusBadGateway, err)
}

func ErrInvalidGatewayRequest(message string) *AppError {
	return New("GW_002", message, http.StatusBadRequest)
}

// ErrUnknownGatewayStatus marks a raw status missing from the adapter's
// translation table. A mapping defect, never silently defaulted.
func ErrUnknownGatewayStatus(gateway, rawStatus string) *AppError {
	return New("GW_003", fmt.Sprintf("Unmapped %s status %q", gateway, rawStatus), http.StatusUnprocessableEntity)
}

func ErrNotCancelable(transactionID string) *AppError {
	return New("GW_004", fmt.Sprintf("Transaction %s is past a cancelable state", transactionID), http.StatusConflict)
}

func ErrGatewayNotConfigured(gateway string) *AppError {
	return New(CodeGatewayNotConfigured, fmt.Sprintf("Gateway %s is not configured or inactive", gateway), http.StatusNotFound)
}

// CodeGatewayNotConfigured identifies the unknown-or-inactive gateway error.
const CodeGatewayNotConfigured = "GW_005"

// IsGatewayNotConfigured reports whether err (or anything it wraps) is the
// unknown-or-inactive gateway error.
func IsGatewayNotConfigured(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == CodeGatewayNotConfigured
}

// ---- Reconciliation (REC) ----

func ErrTransactionNotFound(reference string) *AppError {
	return New("REC_001", fmt.Sprintf("Transaction not found: %s", reference), http.StatusNotFound)
}

func ErrIllegalTransition(from, to string) *AppError {
	return New("REC_002", fmt.Sprintf("Illegal status transition %s -> %s", from, to), http.StatusConflict)
}

func ErrOrderNotFound(orderID int64) *AppError {
	return New("REC_003", fmt.Sprintf("Order not found: %d", orderID), http.StatusNotFound)
}

// ---- Refund business rules (PAY) ----

func ErrAmountExceedsBalance() *AppError {
	return New("PAY_001", "Refund amount exceeds remaining transaction balance", http.StatusBadRequest)
}

func ErrAlreadyRefunded() *AppError {
	return New("PAY_002", "Transaction has already been fully refunded", http.StatusConflict)
}

func ErrNotRefundable(status string) *AppError {
	return New("PAY_003", fmt.Sprintf("Transaction with status %q is not refundable", status), http.StatusBadRequest)
}

func ErrInvalidAmount() *AppError {
	return New("PAY_004", "Invalid amount", http.StatusBadRequest)
}

// ---- Security & authentication (SEC / AUTH) ----

func ErrInvalidSignature() *AppError {
	return New("SEC_001", "Invalid webhook signature", http.StatusUnauthorized)
}

func ErrInvalidCSRFToken() *AppError {
	return New("SEC_002", "Invalid or missing CSRF token", http.StatusForbidden)
}

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_002", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrOperatorSuspended() *AppError {
	return New("AUTH_003", "Operator account is suspended", http.StatusForbidden)
}

// ---- Rate limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("SYS_002", message, http.StatusBadRequest)
}
