package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailTaken is returned when registering an email that already has an account.
	ErrEmailTaken = errors.New("user already exists")
	// ErrUserNotFound is returned when logging in with an unknown email.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned when the password comparison fails.
	ErrInvalidCredentials = errors.New("invalid password")
	// ErrBudgetExists is returned when creating a budget for a user that already has one.
	ErrBudgetExists = errors.New("budget already exists")
	// ErrBudgetNotFound is returned when the user has no budget yet.
	ErrBudgetNotFound = errors.New("budget not found")
	// ErrItemNotFound is returned when a budget item id does not match any item
	// in the caller's budget. Items in other users' budgets look the same.
	ErrItemNotFound = errors.New("item not found")
	// ErrExpenseNotFound is returned when no expense with the given id is owned
	// by the caller. Other users' expenses look the same.
	ErrExpenseNotFound = errors.New("expense not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Conflicts and credential
// failures are plain 400s; only resource misses rate a 404. Anything unknown is
// a storage failure and echoes its detail.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USER_EXISTS")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrBudgetExists):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "BUDGET_EXISTS")
	case errors.Is(err, ErrBudgetNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "BUDGET_NOT_FOUND")
	case errors.Is(err, ErrItemNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ITEM_NOT_FOUND")
	case errors.Is(err, ErrExpenseNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "EXPENSE_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
	}
}
