package model

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeFetchFailed     = "FETCH_FAILED"
	ErrCodeProductNotFound = "PRODUCT_NOT_FOUND"
	ErrCodeMissingField    = "MISSING_FIELD"
	ErrCodeInvalidParam    = "INVALID_PARAMETER"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// Messages raised by catalogue sources.
const (
	MsgFetchProducts       = "Failed to fetch products"
	MsgFetchProductDetails = "Failed to fetch product details"
)

// User-facing messages rendered by the views.
const (
	MsgLoadProductsFailed = "Failed to load products. Please try again."
	MsgLoadDetailsFailed  = "Failed to load product details. Please try again."
	MsgProductIDMissing   = "Product ID is missing"
	MsgNoProducts         = "No products available."
	MsgNoMatches          = "No products found matching your search."
	MsgPageNotFound       = "Page Not Found"
)

// FetchError reports a failed catalogue read: a non-success status or a transport
// failure. StatusCode is zero when no response was received.
type FetchError struct {
	Op         string
	Message    string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether the source answered that the item does not exist.
func (e *FetchError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// ValidationError reports a missing or malformed required input, such as an
// absent product id in the route.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewFetchError creates a new fetch error.
func NewFetchError(op, message string, status int, err error) *FetchError {
	return &FetchError{
		Op:         op,
		Message:    message,
		StatusCode: status,
		Err:        err,
	}
}

// Common domain errors
var (
	ErrProductIDMissing = &ValidationError{Field: "id", Message: MsgProductIDMissing}
)

// AsFetchError unwraps err into a *FetchError when possible.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
