package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error
	ErrTypeNetwork ErrorType = iota
	// ErrTypeHTTP indicates a non-2xx status from the backend
	ErrTypeHTTP
	// ErrTypeParse indicates a malformed response
	ErrTypeParse
	// ErrTypeValidation indicates an invalid request built by the caller
	ErrTypeValidation
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the backend is not listening
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeCanceled indicates the caller canceled the request
	ErrTypeCanceled
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeValidation:
		return "Validation Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeCanceled:
		return "Canceled"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// APIError represents a failure talking to the wallet backend
type APIError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Err        error     // Underlying error (if any)
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *APIError) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError analyzes a transport error and returns a typed error
func ClassifyNetworkError(err error) *APIError {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return &APIError{Type: ErrTypeTimeout, Message: "Request timed out", Err: err}
	}

	if errors.Is(err, context.Canceled) {
		return &APIError{Type: ErrTypeCanceled, Message: "Request canceled", Err: err}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &APIError{
			Type:    ErrTypeDNS,
			Message: fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:     err,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return &APIError{Type: ErrTypeConnectionRefused, Message: "Backend refused connection", Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil && urlErr.Err != err {
		return ClassifyNetworkError(urlErr.Err)
	}

	return &APIError{Type: ErrTypeNetwork, Message: "Network error occurred", Err: err}
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(message string, err error) *APIError {
	if classified := ClassifyNetworkError(err); classified != nil {
		classified.Message = message
		return classified
	}
	return &APIError{Type: ErrTypeNetwork, Message: message, Err: err}
}

// NewHTTPError creates an HTTP-level error
func NewHTTPError(statusCode int, message string) *APIError {
	return &APIError{Type: ErrTypeHTTP, Message: message, StatusCode: statusCode}
}

// NewParseError creates a parsing error
func NewParseError(message string, err error) *APIError {
	return &APIError{Type: ErrTypeParse, Message: message, Err: err}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *APIError {
	return &APIError{Type: ErrTypeValidation, Message: message}
}

func asAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNetworkError reports whether err is a transport failure (including
// timeout, connection refused and DNS)
func IsNetworkError(err error) bool {
	if apiErr, ok := asAPIError(err); ok {
		switch apiErr.Type {
		case ErrTypeNetwork, ErrTypeTimeout, ErrTypeConnectionRefused, ErrTypeDNS:
			return true
		}
	}
	return false
}

// IsHTTPError checks if an error is an HTTP error
func IsHTTPError(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.Type == ErrTypeHTTP
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.Type == ErrTypeParse
}

// IsCanceled checks if the request was canceled by the caller
func IsCanceled(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.Type == ErrTypeCanceled
}

// GetShortErrorMessage returns a concise, user-friendly error message
func GetShortErrorMessage(err error) string {
	apiErr, ok := asAPIError(err)
	if !ok {
		return err.Error()
	}

	switch apiErr.Type {
	case ErrTypeTimeout:
		return "Wallet backend not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Wallet backend refused connection - is the app running?"
	case ErrTypeDNS:
		return "Cannot resolve wallet backend hostname"
	case ErrTypeNetwork:
		return "Network error - check connection to the wallet backend"
	case ErrTypeHTTP:
		return fmt.Sprintf("Wallet backend error (HTTP %d)", apiErr.StatusCode)
	case ErrTypeParse:
		return "Failed to parse wallet backend response"
	case ErrTypeCanceled:
		return "Request canceled"
	default:
		return apiErr.Message
	}
}

// GetTroubleshootingHint returns user-friendly troubleshooting advice for an error
func GetTroubleshootingHint(err error) string {
	apiErr, ok := asAPIError(err)
	if !ok {
		return "An unexpected error occurred. Please try again."
	}

	switch apiErr.Type {
	case ErrTypeConnectionRefused, ErrTypeNetwork, ErrTypeDNS:
		return strings.Join([]string{
			"Could not reach the wallet backend.",
			"Troubleshooting:",
			"  • Make sure the wallet app is running",
			"  • Check the --backend URL (default " + DefaultBaseURL + ")",
			"  • Reconnect the device and try again",
		}, "\n")

	case ErrTypeTimeout:
		return strings.Join([]string{
			"The wallet backend did not answer in time.",
			"Troubleshooting:",
			"  • Confirm any pending request on the device",
			"  • Increase --timeout",
		}, "\n")

	case ErrTypeHTTP:
		if apiErr.StatusCode == 404 {
			return "The device is no longer registered. Reconnect it and try again."
		}
		return fmt.Sprintf("The wallet backend returned HTTP %d.", apiErr.StatusCode)

	case ErrTypeParse:
		return "The wallet backend sent an unexpected response. Check that the app and this tool are up to date."

	default:
		return "An error occurred. Please check the error message for details."
	}
}
