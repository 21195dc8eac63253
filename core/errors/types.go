// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors for better error handling and API responses

package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ParseError indicates that source HTML could not be turned into a document tree.
// Callers fall back to rendering the content as a single opaque text block with
// highlighting disabled.
type ParseError struct {
	Reason string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse document: %s", e.Reason)
}

// OffsetOutOfRangeError indicates an offset range that does not fit the
// canonical text of the current content version.
type OffsetOutOfRangeError struct {
	Start       int
	End         int
	TotalLength int
}

// Error implements the error interface
func (e *OffsetOutOfRangeError) Error() string {
	return fmt.Sprintf("offset range [%d,%d) out of range for text of length %d", e.Start, e.End, e.TotalLength)
}

// EmptyRangeError indicates a zero-length or inverted highlight range
type EmptyRangeError struct {
	Start int
	End   int
}

// Error implements the error interface
func (e *EmptyRangeError) Error() string {
	return fmt.Sprintf("highlight range [%d,%d) is empty", e.Start, e.End)
}

// ExternalAPIError represents an error from an external API
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsParse checks if an error is a ParseError
func IsParse(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// IsOffsetOutOfRange checks if an error is an OffsetOutOfRangeError
func IsOffsetOutOfRange(err error) bool {
	var offsetErr *OffsetOutOfRangeError
	return errors.As(err, &offsetErr)
}

// IsEmptyRange checks if an error is an EmptyRangeError
func IsEmptyRange(err error) bool {
	var emptyErr *EmptyRangeError
	return errors.As(err, &emptyErr)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
