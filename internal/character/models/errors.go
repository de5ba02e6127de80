package models

import (
	"fmt"
)

// UpstreamError reports a transport failure or non-2xx response from the
// character API. StatusCode is zero when no response was received.
type UpstreamError struct {
	Path       string
	StatusCode int
	Timeout    bool
	Cause      error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("upstream GET %s: status %d", e.Path, e.StatusCode)
	case e.Cause != nil:
		return fmt.Sprintf("upstream GET %s: %v", e.Path, e.Cause)
	default:
		return fmt.Sprintf("upstream GET %s failed", e.Path)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// maxRawLen bounds the payload excerpt kept on a DecodeError.
const maxRawLen = 256

// DecodeError reports a response body that does not match the character or
// collection shape. Field is the JSON path of the offending field, empty when
// the body as a whole is unusable.
type DecodeError struct {
	Field string
	Raw   string
	Cause error
}

// NewDecodeError builds a DecodeError, truncating raw to a short excerpt.
func NewDecodeError(field string, raw []byte, cause error) *DecodeError {
	excerpt := string(raw)
	if len(excerpt) > maxRawLen {
		excerpt = excerpt[:maxRawLen] + "..."
	}
	return &DecodeError{Field: field, Raw: excerpt, Cause: cause}
}

func (e *DecodeError) Error() string {
	field := e.Field
	if field == "" {
		field = "body"
	}
	if e.Cause != nil {
		return fmt.Sprintf("decode upstream %s: %v", field, e.Cause)
	}
	return fmt.Sprintf("decode upstream %s: invalid value", field)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// NotFoundError reports that no upstream character exists for ID.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("character %d not found", e.ID)
}
