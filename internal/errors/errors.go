// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

const (
	GenerationFailedMessage = "Failed to generate marketing campaign. The model may be unavailable or the request could not be processed."
	UnknownErrorMessage     = "An unknown error occurred. Please try again."
)

// ErrMalformedResponse marks a model reply that is not JSON or does not match the campaign shape.
var ErrMalformedResponse = errors.New("malformed campaign response")

// GenerationError is returned for every failed generation. Message is safe to show to users,
// Cause is not.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

func NewGenerationError(cause error) error {
	return &GenerationError{Message: GenerationFailedMessage, Cause: cause}
}

// UserMessage picks the text shown in the error panel for err.
func UserMessage(err error) string {
	var genErr *GenerationError
	if errors.As(err, &genErr) && genErr.Message != "" {
		return genErr.Message
	}
	return UnknownErrorMessage
}

// ConfigError is fatal: the process cannot start without the named setting.
type ConfigError struct {
	Key string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s environment variable is not set", e.Key)
}

func NewConfigError(key string) error {
	return &ConfigError{Key: key}
}

// ErrGenerationNotFound is returned when a stored generation does not exist.
type ErrGenerationNotFound struct {
	GenerationID int
}

func (e *ErrGenerationNotFound) Error() string {
	return fmt.Sprintf("generation with ID %d not found", e.GenerationID)
}

func NewGenerationNotFound(id int) error {
	return &ErrGenerationNotFound{GenerationID: id}
}
