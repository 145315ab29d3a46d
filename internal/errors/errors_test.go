package appErrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerationErrorWrapsCause(t *testing.T) {
	cause := fmt.Errorf("decode: %w", ErrMalformedResponse)
	err := NewGenerationError(cause)

	assert.True(t, errors.Is(err, ErrMalformedResponse))
	assert.Contains(t, err.Error(), GenerationFailedMessage)

	var genErr *GenerationError
	assert.True(t, errors.As(err, &genErr))
	assert.Equal(t, GenerationFailedMessage, genErr.Message)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, GenerationFailedMessage, UserMessage(NewGenerationError(errors.New("boom"))))
	assert.Equal(t, UnknownErrorMessage, UserMessage(errors.New("boom")))
	assert.Equal(t, UnknownErrorMessage, UserMessage(&GenerationError{}))
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("API_KEY")
	assert.Equal(t, "API_KEY environment variable is not set", err.Error())
}
