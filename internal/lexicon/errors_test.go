package lexicon

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorf_Helpers(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"schema", SchemaErrorf("missing %s", "meanings"), ErrSchema},
		{"transport", TransportErrorf("status %d", 503), ErrTransport},
		{"config", ConfigErrorf("no key"), ErrConfiguration},
		{"not found", NotFoundErrorf("word %q", "apple"), ErrNotFound},
		{"not configured", NotConfiguredErrorf("no active provider"), ErrNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			for _, other := range []error{ErrSchema, ErrTransport, ErrConfiguration, ErrNotFound, ErrNotConfigured} {
				if other != tt.sentinel {
					assert.False(t, errors.Is(tt.err, other), "%v should not match %v", tt.err, other)
				}
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("word", "must not be empty")

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "validation error: word: must not be empty", err.Error())
	assert.Equal(t, "validation error: bad input", (&ValidationError{Message: "bad input"}).Error())
}

func TestProviderError_Message(t *testing.T) {
	err := &ProviderError{Provider: "yi", Op: "get_word_info", Word: "apple", StatusCode: 502, Err: TransportErrorf("bad gateway")}

	assert.Equal(t, `yi get_word_info "apple" (status 502): transport error: bad gateway`, err.Error())
}

func TestConflictErrorf(t *testing.T) {
	err := ConflictErrorf("word %q", "apple")

	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, `already exists: word "apple"`, err.Error())
}
