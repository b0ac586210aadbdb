package asyncerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := &ParseError{
			Path:    "/path/to/kafka.yaml",
			Line:    42,
			Column:  10,
			Message: "invalid syntax",
			Cause:   cause,
		}
		assert.Equal(t, "parse error in /path/to/kafka.yaml at line 42, column 10: invalid syntax: underlying error", err.Error())
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		assert.Equal(t, "parse error", (&ParseError{}).Error())
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &ParseError{Cause: cause}
		assert.Same(t, cause, err.Unwrap())
	})

	t.Run("Is matches ErrParse only", func(t *testing.T) {
		err := &ParseError{Message: "test"}
		assert.ErrorIs(t, err, ErrParse)
		assert.NotErrorIs(t, err, ErrValidation)
		assert.NotErrorIs(t, err, ErrConfig)
	})

	t.Run("As extracts ParseError through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("asyncapi: %w", &ParseError{Path: "amqp.yaml"})
		var parseErr *ParseError
		require.ErrorAs(t, wrapped, &parseErr)
		assert.Equal(t, "amqp.yaml", parseErr.Path)
	})
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		expected string
	}{
		{
			name:     "all fields",
			err:      &ValidationError{Source: "kafka", Path: "channels.orders", Index: 2, Message: "channel is nil"},
			expected: "validation error in kafka at channels.orders (entry 2): channel is nil",
		},
		{
			name:     "no index",
			err:      &ValidationError{Path: "operations", Index: -1, Message: "empty name"},
			expected: "validation error at operations: empty name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrValidation)
		})
	}
}

func TestScanError(t *testing.T) {
	cause := errors.New("no packages matched")
	err := &ScanError{Scanner: "annotations", Protocol: "kafka", Cause: cause}

	assert.Equal(t, "scan error in annotations (kafka): no packages matched", err.Error())
	assert.ErrorIs(t, err, ErrScan)
	assert.ErrorIs(t, err, cause)
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Option: "format", Value: "xml", Message: "unsupported output format"}
	assert.Equal(t, "configuration error for format (value: xml): unsupported output format", err.Error())
	assert.ErrorIs(t, err, ErrConfig)
	assert.Nil(t, err.Unwrap())
}

func TestInvariantError(t *testing.T) {
	err := &InvariantError{Component: "merger.MergeChannels", Message: `nil channel for "orders"`}
	assert.Equal(t, `invariant violation in merger.MergeChannels: nil channel for "orders"`, err.Error())
	assert.ErrorIs(t, err, ErrInvariant)
	assert.NotErrorIs(t, err, ErrValidation)
}
