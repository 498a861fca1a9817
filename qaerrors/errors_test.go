package qaerrors

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorMessage(t *testing.T) {
	err := NewTimestampParseError("yesterday", 7, io.ErrUnexpectedEOF)

	assert.Equal(t, `[TIMESTAMP_PARSE] cannot parse timestamp "yesterday" (line=7): unexpected EOF`, err.Error())
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{"file format", NewFileFormatError("missing header", nil), IsFileFormat},
		{"timestamp", NewTimestampParseError("x", 1, nil), IsTimestampParse},
		{"schema", NewSchemaError("missing PM25", nil), IsSchema},
		{"mismatch", NewSchemaMismatchError("columns differ", nil), IsSchemaMismatch},
		{"config", NewConfigError("bad window", nil), IsConfig},
		{"validation", NewValidationError("empty label", nil), IsValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("clean run: %w", tt.err)
			assert.True(t, tt.pred(wrapped))
		})
	}

	assert.False(t, IsFileFormat(errors.New("plain")))
	assert.False(t, IsSchema(NewSchemaMismatchError("x", nil)))
}

func TestTypeOf(t *testing.T) {
	typ, ok := TypeOf(fmt.Errorf("outer: %w", NewIOError("write", io.ErrShortWrite)))
	require.True(t, ok)
	assert.Equal(t, ErrTypeIO, typ)

	_, ok = TypeOf(io.EOF)
	assert.False(t, ok)
}
