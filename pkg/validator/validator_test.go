package validator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUUID(t *testing.T) {
	valid := []string{
		"11111111-1111-4111-8111-111111111111",
		"a6e5efc2-6f41-4b4e-9a4e-6b2f3c1d2e4f",
		"A6E5EFC2-6F41-4B4E-9A4E-6B2F3C1D2E4F",
	}
	for _, s := range valid {
		assert.True(t, IsUUID(s), s)
	}

	invalid := []string{
		"",
		"not-a-uuid",
		"11111111-1111-1111-1111-111111111111",  // version 1 shape
		"11111111-1111-4111-0111-111111111111",  // bad variant nibble
		"11111111-1111-4111-8111-11111111111",   // too short
		"11111111-1111-4111-8111-1111111111111", // too long
	}
	for _, s := range invalid {
		assert.False(t, IsUUID(s), s)
	}
}

func TestUUID(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var errs Errors
		UUID("idSecondUser", "11111111-1111-4111-8111-111111111111", &errs)
		assert.False(t, errs.HasErrors())
	})

	t.Run("missing", func(t *testing.T) {
		var errs Errors
		UUID("idSecondUser", "", &errs)
		require.Len(t, errs, 1)
		assert.Equal(t, "idSecondUser", errs[0].Field)
		assert.Contains(t, errs[0].Message, "required")
	})

	t.Run("malformed", func(t *testing.T) {
		var errs Errors
		UUID("idSecondUser", "nope", &errs)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "valid UUID")
	})
}

func TestOptionalUUID(t *testing.T) {
	var errs Errors
	OptionalUUID("idFirstUser", "", &errs)
	assert.False(t, errs.HasErrors())

	OptionalUUID("idFirstUser", "nope", &errs)
	assert.True(t, errs.HasErrors())
}

func TestBool(t *testing.T) {
	tests := []struct {
		name      string
		value     any
		want      bool
		wantOK    bool
		wantError bool
	}{
		{"nil passes through", nil, false, false, false},
		{"native true", true, true, true, false},
		{"native false", false, false, true, false},
		{"string true coerced", "true", true, true, false},
		{"string false coerced", "false", false, true, false},
		{"bad string", "yes", false, false, true},
		{"bad type", 42.0, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errs Errors
			got, ok := Bool("state", tt.value, &errs)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantError, errs.HasErrors())
		})
	}
}

func TestDecodeObject(t *testing.T) {
	type dst struct {
		Name string `json:"name"`
	}

	t.Run("empty payload decodes as empty object", func(t *testing.T) {
		var d dst
		require.NoError(t, DecodeObject(nil, &d))
		assert.Empty(t, d.Name)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		payload := json.RawMessage(`{"name":"a"}`)
		before := string(payload)
		var d dst
		require.NoError(t, DecodeObject(payload, &d))
		assert.Equal(t, before, string(payload))
		assert.Equal(t, "a", d.Name)
	})

	t.Run("malformed payload errors", func(t *testing.T) {
		var d dst
		require.Error(t, DecodeObject(json.RawMessage(`{`), &d))
	})
}
