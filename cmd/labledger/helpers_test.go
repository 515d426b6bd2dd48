package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "valid id", input: "42", want: 42},
		{name: "zero is invalid", input: "0", wantErr: true},
		{name: "negative is invalid", input: "-1", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInt(t *testing.T) {
	got, err := parseInt("-5")
	require.NoError(t, err)
	assert.Equal(t, int64(-5), got)

	_, err = parseInt("five")
	require.Error(t, err)
}

func TestParseMoney(t *testing.T) {
	t.Run("empty defaults to zero", func(t *testing.T) {
		got, err := parseMoney("", "balance")
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})

	t.Run("decimal amount", func(t *testing.T) {
		got, err := parseMoney("12.50", "balance")
		require.NoError(t, err)
		assert.Equal(t, "12.50", got.StringFixed(2))
	})

	t.Run("invalid amount names the flag", func(t *testing.T) {
		_, err := parseMoney("lots", "balance")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--balance")
	})
}
