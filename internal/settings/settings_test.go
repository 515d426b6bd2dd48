package settings

import (
	"context"
	"testing"

	"github.com/labtools/labledger/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_DefaultsForMissingKeys(t *testing.T) {
	svc := NewService(testutil.SetupTestDB(t))
	ctx := context.Background()

	tests := []struct {
		key  string
		want string
	}{
		{KeyConfirmPurchases, "true"},
		{KeyShowSuccessPopups, "false"},
		{KeyShowInfoPopups, "false"},
		{KeyConfirmCategoryChanges, "true"},
		{"unknown_key", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			value, err := svc.Get(ctx, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, value)
		})
	}
}

func TestSetThenGet(t *testing.T) {
	svc := NewService(testutil.SetupTestDB(t))
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, KeyConfirmPurchases, "false"))

	value, err := svc.Get(ctx, KeyConfirmPurchases)
	require.NoError(t, err)
	assert.Equal(t, "false", value)
}

func TestBool(t *testing.T) {
	svc := NewService(testutil.SetupTestDB(t))
	ctx := context.Background()

	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "lowercase true", value: "true", want: true},
		{name: "uppercase TRUE", value: "TRUE", want: true},
		{name: "mixed case True", value: "True", want: true},
		{name: "false", value: "false", want: false},
		{name: "garbage is false", value: "yes", want: false},
		{name: "empty is false", value: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, svc.Set(ctx, KeyShowInfoPopups, tt.value))

			got, err := svc.Bool(ctx, KeyShowInfoPopups)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unset key uses its default", func(t *testing.T) {
		got, err := svc.Bool(ctx, KeyConfirmPurchases)
		require.NoError(t, err)
		assert.True(t, got)
	})
}

func TestAll(t *testing.T) {
	svc := NewService(testutil.SetupTestDB(t))
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, KeyShowSuccessPopups, "true"))

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(Defaults))
	assert.Equal(t, "true", all[KeyShowSuccessPopups], "stored value overlays the default")
	assert.Equal(t, "true", all[KeyConfirmPurchases], "untouched keys keep their defaults")
}
