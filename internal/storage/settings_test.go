package storage

import (
	"context"
	"testing"

	"github.com/labtools/labledger/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("missing key is not found", func(t *testing.T) {
		_, err := store.GetSetting(ctx, "confirm_purchases")
		require.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, store.SetSetting(ctx, "confirm_purchases", "false"))

		value, err := store.GetSetting(ctx, "confirm_purchases")
		require.NoError(t, err)
		assert.Equal(t, "false", value)
	})

	t.Run("set replaces existing value", func(t *testing.T) {
		require.NoError(t, store.SetSetting(ctx, "confirm_purchases", "true"))

		value, err := store.GetSetting(ctx, "confirm_purchases")
		require.NoError(t, err)
		assert.Equal(t, "true", value)
	})

	t.Run("list returns all stored keys", func(t *testing.T) {
		require.NoError(t, store.SetSetting(ctx, "show_info_popups", "true"))

		all, err := store.ListSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, "true", all["confirm_purchases"])
		assert.Equal(t, "true", all["show_info_popups"])
	})
}
