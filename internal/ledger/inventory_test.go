package ledger

import (
	"context"
	"testing"

	"github.com/labtools/labledger/internal/common"
	"github.com/labtools/labledger/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComponent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("requires an identifier", func(t *testing.T) {
		_, err := f.inventory.CreateComponent(ctx, "", "", mustDecimal(t, "1"), 0, "")
		require.ErrorIs(t, err, ErrMissingIdentifier)
		require.ErrorIs(t, err, common.ErrValidation)
	})

	t.Run("rejects unknown categories", func(t *testing.T) {
		_, err := f.inventory.CreateComponent(ctx, "R1", "", mustDecimal(t, "1"), 0, "GADGETS")
		require.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("empty category falls back to other", func(t *testing.T) {
		id := f.seedComponent(t, "R1", "0.50", 10)

		c, err := f.inventory.Component(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, model.CategoryOther, c.Category)
	})

	t.Run("duplicate identifiers are allowed", func(t *testing.T) {
		first := f.seedComponent(t, "DUP", "1.00", 1)
		second := f.seedComponent(t, "DUP", "2.00", 1)
		assert.NotEqual(t, first, second)
	})
}

func TestUpdateComponent_CategoryValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.seedComponent(t, "R1", "0.50", 10)

	bad := model.Category("GADGETS")
	err := f.inventory.UpdateComponent(ctx, id, "R1", "", mustDecimal(t, "0.50"), nil, &bad)
	require.ErrorIs(t, err, ErrInvalidCategory)

	good := model.CategoryResistor
	err = f.inventory.UpdateComponent(ctx, id, "R1", "", mustDecimal(t, "0.50"), nil, &good)
	require.NoError(t, err)

	c, err := f.inventory.Component(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryResistor, c.Category)
}

func TestAdjustStockAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.seedComponent(t, "R1", "0.50", 10)

	require.NoError(t, f.inventory.AdjustStock(ctx, id, -12))

	c, err := f.inventory.Component(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(-2), c.Quantity)

	components, err := f.inventory.Components(ctx)
	require.NoError(t, err)
	assert.Len(t, components, 1)
}

func TestComponentByIdentifier(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedComponent(t, "R1", "0.50", 10)

	c, err := f.inventory.ComponentByIdentifier(ctx, "R1")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "R1", c.Identifier)

	c, err = f.inventory.ComponentByIdentifier(ctx, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, c)
}
