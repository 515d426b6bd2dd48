package storage

import (
	"context"
	"testing"

	"github.com/labtools/labledger/internal/common"
	"github.com/labtools/labledger/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComponent_DefaultsCategory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id := seedComponent(t, store, "R1", "resistor", "0.50", 10)

	c, err := store.GetComponentByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryOther, c.Category)
	assert.Equal(t, "R1", c.Identifier)
	assert.True(t, mustDecimal(t, "0.50").Equal(c.Price))
}

func TestCreateComponent_AllowsDuplicateIdentifiers(t *testing.T) {
	store := newTestStore(t)

	first := seedComponent(t, store, "R1", "first", "0.50", 10)
	second := seedComponent(t, store, "R1", "second", "0.75", 20)
	assert.NotEqual(t, first, second)
}

func TestGetComponentByID_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetComponentByID(context.Background(), 999)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetComponentByIdentifier(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("missing identifier returns nil without error", func(t *testing.T) {
		c, err := store.GetComponentByIdentifier(ctx, "NOPE")
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("duplicate identifiers resolve to the lowest id", func(t *testing.T) {
		first := seedComponent(t, store, "C10", "first", "1.00", 5)
		seedComponent(t, store, "C10", "second", "2.00", 5)

		c, err := store.GetComponentByIdentifier(ctx, "C10")
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, first, c.ID)
		assert.Equal(t, "first", c.Description)
	})
}

func TestListComponents_OrdersByIdentifier(t *testing.T) {
	store := newTestStore(t)

	seedComponent(t, store, "ZENER", "", "1.00", 1)
	seedComponent(t, store, "BC547", "", "1.00", 1)
	seedComponent(t, store, "LM358", "", "1.00", 1)

	components, err := store.ListComponents(context.Background())
	require.NoError(t, err)
	require.Len(t, components, 3)
	assert.Equal(t, "BC547", components[0].Identifier)
	assert.Equal(t, "LM358", components[1].Identifier)
	assert.Equal(t, "ZENER", components[2].Identifier)
}

func TestUpdateComponent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("nil quantity and category leave stored values untouched", func(t *testing.T) {
		id := seedComponent(t, store, "R1", "old", "0.50", 42)

		err := store.UpdateComponent(ctx, id, "R1A", "new", mustDecimal(t, "0.60"), nil, nil)
		require.NoError(t, err)

		c, err := store.GetComponentByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "R1A", c.Identifier)
		assert.Equal(t, "new", c.Description)
		assert.True(t, mustDecimal(t, "0.60").Equal(c.Price))
		assert.Equal(t, int64(42), c.Quantity)
		assert.Equal(t, model.CategoryOther, c.Category)
	})

	t.Run("quantity and category update when set", func(t *testing.T) {
		id := seedComponent(t, store, "R2", "", "0.50", 42)

		quantity := int64(7)
		category := model.CategoryResistor
		err := store.UpdateComponent(ctx, id, "R2", "", mustDecimal(t, "0.50"), &quantity, &category)
		require.NoError(t, err)

		c, err := store.GetComponentByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(7), c.Quantity)
		assert.Equal(t, model.CategoryResistor, c.Category)
	})
}

func TestAdjustStock(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("stock may go negative", func(t *testing.T) {
		id := seedComponent(t, store, "R1", "", "0.50", 3)

		require.NoError(t, store.AdjustStock(ctx, id, -5))

		c, err := store.GetComponentByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(-2), c.Quantity)
	})

	t.Run("missing component is not found", func(t *testing.T) {
		err := store.AdjustStock(ctx, 999, 1)
		require.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestDeleteComponent_DoesNotCascade(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	componentID := seedComponent(t, store, "R1", "", "0.50", 10)
	studentID := seedStudent(t, store, "Alice", "218001", "100")

	_, err := store.CreateTransaction(ctx, &model.Transaction{
		StudentID:   studentID,
		ComponentID: componentID,
		Quantity:    mustDecimal(t, "2"),
		UnitPrice:   mustDecimal(t, "0.50"),
		TotalCost:   mustDecimal(t, "1.00"),
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteComponent(ctx, componentID))

	_, err = store.GetComponentByID(ctx, componentID)
	require.ErrorIs(t, err, common.ErrNotFound)

	count, err := store.CountStudentTransactions(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
