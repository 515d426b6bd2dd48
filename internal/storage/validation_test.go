package storage

import (
	"context"
	"testing"

	"github.com/labtools/labledger/internal/model"
	"github.com/stretchr/testify/require"
)

func TestValidation(t *testing.T) {
	store := newTestStore(t)

	t.Run("nil context", func(t *testing.T) {
		var nilCtx context.Context
		_, err := store.GetComponentByID(nilCtx, 1)
		require.ErrorIs(t, err, ErrNilContext)
	})

	t.Run("non-positive id", func(t *testing.T) {
		_, err := store.GetComponentByID(context.Background(), 0)
		require.ErrorIs(t, err, ErrInvalidID)

		_, err = store.GetStudentByID(context.Background(), -1)
		require.ErrorIs(t, err, ErrInvalidID)
	})

	t.Run("blank identifier", func(t *testing.T) {
		_, err := store.GetComponentByIdentifier(context.Background(), "   ")
		require.ErrorIs(t, err, ErrEmptyString)
	})

	t.Run("nil component", func(t *testing.T) {
		_, err := store.CreateComponent(context.Background(), nil)
		require.ErrorIs(t, err, ErrNilParameter)
	})

	t.Run("student without number", func(t *testing.T) {
		_, err := store.CreateStudent(context.Background(), &model.Student{Name: "Alice"})
		require.ErrorIs(t, err, ErrInvalidStudent)
	})
}
