package ledger

import (
	"context"
	"testing"

	"github.com/labtools/labledger/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStudent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("requires name and number", func(t *testing.T) {
		_, err := f.students.CreateStudent(ctx, "", "218001", "", "", mustDecimal(t, "0"))
		require.ErrorIs(t, err, ErrMissingName)

		_, err = f.students.CreateStudent(ctx, "Alice", "", "", "", mustDecimal(t, "0"))
		require.ErrorIs(t, err, ErrMissingNumber)
	})

	t.Run("legacy balance starts equal to the initial balance", func(t *testing.T) {
		id := f.seedStudent(t, "Alice", "218001", "150")

		st, err := f.students.Student(ctx, id)
		require.NoError(t, err)
		assert.True(t, mustDecimal(t, "150").Equal(st.Balance))
		assert.True(t, mustDecimal(t, "150").Equal(st.InitialBalance))
	})

	t.Run("duplicate number is rejected", func(t *testing.T) {
		_, err := f.students.CreateStudent(ctx, "Bob", "218001", "other@example.com", "", mustDecimal(t, "0"))
		require.ErrorIs(t, err, common.ErrDuplicateEntry)
	})
}

// Mirrors the everyday flow: deposit, two purchases, one reversal.
func TestFinalBalance_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	studentID := f.seedStudent(t, "Alice", "218001", "100")
	componentID := f.seedComponent(t, "R1", "0.50", 100)

	final, err := f.students.FinalBalance(ctx, studentID)
	require.NoError(t, err)
	assert.True(t, mustDecimal(t, "100").Equal(final), "no transactions means initial balance")

	_, err = f.purchases.Purchase(ctx, studentID, componentID, mustDecimal(t, "5"), mustDecimal(t, "1.50"), "")
	require.NoError(t, err)

	final, err = f.students.FinalBalance(ctx, studentID)
	require.NoError(t, err)
	assert.True(t, mustDecimal(t, "92.50").Equal(final), "got %s", final)

	txnID, err := f.purchases.Purchase(ctx, studentID, componentID, mustDecimal(t, "10"), mustDecimal(t, "0.25"), "")
	require.NoError(t, err)

	final, err = f.students.FinalBalance(ctx, studentID)
	require.NoError(t, err)
	assert.True(t, mustDecimal(t, "90").Equal(final), "got %s", final)

	require.NoError(t, f.purchases.Reverse(ctx, txnID))

	final, err = f.students.FinalBalance(ctx, studentID)
	require.NoError(t, err)
	assert.True(t, mustDecimal(t, "92.50").Equal(final), "reversal restores the derived balance, got %s", final)
}

func TestFinalBalance_CanGoNegative(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	studentID := f.seedStudent(t, "Alice", "218001", "5")
	componentID := f.seedComponent(t, "LM358", "4.00", 10)

	_, err := f.purchases.Purchase(ctx, studentID, componentID, mustDecimal(t, "3"), mustDecimal(t, "4.00"), "")
	require.NoError(t, err)

	final, err := f.students.FinalBalance(ctx, studentID)
	require.NoError(t, err)
	assert.True(t, mustDecimal(t, "-7").Equal(final), "overspending is tracked, not blocked; got %s", final)
}

func TestUpdateStudent_PreservesInitialBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.seedStudent(t, "Alice", "218001", "150")

	err := f.students.UpdateStudent(ctx, id, "Alice Smith", "218001", "alice@example.com", "", mustDecimal(t, "120"), nil)
	require.NoError(t, err)

	st, err := f.students.Student(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", st.Name)
	assert.True(t, mustDecimal(t, "150").Equal(st.InitialBalance))
}

func TestDeleteStudent_RemovesTransactions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	studentID := f.seedStudent(t, "Alice", "218001", "100")
	componentID := f.seedComponent(t, "R1", "0.50", 100)

	_, err := f.purchases.Purchase(ctx, studentID, componentID, mustDecimal(t, "1"), mustDecimal(t, "0.50"), "")
	require.NoError(t, err)

	require.NoError(t, f.students.DeleteStudent(ctx, studentID))

	_, err = f.students.Student(ctx, studentID)
	require.ErrorIs(t, err, common.ErrNotFound)

	all, err := f.purchases.AllTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStudentByNumber(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedStudent(t, "Alice", "218001", "100")

	st, err := f.students.StudentByNumber(ctx, "218001")
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, "Alice", st.Name)

	st, err = f.students.StudentByNumber(ctx, "999999")
	require.NoError(t, err)
	assert.Nil(t, st)
}

func TestTransactionCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	studentID := f.seedStudent(t, "Alice", "218001", "100")
	componentID := f.seedComponent(t, "R1", "0.50", 100)

	for i := 0; i < 3; i++ {
		_, err := f.purchases.Purchase(ctx, studentID, componentID, mustDecimal(t, "1"), mustDecimal(t, "0.50"), "")
		require.NoError(t, err)
	}

	count, err := f.students.TransactionCount(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
