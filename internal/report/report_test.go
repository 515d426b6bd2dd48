package report

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/labtools/labledger/internal/ledger"
	"github.com/labtools/labledger/internal/storage"
	"github.com/labtools/labledger/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store     *storage.SQLiteStore
	inventory *ledger.Inventory
	students  *ledger.Students
	purchases *ledger.Purchases
	gen       *Generator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testutil.SetupTestDB(t)
	students := ledger.NewStudents(store)
	purchases := ledger.NewPurchases(store)
	return &fixture{
		store:     store,
		inventory: ledger.NewInventory(store),
		students:  students,
		purchases: purchases,
		gen:       NewGenerator(students, purchases),
	}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func (f *fixture) seedStudent(t *testing.T, name, number, phone, balance string) int64 {
	t.Helper()
	ctx := context.Background()
	id, err := f.students.CreateStudent(ctx, name, number, number+"@example.com", phone, mustDecimal(t, balance))
	require.NoError(t, err)
	return id
}

func (f *fixture) seedPurchase(t *testing.T, studentID int64, identifier, description, quantity, price string) {
	t.Helper()
	ctx := context.Background()
	componentID, err := f.inventory.CreateComponent(ctx, identifier, description, mustDecimal(t, price), 1000, "")
	require.NoError(t, err)
	_, err = f.purchases.Purchase(ctx, studentID, componentID, mustDecimal(t, quantity), mustDecimal(t, price), "")
	require.NoError(t, err)
}

// lines splits CSV output, dropping the trailing newline artifact.
func lines(buf *bytes.Buffer) []string {
	out := strings.Split(buf.String(), "\n")
	if len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

func TestWriteStudentDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	studentID := f.seedStudent(t, "Alice", "218001", "0812345678", "100")
	f.seedPurchase(t, studentID, "1K", "resistor 1k", "5", "1.50")

	var buf bytes.Buffer
	require.NoError(t, f.gen.WriteStudentDetail(ctx, &buf, studentID))

	got := lines(&buf)
	// Header block (6 rows) + separator + 2 grid headers + 10 padded rows + totals.
	require.Len(t, got, 20)

	assert.Equal(t, "Student Name,Alice", got[0])
	assert.Equal(t, "Student Number,218001", got[1])
	assert.Equal(t, "Contact,0812345678", got[2])
	assert.Equal(t, "Paid,100.00", got[3])
	assert.Equal(t, "Used,7.50", got[4])
	assert.Equal(t, "Balance,92.50", got[5])
	assert.Empty(t, got[6])

	header := strings.Split(got[7], ",")
	require.Len(t, header, 24)
	assert.Equal(t, "RESISTOR", header[0])
	assert.Equal(t, "CAPACITOR", header[4])
	assert.Equal(t, "DIODE", header[8])
	assert.Equal(t, "IC", header[12])
	assert.Equal(t, "TRANSISTORS", header[16])
	assert.Equal(t, "OTHER COMPONENTS", header[20])

	sub := strings.Split(got[8], ",")
	require.Len(t, sub, 24)
	assert.Equal(t, []string{"Value", "Quantity", "Price", "Total"}, sub[0:4])
	assert.Equal(t, []string{"Value", "Quantity", "Price", "Total"}, sub[20:24])

	// The purchase groups by the receipt classifier: "resistor" lands in
	// the RESISTOR column group.
	first := strings.Split(got[9], ",")
	require.Len(t, first, 24)
	assert.Equal(t, []string{"1K", "5", "1.5", "7.5"}, first[0:4])
	assert.Equal(t, []string{"", "", "", "0"}, first[4:8], "empty categories pad with a zero total cell")

	// All ten rows are present even with a single transaction.
	last := strings.Split(got[18], ",")
	assert.Equal(t, []string{"", "", "", "0"}, last[0:4])

	totals := strings.Split(got[19], ",")
	require.Len(t, totals, 24)
	assert.Equal(t, "7.50", totals[3])
	assert.Equal(t, "0.00", totals[7])
	assert.Equal(t, "0.00", totals[23])
}

func TestWriteStudentDetail_LEDGroupsUnderDiode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	studentID := f.seedStudent(t, "Alice", "218001", "", "100")
	f.seedPurchase(t, studentID, "LED5MM", "red led", "2", "0.80")

	var buf bytes.Buffer
	require.NoError(t, f.gen.WriteStudentDetail(ctx, &buf, studentID))

	first := strings.Split(lines(&buf)[9], ",")
	require.Len(t, first, 24)
	assert.Equal(t, []string{"", "", "", "0"}, first[0:4])
	assert.Equal(t, []string{"LED5MM", "2", "0.8", "1.6"}, first[8:12])
}

func TestWriteStudentDetail_GridGrowsBeyondTenRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	studentID := f.seedStudent(t, "Alice", "218001", "", "100")
	for i := 0; i < 12; i++ {
		f.seedPurchase(t, studentID, "10 OHM", "resistor", "1", "0.10")
	}

	var buf bytes.Buffer
	require.NoError(t, f.gen.WriteStudentDetail(ctx, &buf, studentID))

	got := lines(&buf)
	// 12 items in one category stretch the grid past the 10-row minimum.
	require.Len(t, got, 22)
}

func TestWriteAllStudents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	aliceID := f.seedStudent(t, "Alice", "218001", "", "100")
	f.seedStudent(t, "Bob", "218002", "", "50.25")
	f.seedPurchase(t, aliceID, "JUMPER", "jumper wires", "3", "2.50")

	var buf bytes.Buffer
	require.NoError(t, f.gen.WriteAllStudents(ctx, &buf))

	got := lines(&buf)
	// Two 20-line blocks separated by four blank rows.
	require.Len(t, got, 44)

	assert.Equal(t, "Student Name\tAlice", got[0])
	assert.Equal(t, "Paid\t100", got[3], "whole-number Paid renders as an integer")
	assert.Equal(t, "Used\t7.5", got[4], "batch money keeps raw formatting")
	assert.Equal(t, "Balance\t92.5", got[5])

	// Grouping uses the persisted component category: an uncategorized
	// jumper wire sits in the OTHER COMPONENTS column group.
	first := strings.Split(got[9], "\t")
	require.Len(t, first, 24)
	assert.Equal(t, []string{"", "", "", "0"}, first[0:4])
	assert.Equal(t, []string{"JUMPER", "3", "2.5", "7.5"}, first[20:24])

	totals := strings.Split(got[19], "\t")
	assert.Equal(t, "7.5", totals[23])
	assert.Equal(t, "0", totals[3], "batch totals keep raw zero formatting")

	for i := 20; i < 24; i++ {
		assert.Empty(t, got[i], "blocks are separated by four blank rows")
	}

	assert.Equal(t, "Student Name\tBob", got[24])
	assert.Equal(t, "Paid\t50.25", got[27], "fractional Paid keeps its decimals")
}

func TestWriteFinalStatement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedStudent(t, "Alice", "218001", "", "100")
	bobID := f.seedStudent(t, "Bob", "218002", "", "5")
	f.seedStudent(t, "Carol", "218003", "", "0")
	f.seedPurchase(t, bobID, "LM358", "op-amp", "3", "4.00")

	var buf bytes.Buffer
	require.NoError(t, f.gen.WriteFinalStatement(ctx, &buf))

	got := lines(&buf)
	require.Len(t, got, 4)

	assert.Equal(t, "Student Name\tStudent Number\tBalance\tDUE TO STUDENT\tDUE TO INSTITUTION", got[0])

	// Positive balance is due back to the student.
	assert.Equal(t, "Alice\t218001\t100.00\t100.00\t", got[1])

	// Negative balance is owed to the institution, shown as an absolute.
	assert.Equal(t, "Bob\t218002\t-7.00\t\t7.00", got[2])

	// Zero balance leaves both due columns empty.
	assert.Equal(t, "Carol\t218003\t0.00\t\t", got[3])
}

func TestWriteStudentDetail_UnknownStudent(t *testing.T) {
	f := newFixture(t)

	var buf bytes.Buffer
	err := f.gen.WriteStudentDetail(context.Background(), &buf, 999)
	require.Error(t, err)
	assert.Zero(t, buf.Len(), "nothing is written on failure")
}
