package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/labtools/labledger/internal/model"
	"github.com/shopspring/decimal"
)

// WriteStudentDetail writes the comma-delimited purchase receipt for one
// student: header block, category grid grouped by the receipt classifier,
// and a totals row. Money in the header block and totals row is fixed to two
// decimals.
func (g *Generator) WriteStudentDetail(ctx context.Context, w io.Writer, studentID int64) error {
	student, err := g.students.Student(ctx, studentID)
	if err != nil {
		return err
	}

	summary, err := g.summarize(ctx, student)
	if err != nil {
		return err
	}

	txns, err := g.purchases.Transactions(ctx, studentID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writeStudentBlock(writer, summary, groupTransactions(txns, receiptCategory), true); err != nil {
		return err
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write student report: %w", err)
	}
	return nil
}

// WriteAllStudents writes the tab-delimited batch export: one detail block
// per student in name order, separated by four blank rows. Blocks are
// grouped by the persisted component category and keep the raw-number
// formatting of the original layout (a whole-number Paid renders as an
// integer).
func (g *Generator) WriteAllStudents(ctx context.Context, w io.Writer) error {
	students, err := g.students.Students(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	writer.Comma = '\t'

	for i, student := range students {
		summary, sumErr := g.summarize(ctx, &student)
		if sumErr != nil {
			return sumErr
		}

		txns, txnErr := g.purchases.Transactions(ctx, student.ID)
		if txnErr != nil {
			return txnErr
		}

		if err := writeStudentBlock(writer, summary, groupTransactions(txns, persistedCategory), false); err != nil {
			return err
		}

		if i < len(students)-1 {
			for n := 0; n < 4; n++ {
				if err := writer.Write(nil); err != nil {
					return fmt.Errorf("failed to write batch report: %w", err)
				}
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write batch report: %w", err)
	}
	return nil
}

// WriteFinalStatement writes the tab-delimited statement: one row per
// student routing the final balance into exactly one of the two due
// columns. A zero balance leaves both empty.
func (g *Generator) WriteFinalStatement(ctx context.Context, w io.Writer) error {
	students, err := g.students.Students(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	writer.Comma = '\t'

	if err := writer.Write([]string{"Student Name", "Student Number", "Balance", "DUE TO STUDENT", "DUE TO INSTITUTION"}); err != nil {
		return fmt.Errorf("failed to write statement header: %w", err)
	}

	for _, student := range students {
		final, balErr := g.students.FinalBalance(ctx, student.ID)
		if balErr != nil {
			return balErr
		}

		var dueToStudent, dueToInstitution string
		switch {
		case final.IsPositive():
			dueToStudent = final.StringFixed(2)
		case final.IsNegative():
			dueToInstitution = final.Abs().StringFixed(2)
		}

		if err := writer.Write([]string{
			student.Name,
			student.Number,
			final.StringFixed(2),
			dueToStudent,
			dueToInstitution,
		}); err != nil {
			return fmt.Errorf("failed to write statement row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write statement: %w", err)
	}
	return nil
}

// writeStudentBlock writes one student's header block and category grid.
// fixedMoney selects two-decimal formatting for the header and totals row;
// the batch layout keeps raw numbers instead.
func writeStudentBlock(writer *csv.Writer, summary studentSummary, groups grouping, fixedMoney bool) error {
	money := func(d decimal.Decimal) string {
		if fixedMoney {
			return d.StringFixed(2)
		}
		return d.String()
	}

	paid := money(summary.initial)
	if !fixedMoney {
		paid = formatWhole(summary.initial)
	}

	headerRows := [][]string{
		{"Student Name", summary.name},
		{"Student Number", summary.number},
		{"Contact", summary.phone},
		{"Paid", paid},
		{"Used", money(summary.used)},
		{"Balance", money(summary.final)},
		nil,
	}
	for _, row := range headerRows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write report header: %w", err)
		}
	}

	categoryHeader := make([]string, 0, len(model.Categories)*4)
	subHeader := make([]string, 0, len(model.Categories)*4)
	for _, category := range model.Categories {
		categoryHeader = append(categoryHeader, string(category), "", "", "")
		subHeader = append(subHeader, "Value", "Quantity", "Price", "Total")
	}
	if err := writer.Write(categoryHeader); err != nil {
		return fmt.Errorf("failed to write category header: %w", err)
	}
	if err := writer.Write(subHeader); err != nil {
		return fmt.Errorf("failed to write column header: %w", err)
	}

	rows := groups.rowCount()
	for i := 0; i < rows; i++ {
		row := make([]string, 0, len(model.Categories)*4)
		for _, category := range model.Categories {
			group := groups[category]
			if i < len(group.items) {
				item := group.items[i]
				row = append(row, item.value, item.quantity.String(), item.price.String(), item.total.String())
			} else {
				row = append(row, "", "", "", "0")
			}
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}

	totals := make([]string, 0, len(model.Categories)*4)
	for _, category := range model.Categories {
		totals = append(totals, "", "", "", money(groups[category].total))
	}
	if err := writer.Write(totals); err != nil {
		return fmt.Errorf("failed to write totals row: %w", err)
	}

	return nil
}

// formatWhole renders whole-number amounts without a fractional part and
// everything else with its raw decimal representation.
func formatWhole(d decimal.Decimal) string {
	if d.IsInteger() {
		return d.Truncate(0).String()
	}
	return d.String()
}
