package report

import (
	"github.com/labtools/labledger/internal/classification"
	"github.com/labtools/labledger/internal/model"
	"github.com/shopspring/decimal"
)

// minGridRows pads every category grid to at least this many item rows.
const minGridRows = 10

// gridItem is one transaction's cell block inside a category column group.
// Quantity and total are rendered as absolute values; returns show up the
// same way purchases do.
type gridItem struct {
	value    string
	quantity decimal.Decimal
	price    decimal.Decimal
	total    decimal.Decimal
}

// categoryGroup collects a category's items and their absolute total.
type categoryGroup struct {
	items []gridItem
	total decimal.Decimal
}

type grouping map[model.Category]*categoryGroup

// receiptCategory is the grouping rule for the per-student detail export:
// always the receipt classifier variant, never the persisted category.
func receiptCategory(txn model.Transaction) model.Category {
	return classification.CategorizeReceipt(txn.ComponentCode, txn.ComponentDescription)
}

// persistedCategory is the grouping rule for the batch export: the stored
// category wins, with the authoritative classifier as fallback when a row
// predates categorization.
func persistedCategory(txn model.Transaction) model.Category {
	if txn.ComponentCategory != "" && txn.ComponentCategory.Valid() {
		return txn.ComponentCategory
	}
	return classification.Categorize(txn.ComponentCode, txn.ComponentDescription)
}

func groupTransactions(txns []model.Transaction, categorize func(model.Transaction) model.Category) grouping {
	groups := make(grouping, len(model.Categories))
	for _, category := range model.Categories {
		groups[category] = &categoryGroup{total: decimal.Zero}
	}

	for _, txn := range txns {
		group := groups[categorize(txn)]
		group.items = append(group.items, gridItem{
			value:    txn.ComponentCode,
			quantity: txn.Quantity.Abs(),
			price:    txn.UnitPrice,
			total:    txn.TotalCost.Abs(),
		})
		group.total = group.total.Add(txn.TotalCost.Abs())
	}

	return groups
}

func (g grouping) rowCount() int {
	rows := minGridRows
	for _, group := range g {
		if len(group.items) > rows {
			rows = len(group.items)
		}
	}
	return rows
}
