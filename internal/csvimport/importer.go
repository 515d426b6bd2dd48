// Package csvimport merges an external component list into the store using a
// deterministic duplicate-resolution policy.
package csvimport

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/labtools/labledger/internal/model"
	"github.com/shopspring/decimal"
)

// Expected header column names, matched case-sensitively.
const (
	columnItem        = "ITEM"
	columnPrice       = "PRICE"
	columnDescription = "DESCRIPTION"
)

// sniffSampleSize is how much of the input is inspected to pick the field
// delimiter.
const sniffSampleSize = 1024

// ComponentStore is the persistence surface the importer needs.
type ComponentStore interface {
	GetComponentByIdentifier(ctx context.Context, identifier string) (*model.Component, error)
	CreateComponent(ctx context.Context, c *model.Component) (int64, error)
	UpdateComponent(ctx context.Context, id int64, identifier, description string, price decimal.Decimal, quantity *int64, category *model.Category) error
}

// Result aggregates the outcome of one import run. A single bad row never
// aborts the run; it is counted here instead.
type Result struct {
	Imported int
	Updated  int
	Skipped  int
	Errors   int
}

// Importer reads ITEM/PRICE/DESCRIPTION rows and reconciles them against the
// component table.
type Importer struct {
	store    ComponentStore
	progress func(processed int)
}

// Option configures an Importer.
type Option func(*Importer)

// WithProgress registers a callback invoked after each processed row.
func WithProgress(fn func(processed int)) Option {
	return func(imp *Importer) {
		imp.progress = fn
	}
}

// New creates an importer over the given store.
func New(store ComponentStore, opts ...Option) *Importer {
	imp := &Importer{store: store}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// Import processes the component list. Per row:
//
//   - an empty ITEM (after trimming) is skipped silently, with no counter;
//   - an unparseable PRICE is absorbed as 0.0, never a row error;
//   - an unknown identifier is always inserted;
//   - a known identifier goes through the duplicate policy: a higher price
//     wins; on equal prices a new description wins only over an empty stored
//     one; everything else is skipped. Updates overwrite identifier,
//     description and price only, leaving quantity and category untouched.
//
// Row-level failures increment Errors and processing continues; only a
// failure to read the input at all aborts the run.
func (imp *Importer) Import(ctx context.Context, r io.Reader) (Result, error) {
	var result Result

	br := bufio.NewReaderSize(r, sniffSampleSize*4)
	delimiter, err := sniffDelimiter(br)
	if err != nil {
		return result, fmt.Errorf("failed to read CSV input: %w", err)
	}

	reader := csv.NewReader(br)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return result, nil
		}
		return result, fmt.Errorf("failed to read CSV header: %w", err)
	}

	itemIdx := columnIndex(header, columnItem)
	priceIdx := columnIndex(header, columnPrice)
	descIdx := columnIndex(header, columnDescription)

	processed := 0
	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			var parseErr *csv.ParseError
			if errors.As(readErr, &parseErr) {
				result.Errors++
				continue
			}
			return result, fmt.Errorf("failed to read CSV input: %w", readErr)
		}

		imp.processRow(ctx, record, itemIdx, priceIdx, descIdx, &result)

		processed++
		if imp.progress != nil {
			imp.progress(processed)
		}
	}

	slog.Info("component import finished",
		"imported", result.Imported,
		"updated", result.Updated,
		"skipped", result.Skipped,
		"errors", result.Errors)
	return result, nil
}

func (imp *Importer) processRow(ctx context.Context, record []string, itemIdx, priceIdx, descIdx int, result *Result) {
	identifier := field(record, itemIdx)
	if identifier == "" {
		return
	}

	price := parsePrice(field(record, priceIdx))
	description := field(record, descIdx)

	existing, err := imp.store.GetComponentByIdentifier(ctx, identifier)
	if err != nil {
		slog.Warn("failed to look up component during import", "identifier", identifier, "error", err)
		result.Errors++
		return
	}

	if existing == nil {
		// New component: insert regardless of description.
		_, err := imp.store.CreateComponent(ctx, &model.Component{
			Identifier:  identifier,
			Description: description,
			Price:       price,
		})
		if err != nil {
			slog.Warn("failed to insert component during import", "identifier", identifier, "error", err)
			result.Errors++
			return
		}
		result.Imported++
		return
	}

	if !shouldOverwrite(price, existing.Price, description, existing.Description) {
		result.Skipped++
		return
	}

	if err := imp.store.UpdateComponent(ctx, existing.ID, identifier, description, price, nil, nil); err != nil {
		slog.Warn("failed to update component during import", "identifier", identifier, "error", err)
		result.Errors++
		return
	}
	result.Updated++
}

// shouldOverwrite applies the duplicate-resolution policy: the higher price
// wins; on equal prices a non-empty new description beats an empty stored
// one; every other tie keeps the stored row.
func shouldOverwrite(price, existingPrice decimal.Decimal, description, existingDescription string) bool {
	switch {
	case price.GreaterThan(existingPrice):
		return true
	case price.Equal(existingPrice):
		return description != "" && existingDescription == ""
	default:
		return false
	}
}

// sniffDelimiter inspects the first bytes of the input: more semicolons than
// commas means the file is semicolon-delimited.
func sniffDelimiter(br *bufio.Reader) (rune, error) {
	sample, err := br.Peek(sniffSampleSize)
	if err != nil && !errors.Is(err, io.EOF) && len(sample) == 0 {
		return 0, err
	}

	if bytes.Count(sample, []byte(";")) > bytes.Count(sample, []byte(",")) {
		return ';', nil
	}
	return ',', nil
}

func columnIndex(header []string, name string) int {
	for i, col := range header {
		if strings.TrimSpace(col) == name {
			return i
		}
	}
	return -1
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func parsePrice(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	price, err := decimal.NewFromString(s)
	if err != nil {
		// Malformed prices default to zero; they are not row errors.
		return decimal.Zero
	}
	return price
}
