package ledger

import (
	"context"
	"fmt"

	"github.com/labtools/labledger/internal/common"
	"github.com/labtools/labledger/internal/model"
	"github.com/shopspring/decimal"
)

// Ledger validation errors. All wrap common.ErrValidation so callers can
// match the class without naming each case.
var (
	ErrMissingIdentifier = fmt.Errorf("%w: component identifier is required", common.ErrValidation)
	ErrMissingName       = fmt.Errorf("%w: student name is required", common.ErrValidation)
	ErrMissingNumber     = fmt.Errorf("%w: student number is required", common.ErrValidation)
	ErrInvalidCategory   = fmt.Errorf("%w: invalid category", common.ErrValidation)
)

// Inventory owns component stock quantities and prices.
type Inventory struct {
	store ComponentStore
}

// NewInventory creates an inventory ledger over the given store.
func NewInventory(store ComponentStore) *Inventory {
	return &Inventory{store: store}
}

// CreateComponent adds a new component and returns its id. The identifier is
// required; an empty category falls back to OTHER COMPONENTS at the store.
// Duplicate identifiers are allowed here; only the CSV importer reconciles
// them.
func (inv *Inventory) CreateComponent(ctx context.Context, identifier, description string, price decimal.Decimal, quantity int64, category model.Category) (int64, error) {
	if identifier == "" {
		return 0, ErrMissingIdentifier
	}
	if category != "" && !category.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	return inv.store.CreateComponent(ctx, &model.Component{
		Identifier:  identifier,
		Description: description,
		Price:       price,
		Quantity:    quantity,
		Category:    category,
	})
}

// UpdateComponent overwrites identifier, description and price. Nil quantity
// or category leave the stored values unchanged.
func (inv *Inventory) UpdateComponent(ctx context.Context, id int64, identifier, description string, price decimal.Decimal, quantity *int64, category *model.Category) error {
	if identifier == "" {
		return ErrMissingIdentifier
	}
	if category != nil && !category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, *category)
	}
	return inv.store.UpdateComponent(ctx, id, identifier, description, price, quantity, category)
}

// AdjustStock adds delta (signed) to the component's stock quantity. The
// quantity may go negative; a negative count marks oversold or backordered
// stock and is surfaced, not blocked.
func (inv *Inventory) AdjustStock(ctx context.Context, id int64, delta int64) error {
	return inv.store.AdjustStock(ctx, id, delta)
}

// DeleteComponent removes a component. Transactions referencing it are left
// untouched: component deletion never cascades.
func (inv *Inventory) DeleteComponent(ctx context.Context, id int64) error {
	return inv.store.DeleteComponent(ctx, id)
}

// Component returns a component by id.
func (inv *Inventory) Component(ctx context.Context, id int64) (*model.Component, error) {
	return inv.store.GetComponentByID(ctx, id)
}

// ComponentByIdentifier returns the component with the given identifier, or
// nil when none exists.
func (inv *Inventory) ComponentByIdentifier(ctx context.Context, identifier string) (*model.Component, error) {
	return inv.store.GetComponentByIdentifier(ctx, identifier)
}

// Components returns all components ordered by identifier.
func (inv *Inventory) Components(ctx context.Context) ([]model.Component, error) {
	return inv.store.ListComponents(ctx)
}
