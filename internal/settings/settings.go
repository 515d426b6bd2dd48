// Package settings exposes the database-backed key/value settings consumed
// by the UI collaborator.
//
// The ledger core never reads these to alter its own behavior: every key
// gates a confirmation or popup that belongs to the presentation layer.
package settings

import (
	"context"
	"errors"
	"strings"

	"github.com/labtools/labledger/internal/common"
)

// Recognized settings keys.
const (
	// KeyConfirmPurchases gates the purchase confirmation prompt.
	KeyConfirmPurchases = "confirm_purchases"
	// KeyShowSuccessPopups gates success popups after mutations.
	KeyShowSuccessPopups = "show_success_popups"
	// KeyShowInfoPopups gates informational popups after exports.
	KeyShowInfoPopups = "show_info_popups"
	// KeyConfirmCategoryChanges gates the category reassignment prompt.
	KeyConfirmCategoryChanges = "confirm_category_changes"
)

// Defaults maps each recognized key to its default value, used when the key
// has never been stored.
var Defaults = map[string]string{
	KeyConfirmPurchases:       "true",
	KeyShowSuccessPopups:      "false",
	KeyShowInfoPopups:         "false",
	KeyConfirmCategoryChanges: "true",
}

// Store is the persistence surface the settings service needs.
type Store interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	ListSettings(ctx context.Context) (map[string]string, error)
}

// Service reads and writes settings, applying defaults for missing keys.
type Service struct {
	store Store
}

// NewService creates a settings service over the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Get returns the stored value for key, or its default when the key has
// never been set. Unrecognized keys default to the empty string.
func (s *Service) Get(ctx context.Context, key string) (string, error) {
	value, err := s.store.GetSetting(ctx, key)
	if errors.Is(err, common.ErrNotFound) {
		return Defaults[key], nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set stores a value for key.
func (s *Service) Set(ctx context.Context, key, value string) error {
	return s.store.SetSetting(ctx, key, value)
}

// Bool returns whether the setting's value is "true", compared
// case-insensitively.
func (s *Service) Bool(ctx context.Context, key string) (bool, error) {
	value, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(value, "true"), nil
}

// All returns every recognized setting with stored values overlaid on the
// defaults.
func (s *Service) All(ctx context.Context) (map[string]string, error) {
	stored, err := s.store.ListSettings(ctx)
	if err != nil {
		return nil, err
	}

	all := make(map[string]string, len(Defaults))
	for key, value := range Defaults {
		all[key] = value
	}
	for key, value := range stored {
		all[key] = value
	}
	return all, nil
}
