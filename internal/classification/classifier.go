// Package classification maps component codes and descriptions onto the six
// fixed component categories using ordered keyword rules.
package classification

import (
	"strings"

	"github.com/labtools/labledger/internal/model"
)

// Categorize returns the persisted category for a component. It is the
// authoritative rule set used when a component row is created or edited.
//
// Rules are evaluated in order and the first match wins; the categories
// overlap in raw keywords, so the order is load-bearing. All matching is
// case-insensitive and the function always returns a category.
func Categorize(code, description string) model.Category {
	codeUpper := strings.ToUpper(code)
	descUpper := strings.ToUpper(description)

	// Carve-out: 22NF is stocked as a resistor despite looking like a
	// capacitor value.
	if codeUpper == "22NF" {
		return model.CategoryResistor
	}

	// LEDs are sold out of the misc drawer, not the diode drawer.
	if strings.Contains(codeUpper, "LED") {
		return model.CategoryOther
	}

	// 74-series logic family, before the generic keyword pass.
	if strings.HasPrefix(codeUpper, "74") {
		return model.CategoryIC
	}

	if containsAny(codeUpper, descUpper, "IC", "LM", "MC", "OPAMP", "OP-AMP", "REGULATOR", "DRIVER", "BUFFER", "INVERTER") {
		return model.CategoryIC
	}

	if containsAny(codeUpper, descUpper, "RESISTOR", "OHM", "RES") || strings.HasPrefix(codeUpper, "R_") {
		return model.CategoryResistor
	}

	if containsAny(codeUpper, descUpper, "CAPACITOR", "CAP") ||
		containsAny(codeUpper, "", "UF", "NF", "PF") ||
		strings.HasPrefix(codeUpper, "C_") {
		return model.CategoryCapacitor
	}

	if containsAny(codeUpper, descUpper, "DIODE") || strings.HasPrefix(codeUpper, "D_") {
		return model.CategoryDiode
	}

	if containsAny(codeUpper, descUpper, "TRANSISTOR", "FET", "IRF") || strings.HasPrefix(codeUpper, "T_") {
		return model.CategoryTransistors
	}

	return model.CategoryOther
}

// CategorizeReceipt is the grouping rule set used only when laying out a
// student's purchase receipt. It intentionally differs from Categorize: it
// has none of the exact-code overrides and it groups LEDs under DIODE.
// Kept as a separate function because unifying the two would silently change
// existing receipt layouts.
func CategorizeReceipt(code, description string) model.Category {
	codeUpper := strings.ToUpper(code)
	descUpper := strings.ToUpper(description)

	switch {
	case containsAny(codeUpper, descUpper, "RESISTOR", "OHM", "R_"):
		return model.CategoryResistor
	case containsAny(codeUpper, descUpper, "CAPACITOR", "CAP", "UF", "NF", "PF", "C_"):
		return model.CategoryCapacitor
	case containsAny(codeUpper, descUpper, "DIODE", "LED", "D_"):
		return model.CategoryDiode
	case containsAny(codeUpper, descUpper, "IC", "LM", "MC", "U_"):
		return model.CategoryIC
	case containsAny(codeUpper, descUpper, "TRANSISTOR", "FET", "IRF", "T_"):
		return model.CategoryTransistors
	default:
		return model.CategoryOther
	}
}

func containsAny(code, description string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(code, keyword) || strings.Contains(description, keyword) {
			return true
		}
	}
	return false
}
