// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#5FAFD7")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors, failures and oversold stock.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent output.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)
)

// FormatTitle formats a section title.
func FormatTitle(text string) string {
	return TitleStyle.Render(text)
}

// FormatSuccess formats a success message.
func FormatSuccess(text string) string {
	return SuccessStyle.Render(text)
}

// FormatWarning formats a warning message.
func FormatWarning(text string) string {
	return WarningStyle.Render(text)
}

// FormatError formats an error message.
func FormatError(text string) string {
	return ErrorStyle.Render(text)
}

// FormatStock renders a stock count, highlighting negative (oversold)
// quantities in the error color.
func FormatStock(quantity int64) string {
	text := fmt.Sprintf("%d", quantity)
	if quantity < 0 {
		return ErrorStyle.Render(text)
	}
	return text
}

// FormatMoney renders a money amount to two decimal places.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
