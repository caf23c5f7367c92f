package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for error messages.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Output helpers
// =============================================================================

// printField renders an aligned "label: value" row.
func printField(label, value string) {
	fmt.Printf("%s %s\n", StyleDim.Render(fmt.Sprintf("%-12s", label+":")), StyleValue.Render(value))
}

// printOK renders a success line with a check mark.
func printOK(msg string) {
	fmt.Println(StyleSuccess.Render("✓ " + msg))
}

// printWarn renders a warning line.
func printWarn(msg string) {
	fmt.Println(StyleWarning.Render("! " + msg))
}

// printFail renders a failure line.
func printFail(msg string) {
	fmt.Println(StyleError.Render("✗ " + msg))
}
