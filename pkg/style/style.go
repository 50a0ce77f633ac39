// Package style renders envup's terminal output: per-action status
// lines while stages run, and the final outcome summary table.
package style

import (
	"os"

	"github.com/arthur-debert/envup/pkg/bootstrap"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Base styles shared across renderers
var (
	TitleStyle = lipgloss.NewStyle().Bold(true)
	MutedStyle = pterm.NewStyle(pterm.FgGray)
)

// Status indicators
const (
	SuccessIndicator = "✓"
	ErrorIndicator   = "✗"
	SkipIndicator    = "-"
	PendingIndicator = "…"
)

// Configure disables color when stdout is not a terminal or the
// environment asks for plain output (NO_COLOR, non-interactive CI).
func Configure(nonInteractive bool) {
	if nonInteractive || termenv.EnvNoColor() || !isatty.IsTerminal(os.Stdout.Fd()) {
		pterm.DisableColor()
	}
}

// StatusStyle returns the pterm style for a bootstrap status
func StatusStyle(status bootstrap.Status) *pterm.Style {
	switch status {
	case bootstrap.StatusInstalled:
		return pterm.NewStyle(pterm.FgGreen)
	case bootstrap.StatusPresent:
		return pterm.NewStyle(pterm.FgCyan)
	case bootstrap.StatusFailed:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case bootstrap.StatusPending:
		return pterm.NewStyle(pterm.FgYellow)
	default:
		return MutedStyle
	}
}

// Indicator returns the one-character marker for a status
func Indicator(status bootstrap.Status) string {
	switch status {
	case bootstrap.StatusInstalled:
		return SuccessIndicator
	case bootstrap.StatusPresent:
		return SuccessIndicator
	case bootstrap.StatusFailed:
		return ErrorIndicator
	case bootstrap.StatusPending:
		return PendingIndicator
	default:
		return SkipIndicator
	}
}
