// Package console provides styled terminal output for the metaforge CLI.
//
// All user-facing messages go through the Format* helpers so that color,
// symbols, and accessible-mode fallbacks stay consistent across commands.
// Formatted messages are written by callers, usually to stderr, keeping
// stdout clean for tables and JSON output.
package console

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	verboseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// IsAccessibleMode reports whether accessible output is requested. In
// accessible mode symbols are replaced with plain-text prefixes so screen
// readers announce message severity.
func IsAccessibleMode() bool {
	return os.Getenv("ACCESSIBLE") != ""
}

// isTTY reports whether both stdin and stdout are attached to a terminal.
// Interactive prompts refuse to run otherwise.
func isTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// FormatSuccessMessage formats a success message with a checkmark.
func FormatSuccessMessage(msg string) string {
	if IsAccessibleMode() {
		return "SUCCESS: " + msg
	}
	return successStyle.Render("✓ " + msg)
}

// FormatInfoMessage formats an informational message.
func FormatInfoMessage(msg string) string {
	if IsAccessibleMode() {
		return "INFO: " + msg
	}
	return infoStyle.Render("ℹ " + msg)
}

// FormatWarningMessage formats a warning message.
func FormatWarningMessage(msg string) string {
	if IsAccessibleMode() {
		return "WARNING: " + msg
	}
	return warningStyle.Render("⚠ " + msg)
}

// FormatErrorMessage formats an error message.
func FormatErrorMessage(msg string) string {
	if IsAccessibleMode() {
		return "ERROR: " + msg
	}
	return errorStyle.Render("✗ " + msg)
}

// FormatError formats an error value for terminal display.
func FormatError(err error) string {
	return FormatErrorMessage(err.Error())
}

// FormatVerboseMessage formats a dimmed message shown only in verbose mode.
func FormatVerboseMessage(msg string) string {
	if IsAccessibleMode() {
		return "VERBOSE: " + msg
	}
	return verboseStyle.Render(msg)
}

// FormatProgressMessage formats an in-progress status message.
func FormatProgressMessage(msg string) string {
	if IsAccessibleMode() {
		return "PROGRESS: " + msg
	}
	return infoStyle.Render("… " + msg)
}

// FormatErrorWithSuggestions formats an error followed by indented
// suggestions for resolving it.
func FormatErrorWithSuggestions(msg string, suggestions []string) string {
	out := FormatErrorMessage(msg)
	for _, s := range suggestions {
		out += "\n  • " + s
	}
	return out
}

// LogVerbose writes a verbose message to stderr when verbose mode is on.
func LogVerbose(verbose bool, msg string) {
	if verbose {
		fmt.Fprintln(os.Stderr, FormatVerboseMessage(msg))
	}
}
