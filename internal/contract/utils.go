package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Sell-through label constants.
const (
	SelloutValue = "Sellout" // At or above stated capacity
	PackedValue  = "Packed"  // 90% or better
	HealthyValue = "Healthy" // 70% or better
	SoftValue    = "Soft"    // Below 70%
)

// Color variables for console output.
var (
	SelloutColor = color.New(color.FgGreen, color.Bold) // selloutColor marks a full house.
	PackedColor  = color.New(color.FgGreen)             // packedColor marks near-capacity crowds.
	HealthyColor = color.New(color.FgYellow)            // healthyColor marks ordinary draws.
	SoftColor    = color.New(color.FgRed)               // softColor marks weak draws.
)

// GetPlainLabel returns a plain text label for a sell-through ratio.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(ratio float64) string {
	switch {
	case ratio >= 1.0:
		return SelloutValue
	case ratio >= 0.9:
		return PackedValue
	case ratio >= 0.7:
		return HealthyValue
	default:
		return SoftValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(ratio float64) string {
	text := GetPlainLabel(ratio)

	switch text {
	case SelloutValue:
		return SelloutColor.Sprint(text)
	case PackedValue:
		return PackedColor.Sprint(text)
	case HealthyValue:
		return HealthyColor.Sprint(text)
	default: // "Soft"
		return SoftColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for build history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".turnstile_history.db"
	}
	return filepath.Join(homeDir, ".turnstile_history.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// TruncateLabel truncates a team or stadium label to a maximum width with an
// ellipsis suffix. Requires maxWidth > 3 so there is room for content.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}
