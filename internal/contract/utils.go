package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Fit label constants for ranked itineraries.
const (
	StrongValue = "Strong" // Strong match for the crew's preferences
	GoodValue   = "Good"   // Good match
	FairValue   = "Fair"   // Fair match
	WeakValue   = "Weak"   // Weak match
)

// Color variables for console output.
var (
	StrongColor = color.New(color.FgGreen, color.Bold) // strongColor marks the crew's best candidates.
	GoodColor   = color.New(color.FgCyan)              // goodColor marks solid candidates.
	FairColor   = color.New(color.FgYellow)            // fairColor marks middling candidates.
	WeakColor   = color.New(color.FgRed)               // weakColor marks poor candidates.
)

// GetPlainLabel returns a plain text fit label based on an itinerary's
// total score relative to the best score in the run. This is the core
// logic used for CSV, JSON, and table printing.
func GetPlainLabel(score, best float64) string {
	if best <= 0 {
		return WeakValue
	}
	ratio := score / best
	switch {
	case ratio >= 0.9:
		return StrongValue
	case ratio >= 0.7:
		return GoodValue
	case ratio >= 0.4:
		return FairValue
	default:
		return WeakValue
	}
}

// GetColorLabel returns a colored fit label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(score, best float64) string {
	text := GetPlainLabel(score, best)

	switch text {
	case StrongValue:
		return StrongColor.Sprint(text)
	case GoodValue:
		return GoodColor.Sprint(text)
	case FairValue:
		return FairColor.Sprint(text)
	default: // "Weak"
		return WeakColor.Sprint(text)
	}
}

// SelectOutputFile returns the file to write output to.
// If filePath is empty, it returns os.Stdout.
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

// GetDBFilePath returns the path to the default SQLite database file.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".trekrank.db"
	}
	return filepath.Join(homeDir, ".trekrank.db")
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
