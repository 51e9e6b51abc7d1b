package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/trustscore/schema"
)

// Color variables for console output.
var (
	PassColor = color.New(color.FgGreen, color.Bold) // PassColor marks an artifact that met the threshold.
	FailColor = color.New(color.FgRed, color.Bold)   // FailColor marks an artifact below the threshold.
	NoneColor = color.New(color.FgYellow)            // NoneColor marks an artifact that could not be scored.
)

// GetColorLabel returns a colored text label for console output (table).
// It uses schema.GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(binary *int) string {
	text := schema.GetPlainLabel(binary)

	switch text {
	case schema.PassLabel:
		return PassColor.Sprint(text)
	case schema.FailLabel:
		return FailColor.Sprint(text)
	default:
		return NoneColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "ERROR: %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".trustscore_history.db"
	}
	return filepath.Join(homeDir, ".trustscore_history.db")
}

// TruncateText truncates s to maxWidth runes with an ellipsis suffix.
// Requires maxWidth > 3 to leave room for the ellipsis and some content.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
