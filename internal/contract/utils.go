package contract

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Utilization label constants.
const (
	CriticalValue = "Critical" // Critical load
	HighValue     = "High"     // High load
	ModerateValue = "Moderate" // Moderate load
	LowValue      = "Low"      // Low load
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // criticalColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // highColor represents strong, distinct warning.
	ModerateColor = color.New(color.FgYellow)              // moderateColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // lowColor represents informational / low-priority signal.
)

// GetPlainLabel returns a plain text label indicating the load level for a
// utilization ratio. This is the core logic used for CSV, JSON, and table
// printing. An infinite ratio (demand on a zero-capacity day) is Critical.
func GetPlainLabel(utilization float64) string {
	switch {
	case math.IsInf(utilization, 1) || utilization >= 1.5:
		return CriticalValue
	case utilization > 1.0:
		return HighValue
	case utilization >= 0.8:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(utilization float64) string {
	text := GetPlainLabel(utilization)

	switch text {
	case CriticalValue:
		return CriticalColor.Sprint(text)
	case HighValue:
		return HighColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when the path is empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
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

// GetStoreDBFilePath returns the path to the SQLite DB file for override storage.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".capsight_overrides.db"
	}
	return filepath.Join(homeDir, ".capsight_overrides.db")
}

// FormatRatio renders a utilization ratio for tables, using an infinity glyph
// for demand landing on zero-capacity days.
func FormatRatio(utilization float64) string {
	if math.IsInf(utilization, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.3f", utilization)
}
