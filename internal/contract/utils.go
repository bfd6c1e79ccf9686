package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Grade labels by wifescore, best first.
const (
	GradeAAAA = "AAAA"
	GradeAAA  = "AAA"
	GradeAA   = "AA"
	GradeA    = "A"
	GradeB    = "B"
	GradeC    = "C"
	GradeD    = "D"
)

// Color variables for console output.
var (
	QuadColor   = color.New(color.FgCyan, color.Bold)    // QuadColor marks near perfect play.
	TripleColor = color.New(color.FgYellow, color.Bold)  // TripleColor marks excellent play.
	DoubleColor = color.New(color.FgGreen)               // DoubleColor marks solid play.
	LowColor    = color.New(color.FgMagenta)             // LowColor marks everything below AA.
	WarnColor   = color.New(color.FgRed, color.Bold)     // WarnColor flags suspicious values.
	LabelColor  = color.New(color.FgHiBlack, color.Bold) // LabelColor is used for log prefixes.
)

// GetPlainGrade returns the grade of a wifescore in the 0 to 1 range.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainGrade(wifescore float64) string {
	switch {
	case wifescore >= 0.99955:
		return GradeAAAA
	case wifescore >= 0.997:
		return GradeAAA
	case wifescore >= 0.93:
		return GradeAA
	case wifescore >= 0.8:
		return GradeA
	case wifescore >= 0.7:
		return GradeB
	case wifescore >= 0.6:
		return GradeC
	default:
		return GradeD
	}
}

// GetColorGrade returns a colored grade for console output (table).
func GetColorGrade(wifescore float64) string {
	text := GetPlainGrade(wifescore)

	switch text {
	case GradeAAAA:
		return QuadColor.Sprint(text)
	case GradeAAA:
		return TripleColor.Sprint(text)
	case GradeAA:
		return DoubleColor.Sprint(text)
	default:
		return LowColor.Sprint(text)
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
	_, _ = fmt.Fprintf(os.Stderr, "%s %s: %v\n", WarnColor.Sprint("Fatal"), msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "%s %s: %v\n", LabelColor.Sprint("Warn"), msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for the chart timing cache.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".replaystat_cache.db"
	}
	return filepath.Join(homeDir, ".replaystat_cache.db")
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
