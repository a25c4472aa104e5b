/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formatter.go
Description: Custom log formatter for featuremin. Colored levels, an event prefix for
the search events the Logger emits, and fields printed in sorted order so that two runs
over the same data produce the same lines.
*/

package logging

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// CustomFormatter provides structured, human readable output
type CustomFormatter struct {
	Timestamp bool
	Caller    bool
	Colors    bool
}

// Format formats a log entry
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var output strings.Builder

	if f.Timestamp {
		f.write(&output, 36, entry.Time.Format("2006-01-02 15:04:05.000"), "%s ")
	}

	f.write(&output, f.getLevelColor(entry.Level), strings.ToUpper(entry.Level.String()), "%s ")

	if prefix := eventPrefix(entry.Message); prefix != "" {
		f.write(&output, 35, prefix, "[%s] ")
	}

	if f.Caller && entry.HasCaller() {
		f.write(&output, 33, fmt.Sprintf("%s:%d", entry.Caller.File, entry.Caller.Line), "[%s] ")
	}

	output.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		output.WriteString(" ")
		output.WriteString(f.formatFields(entry.Data))
	}

	output.WriteString("\n")
	return []byte(output.String()), nil
}

// write appends s using layout, wrapped in the color when colors are on
func (f *CustomFormatter) write(b *strings.Builder, color int, s string, layout string) {
	if f.Colors {
		s = fmt.Sprintf("\033[%dm%s\033[0m", color, s)
	}
	fmt.Fprintf(b, layout, s)
}

// getLevelColor returns the ANSI color code for a log level
func (f *CustomFormatter) getLevelColor(level logrus.Level) int {
	switch level {
	case logrus.DebugLevel, logrus.TraceLevel:
		return 37 // White
	case logrus.InfoLevel:
		return 32 // Green
	case logrus.WarnLevel:
		return 33 // Yellow
	case logrus.ErrorLevel:
		return 31 // Red
	default:
		return 35 // Magenta
	}
}

// eventPrefix tags the events emitted by Logger and the batch engine
func eventPrefix(message string) string {
	switch {
	case strings.HasPrefix(message, "Target described"), strings.HasPrefix(message, "Set is"):
		return "TARGET"
	case strings.HasPrefix(message, "Language completed"):
		return "LANGUAGE"
	case strings.HasPrefix(message, "Best trees"), strings.HasPrefix(message, "Tree search"):
		return "TREE"
	case strings.HasPrefix(message, "Batch"):
		return "BATCH"
	default:
		return ""
	}
}

// formatFields formats structured fields sorted by key
func (f *CustomFormatter) formatFields(fields logrus.Fields) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value := formatValue(fields[key])
		if f.Colors {
			parts = append(parts, fmt.Sprintf("\033[34m%s\033[0m=\033[32m%s\033[0m", key, value))
		} else {
			parts = append(parts, fmt.Sprintf("%s=%s", key, value))
		}
	}

	return strings.Join(parts, " ")
}

// formatValue formats a field value appropriately
func formatValue(value interface{}) string {
	switch v := value.(type) {
	case time.Duration:
		return v.String()
	case time.Time:
		return v.Format("15:04:05.000")
	case float64:
		return fmt.Sprintf("%.2f", v)
	case []string:
		return "{" + strings.Join(v, ",") + "}"
	case string:
		if len(v) > 80 {
			return v[:80] + "..."
		}
		return v
	case error:
		return v.Error()
	default:
		return fmt.Sprintf("%v", v)
	}
}
