/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: export.go
Description: Writers for search output. Structured values go to timestamped JSON or
YAML files in an output directory; natural class listings use a plain text layout with
one "Phoneme:" header per natural class followed by every description found for it.
*/

package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kleascm/featuremin/pkg/search"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding of a written file
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat indicates a format other than json or yaml.
var ErrUnsupportedFormat = errors.New("export: unsupported format")

// timestampLayout prefixes every written file name
const timestampLayout = "2006-01-02_15-04-05"

// ParseFormat reads a format name ("yml" is accepted for yaml)
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Encode marshals value in the given format
func Encode(format Format, value interface{}) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Write stores value as <dir>/<timestamp>_<name>.<format> and returns the path
func Write(dir string, name string, format Format, value interface{}) (string, error) {
	data, err := Encode(format, value)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.%s", time.Now().Format(timestampLayout), FileName(name), format)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write output file: %w", err)
	}

	return path, nil
}

// FileName replaces characters that cannot appear in a file name
func FileName(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", " ", "_", ":", "_")
	if name = replacer.Replace(strings.TrimSpace(name)); name == "" {
		return "output"
	}
	return name
}

// WriteNaturalClasses lists every natural class with all of its descriptions.
// Targets that are not natural classes are left out.
func WriteNaturalClasses(w io.Writer, results []*search.Result) error {
	for _, r := range results {
		if r == nil || !r.NaturalClass {
			continue
		}
		if _, err := fmt.Fprintf(w, "\nPhoneme: {%s}", strings.Join(r.Target, ", ")); err != nil {
			return fmt.Errorf("failed to write natural class: %w", err)
		}
		for _, d := range r.Solutions.All() {
			if _, err := fmt.Fprintf(w, "\n%s", d); err != nil {
				return fmt.Errorf("failed to write description: %w", err)
			}
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// WriteNaturalClassesFile writes the listing to <dir>/natural_classes_<name>.txt
func WriteNaturalClassesFile(dir string, name string, results []*search.Result) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("natural_classes_%s.txt", FileName(name)))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create natural classes file: %w", err)
	}
	defer file.Close()

	if err := WriteNaturalClasses(file, results); err != nil {
		return "", err
	}
	return path, nil
}
