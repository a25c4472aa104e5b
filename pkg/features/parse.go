/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: parse.go
Description: Reader for whitespace-delimited feature tables. The first line names the
features; every following line holds a phoneme and one token per feature, where + and -
mark membership and any other token leaves the phoneme unmarked.
*/

package features

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadTable reads a feature table from a file
func LoadTable(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feature table: %w", err)
	}
	defer file.Close()

	return ReadTable(file)
}

// ReadTable parses a feature table. A row whose field count does not match the
// header is reported as a *FormatError.
func ReadTable(r io.Reader) (*Table, error) {
	type row struct {
		phoneme string
		marks   []string
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var header []string
	var rows []row
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if header == nil {
			if line == "" {
				continue
			}
			header = strings.Fields(line)
			continue
		}
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != len(header)+1 {
			return nil, &FormatError{Line: lineNo, Got: len(fields), Want: len(header) + 1}
		}
		rows = append(rows, row{phoneme: fields[0], marks: fields[1:]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feature table: %w", err)
	}
	if header == nil {
		return nil, ErrEmptyTable
	}

	phonemes := make([]string, len(rows))
	for i, r := range rows {
		phonemes[i] = r.phoneme
	}

	table, err := NewTable(phonemes, header)
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		for j, mark := range r.marks {
			sign := Sign(0)
			switch mark {
			case "+":
				sign = Plus
			case "-":
				sign = Minus
			default:
				continue // Unmarked
			}
			if err := table.Mark(r.phoneme, header[j], sign); err != nil {
				return nil, err
			}
		}
	}

	return table, nil
}
