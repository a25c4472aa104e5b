/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: inventory.go
Description: Loaders for language inventories. A phoneme list file holds one phoneme
per line; a languages CSV holds one language per row with its family and its core
inventory written as a bracketed list. Duplicate phonemes collapse, order is kept.
*/

package inventory

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrMissingColumn indicates a languages CSV without one of the required columns.
	ErrMissingColumn = errors.New("inventory: missing column")
	// ErrEmptyInventory indicates a language or list with no phonemes.
	ErrEmptyInventory = errors.New("inventory: no phonemes")
)

// Column names in the languages CSV
const (
	ColumnLanguage  = "language"
	ColumnFamily    = "family"
	ColumnInventory = "core inventory"
)

// Language is one inventory from a languages dataset
type Language struct {
	Name     string   `json:"name" yaml:"name"`
	Family   string   `json:"family" yaml:"family"`
	Phonemes []string `json:"phonemes" yaml:"phonemes"`
}

// LoadPhonemeList reads a one-phoneme-per-line file
func LoadPhonemeList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open phoneme list: %w", err)
	}
	defer file.Close()

	return ReadPhonemeList(file)
}

// ReadPhonemeList parses a one-phoneme-per-line list
func ReadPhonemeList(r io.Reader) ([]string, error) {
	dedup := newDedupSet()
	var phonemes []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p := strings.TrimSpace(scanner.Text())
		if p == "" || !dedup.isUnique(p) {
			continue
		}
		phonemes = append(phonemes, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read phoneme list: %w", err)
	}
	if len(phonemes) == 0 {
		return nil, ErrEmptyInventory
	}

	return phonemes, nil
}

// LoadLanguages reads a languages CSV
func LoadLanguages(path string) ([]Language, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open languages file: %w", err)
	}
	defer file.Close()

	return ReadLanguages(file)
}

// ReadLanguages parses a languages CSV. Rows whose inventory is empty are skipped.
func ReadLanguages(r io.Reader) ([]Language, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1

	header, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{ColumnLanguage, ColumnFamily, ColumnInventory} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, required)
		}
	}

	var languages []Language
	for {
		rec, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		lang := Language{
			Name:     LanguageName(field(rec, columns[ColumnLanguage])),
			Family:   strings.TrimSpace(field(rec, columns[ColumnFamily])),
			Phonemes: ParseInventoryList(field(rec, columns[ColumnInventory])),
		}
		if len(lang.Phonemes) == 0 {
			continue
		}
		languages = append(languages, lang)
	}

	return languages, nil
}

// LanguageName makes a dataset name safe for file names ("a/b" becomes "a or b")
func LanguageName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), "/", " or ")
}

// ParseInventoryList reads a bracketed list such as "['p', 'b', 'm']"
func ParseInventoryList(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	dedup := newDedupSet()
	var phonemes []string
	for _, item := range strings.Split(s, ",") {
		p := strings.TrimSpace(strings.ReplaceAll(item, "'", ""))
		if p == "" || !dedup.isUnique(p) {
			continue
		}
		phonemes = append(phonemes, p)
	}
	return phonemes
}

// field returns rec[i] or "" for short records
func field(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

// dedupSet tracks phonemes already seen
type dedupSet map[string]struct{}

func newDedupSet() dedupSet {
	return make(dedupSet)
}

// isUnique reports whether p is new and records it
func (d dedupSet) isUnique(p string) bool {
	if _, exists := d[p]; exists {
		return false
	}
	d[p] = struct{}{}
	return true
}
