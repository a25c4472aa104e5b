/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Sentinel errors of the features package.
*/

package features

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldMismatch indicates a table row whose field count differs from the header.
	ErrFieldMismatch = errors.New("features: field length mismatch")
	// ErrEmptyTable indicates input without a header row.
	ErrEmptyTable = errors.New("features: table has no header")
	// ErrDuplicateFeature indicates a feature name repeated in the header.
	ErrDuplicateFeature = errors.New("features: duplicate feature name")
	// ErrDuplicatePhoneme indicates two rows for the same phoneme.
	ErrDuplicatePhoneme = errors.New("features: duplicate phoneme row")
	// ErrUnknownPhoneme indicates a phoneme that is not in the table.
	ErrUnknownPhoneme = errors.New("features: unknown phoneme")
	// ErrUnknownFeature indicates a feature name that is not in the table.
	ErrUnknownFeature = errors.New("features: unknown feature")
	// ErrInvalidConstraint indicates a malformed signed feature such as "voiced" or "*nasal".
	ErrInvalidConstraint = errors.New("features: invalid signed feature")
	// ErrRepeatedFeature indicates a description naming the same feature twice.
	ErrRepeatedFeature = errors.New("features: feature repeated in description")
)

// FormatError reports a malformed row in a feature table file
type FormatError struct {
	Line int // 1-based line number
	Got  int // fields on the line
	Want int // header fields plus the phoneme column
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("features: field length mismatch on line %d: got %d fields, want %d", e.Line, e.Got, e.Want)
}

func (e *FormatError) Unwrap() error {
	return ErrFieldMismatch
}
