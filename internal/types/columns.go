// Package types provides the data model shared by the extraction and sheet-synchronization pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"strings"
)

// ErrEmptyColumnSpec is returned when a column list contains no usable names.
var ErrEmptyColumnSpec = errors.New("column list is empty")

// ColumnSpec is the operator-supplied ordered list of target fields. It drives both the
// extraction prompt and the header order of a newly created sheet.
type ColumnSpec []string

// ParseColumnSpec splits comma-separated operator input into a ColumnSpec.
// Names are trimmed, blanks are dropped and repeated names keep their first position.
func ParseColumnSpec(input string) (ColumnSpec, error) {
	return NewColumnSpec(strings.Split(input, ","))
}

// NewColumnSpec normalizes an already split list of column names.
func NewColumnSpec(names []string) (ColumnSpec, error) {
	seen := make(map[string]bool, len(names))
	cols := make(ColumnSpec, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		cols = append(cols, name)
	}
	if len(cols) == 0 {
		return nil, ErrEmptyColumnSpec
	}
	return cols, nil
}

// Validate reports whether the spec can be used for an extraction+save cycle.
func (c ColumnSpec) Validate() error {
	if len(c) == 0 {
		return ErrEmptyColumnSpec
	}
	for _, name := range c {
		if strings.TrimSpace(name) == "" {
			return ErrEmptyColumnSpec
		}
	}
	return nil
}

// Joined renders the columns the way they are presented to the model.
func (c ColumnSpec) Joined() string {
	return strings.Join(c, ", ")
}

// Contains reports whether name is one of the columns.
func (c ColumnSpec) Contains(name string) bool {
	for _, col := range c {
		if col == name {
			return true
		}
	}
	return false
}
