package catalog

import (
	"fmt"
	"strings"
)

// MissingColumnsError signals that the dataset schema itself is malformed:
// one or more required columns are entirely absent. This aborts the whole
// batch instead of silently skipping every row.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("dataset is missing required columns: %s", strings.Join(e.Columns, ", "))
}

// Stats summarizes validation for the batch log.
type Stats struct {
	// Total is the number of rows read from the source.
	Total int
	// Dropped rows were missing a required field value.
	Dropped int
	// Filtered rows were excluded by the caller's product-code subset.
	Filtered int
}

// ValidateAndGroup filters out rows missing any required field, optionally
// restricts rows to a subset of product codes, and groups the survivors by
// normalized model identifier. Group order follows the first appearance of
// each model; row order within a group follows the source.
func ValidateAndGroup(t *Table, required []string, subset []string, decimalComma bool) ([]ModelGroup, Stats, error) {
	var missing []string
	for _, col := range required {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, Stats{}, &MissingColumnsError{Columns: missing}
	}

	var wanted map[string]bool
	if subset != nil {
		wanted = make(map[string]bool, len(subset))
		for _, code := range subset {
			wanted[strings.TrimSpace(code)] = true
		}
	}

	stats := Stats{Total: len(t.Rows)}
	byKey := make(map[string]int)
	var groups []ModelGroup

	for _, raw := range t.Rows {
		row := buildRow(raw)
		if !rowValid(row, required) {
			stats.Dropped++
			continue
		}
		if wanted != nil && !wanted[row.Code] {
			stats.Filtered++
			continue
		}
		key := row.MatchKey(decimalComma)
		i, ok := byKey[key]
		if !ok {
			i = len(groups)
			byKey[key] = i
			groups = append(groups, ModelGroup{Key: key})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}
	return groups, stats, nil
}

func buildRow(raw map[string]string) ProductRow {
	row := ProductRow{
		Model:  strings.TrimSpace(raw[ColumnModel]),
		Code:   strings.TrimSpace(raw[ColumnCode]),
		Fields: make(map[string]Value),
	}
	for _, col := range MeasurementColumns() {
		if cell, ok := raw[col]; ok {
			row.Fields[col] = ParseValue(cell)
		}
	}
	return row
}

func rowValid(row ProductRow, required []string) bool {
	for _, col := range required {
		switch col {
		case ColumnModel:
			if row.Model == "" {
				return false
			}
		case ColumnCode:
			if row.Code == "" {
				return false
			}
		default:
			if row.Fields[col].Missing() {
				return false
			}
		}
	}
	return true
}
