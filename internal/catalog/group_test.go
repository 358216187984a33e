package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRow(model, code string) map[string]string {
	return map[string]string{
		ColumnModel:          model,
		ColumnCode:           code,
		ColumnWeight:         "0.5",
		ColumnWidth:          "30",
		ColumnHeight:         "20",
		ColumnDepth:          "10.4",
		ColumnStrapWidth:     "4",
		ColumnStrapMaxLength: "120",
		ColumnStrapMinLength: "60",
	}
}

func testTable(rows ...map[string]string) *Table {
	return &Table{Columns: RequiredColumns(), Rows: rows}
}

func TestValidateAndGroup_DropsIncompleteRows(t *testing.T) {
	broken := fullRow("7", "B2")
	broken[ColumnWeight] = ""
	noCode := fullRow("7", "")

	groups, stats, err := ValidateAndGroup(
		testTable(fullRow("7", "B1"), broken, noCode), RequiredColumns(), nil, false)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Dropped)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Rows, 1)
	assert.Equal(t, "B1", groups[0].Rows[0].Code)
}

func TestValidateAndGroup_GroupingPreservesOrder(t *testing.T) {
	groups, _, err := ValidateAndGroup(testTable(
		fullRow("9", "A1"),
		fullRow("7", "B1"),
		fullRow("9.0", "A2"), // same model as "9" after normalization
		fullRow("7", "B2"),
	), RequiredColumns(), nil, false)
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.Equal(t, "9", groups[0].Key)
	assert.Equal(t, "7", groups[1].Key)
	assert.Equal(t, []string{"A1", "A2"}, rowCodes(groups[0]))
	assert.Equal(t, []string{"B1", "B2"}, rowCodes(groups[1]))
}

func TestValidateAndGroup_SubsetFilter(t *testing.T) {
	groups, stats, err := ValidateAndGroup(testTable(
		fullRow("7", "B1"),
		fullRow("7", "B2"),
		fullRow("9", "A1"),
	), RequiredColumns(), []string{"B2"}, false)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Filtered)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"B2"}, rowCodes(groups[0]))
}

func TestValidateAndGroup_SubsetWithUnknownCodes(t *testing.T) {
	groups, _, err := ValidateAndGroup(
		testTable(fullRow("7", "B1")), RequiredColumns(), []string{"nope"}, false)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestValidateAndGroup_MissingColumnIsStructural(t *testing.T) {
	table := &Table{
		Columns: []string{ColumnModel, ColumnCode},
		Rows:    []map[string]string{fullRow("7", "B1")},
	}
	_, _, err := ValidateAndGroup(table, RequiredColumns(), nil, false)

	var missing *MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, missing.Columns, ColumnWeight)
	assert.Contains(t, missing.Columns, ColumnDepth)
}

func rowCodes(g ModelGroup) []string {
	codes := make([]string, 0, len(g.Rows))
	for _, r := range g.Rows {
		codes = append(codes, r.Code)
	}
	return codes
}
