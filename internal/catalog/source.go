package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/xuri/excelize/v2"
)

// Table holds the raw dataset: the trimmed header and one string map per row,
// in source order.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// HasColumn reports whether the source schema carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Source loads a catalog dataset.
type Source interface {
	Load() (*Table, error)
	// Path identifies the underlying file for logging.
	Path() string
}

// XLSXSource reads the first sheet of an Excel workbook; the first row is
// the header.
type XLSXSource struct {
	File string
}

func (s XLSXSource) Path() string { return s.File }

func (s XLSXSource) Load() (*Table, error) {
	f, err := excelize.OpenFile(s.File)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", s.File, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook %s: sheet %q has no header row", s.File, sheet)
	}

	header := make([]string, 0, len(rows[0]))
	for _, cell := range rows[0] {
		header = append(header, strings.TrimSpace(cell))
	}

	t := &Table{Columns: header}
	for _, cells := range rows[1:] {
		row := make(map[string]string, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(cells) {
				row[name] = cells[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// csvRow mirrors the catalog column vocabulary for csvutil decoding. Columns
// absent from the file are left empty and caught by schema validation.
type csvRow struct {
	Model          string `csv:"Model"`
	Code           string `csv:"Code"`
	Weight         string `csv:"Weight (kg)"`
	Width          string `csv:"Width"`
	Height         string `csv:"Height"`
	Depth          string `csv:"Depth"`
	StrapWidth     string `csv:"Strap width"`
	StrapMaxLength string `csv:"Strap max length"`
	StrapMinLength string `csv:"Strap min length"`
	Volume         string `csv:"Volume (l)"`
	EarHeight      string `csv:"Ear height"`
	EarWidth       string `csv:"Ear width"`
	EarBase        string `csv:"Ear base"`
}

func (r csvRow) toMap() map[string]string {
	return map[string]string{
		ColumnModel:          r.Model,
		ColumnCode:           r.Code,
		ColumnWeight:         r.Weight,
		ColumnWidth:          r.Width,
		ColumnHeight:         r.Height,
		ColumnDepth:          r.Depth,
		ColumnStrapWidth:     r.StrapWidth,
		ColumnStrapMaxLength: r.StrapMaxLength,
		ColumnStrapMinLength: r.StrapMinLength,
		ColumnVolume:         r.Volume,
		ColumnEarHeight:      r.EarHeight,
		ColumnEarWidth:       r.EarWidth,
		ColumnEarBase:        r.EarBase,
	}
}

// CSVSource reads a catalog exported as CSV.
type CSVSource struct {
	File string
}

func (s CSVSource) Path() string { return s.File }

func (s CSVSource) Load() (*Table, error) {
	file, err := os.Open(s.File)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.LazyQuotes = true
	rawHeader, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	// The decoder must see the trimmed names, or padded headers would pass
	// schema validation while every field decodes empty.
	header := make([]string, len(rawHeader))
	for i, name := range rawHeader {
		header[i] = strings.TrimSpace(name)
	}
	decoder, err := csvutil.NewDecoder(reader, header...)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder: %w", err)
	}

	t := &Table{Columns: header}
	for {
		var rec csvRow
		if err := decoder.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to decode CSV row: %w", err)
		}
		full := rec.toMap()
		row := make(map[string]string, len(header))
		for _, name := range header {
			if v, ok := full[name]; ok {
				row[name] = v
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
