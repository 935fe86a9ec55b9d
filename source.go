// FILE: lixenwraith/typeconv/source.go
package typeconv

import (
	"fmt"
	"net/url"
	"strings"
)

type missing struct{}

func (missing) String() string { return "<missing>" }

// Missing is the cell value of an absent column value, the equivalent of a database NULL.
// A Missing (or nil) cell never triggers a field write.
var Missing any = missing{}

// IsMissing reports whether v is nil or Missing.
func IsMissing(v any) bool {
	return v == nil || v == Missing
}

// Row is a single record with named columns.
type Row interface {
	// Has reports whether the row carries the column.
	Has(column string) bool
	// Value returns the cell of a column; ok is false when the column is unknown.
	Value(column string) (value any, ok bool)
	// Set writes a cell; it fails with ErrUnknownColumn for a column the row lacks.
	Set(column string, value any) error
}

// Table is an ordered set of rows sharing the same columns.
type Table interface {
	Columns() []string
	Len() int
	Row(i int) Row
}

// Collection is a string-keyed lookup such as form or query data.
type Collection interface {
	// Lookup returns the value stored under key; ok is false when the key is absent.
	Lookup(key string) (value any, ok bool)
}

// MemTable is an in-memory Table. Column lookup tries the exact name first
// and then a case-insensitive match.
type MemTable struct {
	columns []string
	index   map[string]int
	folded  map[string]int
	rows    []*MemRow
}

// NewTable creates an empty table with the given columns. Repeated names keep the first position.
func NewTable(columns ...string) *MemTable {
	t := &MemTable{
		index:  make(map[string]int, len(columns)),
		folded: make(map[string]int, len(columns)),
	}
	for _, col := range columns {
		if _, exists := t.index[col]; exists {
			continue
		}
		t.index[col] = len(t.columns)
		if _, exists := t.folded[strings.ToLower(col)]; !exists {
			t.folded[strings.ToLower(col)] = len(t.columns)
		}
		t.columns = append(t.columns, col)
	}
	return t
}

// Columns returns a copy of the column names in order.
func (t *MemTable) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Len returns the number of rows.
func (t *MemTable) Len() int {
	return len(t.rows)
}

// Row returns the i-th row.
func (t *MemTable) Row(i int) Row {
	return t.rows[i]
}

// At returns the i-th row as a *MemRow.
func (t *MemTable) At(i int) *MemRow {
	return t.rows[i]
}

// HasColumn reports whether the table carries the column.
func (t *MemTable) HasColumn(column string) bool {
	_, ok := t.lookup(column)
	return ok
}

// NewRow appends a row whose cells are all Missing and returns it.
func (t *MemTable) NewRow() *MemRow {
	row := &MemRow{table: t, cells: make([]any, len(t.columns))}
	for i := range row.cells {
		row.cells[i] = Missing
	}
	t.rows = append(t.rows, row)
	return row
}

// AddRow appends a row with one value per column, in column order.
func (t *MemTable) AddRow(values ...any) (*MemRow, error) {
	if len(values) != len(t.columns) {
		return nil, fmt.Errorf("row has %d values, table has %d columns", len(values), len(t.columns))
	}
	row := &MemRow{table: t, cells: append([]any(nil), values...)}
	t.rows = append(t.rows, row)
	return row, nil
}

func (t *MemTable) lookup(column string) (int, bool) {
	if i, ok := t.index[column]; ok {
		return i, true
	}
	i, ok := t.folded[strings.ToLower(column)]
	return i, ok
}

// MemRow is a row of a MemTable.
type MemRow struct {
	table *MemTable
	cells []any
}

// Has reports whether the owning table carries the column.
func (r *MemRow) Has(column string) bool {
	_, ok := r.table.lookup(column)
	return ok
}

// Value returns the cell stored under column.
func (r *MemRow) Value(column string) (any, bool) {
	i, ok := r.table.lookup(column)
	if !ok {
		return nil, false
	}
	return r.cells[i], true
}

// Set stores a cell under column.
func (r *MemRow) Set(column string, value any) error {
	i, ok := r.table.lookup(column)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}
	r.cells[i] = value
	return nil
}

// Values returns a copy of the cells in column order.
func (r *MemRow) Values() []any {
	return append([]any(nil), r.cells...)
}

// MapRow is a standalone Row backed by a map. The key set is the column set.
type MapRow map[string]any

func (r MapRow) Has(column string) bool {
	_, ok := r[column]
	return ok
}

func (r MapRow) Value(column string) (any, bool) {
	v, ok := r[column]
	return v, ok
}

func (r MapRow) Set(column string, value any) error {
	if _, ok := r[column]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}
	r[column] = value
	return nil
}

// Values adapts url.Values; repeated values are joined with commas.
type Values url.Values

func (v Values) Lookup(key string) (any, bool) {
	vals, ok := v[key]
	if !ok || len(vals) == 0 {
		return nil, false
	}
	return strings.Join(vals, ","), true
}

// StringMap adapts a map of strings.
type StringMap map[string]string

func (m StringMap) Lookup(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// AnyMap adapts a map of arbitrary values, such as decoded JSON.
type AnyMap map[string]any

func (m AnyMap) Lookup(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// TableToMap builds a map from two columns of a table, using the text form of each cell.
// Missing cells become empty strings; a repeated key fails with ErrDuplicateKey.
func TableToMap(table Table, keyColumn, valueColumn string) (map[string]string, error) {
	if isNil(table) {
		return nil, ErrNilSource
	}

	result := make(map[string]string, table.Len())
	for i := 0; i < table.Len(); i++ {
		row := table.Row(i)
		key, ok := row.Value(keyColumn)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, keyColumn)
		}
		value, ok := row.Value(valueColumn)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, valueColumn)
		}

		k := textOf(key)
		if _, exists := result[k]; exists {
			return nil, fmt.Errorf("%w: %q at row %d", ErrDuplicateKey, k, i)
		}
		result[k] = textOf(value)
	}
	return result, nil
}
