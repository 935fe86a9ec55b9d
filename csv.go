// FILE: lixenwraith/typeconv/csv.go
package typeconv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVOption customizes ParseCSV.
type CSVOption func(*csvOptions)

type csvOptions struct {
	comma     rune
	keepEmpty bool
}

// WithComma sets the field delimiter. Default: ','
func WithComma(r rune) CSVOption {
	return func(o *csvOptions) {
		o.comma = r
	}
}

// KeepEmpty stores empty cells as "" instead of Missing.
func KeepEmpty() CSVOption {
	return func(o *csvOptions) {
		o.keepEmpty = true
	}
}

// ParseCSV materializes CSV bytes into a MemTable. The first record is the header.
// UTF-8 and UTF-16 byte order marks are honored. Short rows are padded with Missing,
// long rows are truncated to the header width.
func ParseCSV(data []byte, opts ...CSVOption) (*MemTable, error) {
	o := csvOptions{comma: ','}
	for _, opt := range opts {
		opt(&o)
	}

	decoded := transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	reader := csv.NewReader(decoded)
	reader.Comma = o.comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty CSV: no header row found")
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	table := NewTable(header...)

	// record position -> column; a repeated header name keeps its first position
	positions := make([]int, len(header))
	taken := make(map[int]bool, len(header))
	for i, h := range header {
		col := table.index[h]
		if taken[col] {
			positions[i] = -1
			continue
		}
		taken[col] = true
		positions[i] = col
	}

	for n := 1; ; n++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV record %d: %w", n, err)
		}

		row := table.NewRow()
		for i := 0; i < len(positions) && i < len(record); i++ {
			if positions[i] < 0 || (record[i] == "" && !o.keepEmpty) {
				continue
			}
			row.cells[positions[i]] = record[i]
		}
	}

	return table, nil
}
