package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const defaultMaxRows = 10000

// SheetReader reads one worksheet of an xlsx workbook as header-keyed rows
type SheetReader struct {
	sheet     string
	maxRows   int
	headers   []string
	headerMap map[string]int
	rows      [][]string
}

// ReaderOption is a functional option for SheetReader configuration
type ReaderOption func(*SheetReader)

// WithSheet selects the worksheet by name. The active sheet is used by default.
func WithSheet(name string) ReaderOption {
	return func(r *SheetReader) {
		r.sheet = name
	}
}

// WithMaxRows limits the number of data rows accepted
func WithMaxRows(n int) ReaderOption {
	return func(r *SheetReader) {
		if n > 0 {
			r.maxRows = n
		}
	}
}

// NewSheetReader loads the workbook from src and parses the header row.
// Header names are trimmed and lower-cased.
func NewSheetReader(src io.Reader, opts ...ReaderOption) (*SheetReader, error) {
	r := &SheetReader{
		maxRows:   defaultMaxRows,
		headerMap: make(map[string]int),
	}
	for _, opt := range opts {
		opt(r)
	}

	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	defer func() { _ = f.Close() }()

	if r.sheet == "" {
		r.sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	if len(rows) == 0 || isBlank(rows[0]) {
		return nil, ErrMissingHeader
	}

	r.headers = make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header := strings.ToLower(strings.TrimSpace(h))
		r.headers[i] = header
		if header != "" {
			r.headerMap[header] = i
		}
	}
	r.rows = rows[1:]
	if len(r.rows) > r.maxRows {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyRows, len(r.rows), r.maxRows)
	}
	return r, nil
}

// Sheet returns the name of the worksheet being read
func (r *SheetReader) Sheet() string {
	return r.sheet
}

// Headers returns the parsed header names
func (r *SheetReader) Headers() []string {
	return r.headers
}

// HasHeader checks if a header exists
func (r *SheetReader) HasHeader(name string) bool {
	_, ok := r.headerMap[name]
	return ok
}

// ValidateHeaders returns the required headers that are missing
func (r *SheetReader) ValidateHeaders(required []string) []string {
	var missing []string
	for _, h := range required {
		if !r.HasHeader(h) {
			missing = append(missing, h)
		}
	}
	return missing
}

// Row represents a parsed data row with its spreadsheet line number
type Row struct {
	LineNumber int
	Data       map[string]string
}

// Get returns the value for a column by header name
func (r *Row) Get(header string) string {
	return r.Data[header]
}

// GetOrDefault returns the value for a column, or def if empty
func (r *Row) GetOrDefault(header, def string) string {
	if val, ok := r.Data[header]; ok && val != "" {
		return val
	}
	return def
}

// IsEmpty returns true if the row has no non-empty values
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// Rows returns every non-empty data row. Line numbers are 1-based and
// count the header, so they match what a spreadsheet shows.
func (r *SheetReader) Rows() ([]*Row, error) {
	out := make([]*Row, 0, len(r.rows))
	for i, record := range r.rows {
		row := &Row{
			LineNumber: i + 2,
			Data:       make(map[string]string, len(r.headerMap)),
		}
		for header, idx := range r.headerMap {
			if idx < len(record) {
				row.Data[header] = strings.TrimSpace(record[idx])
			} else {
				row.Data[header] = ""
			}
		}
		if row.IsEmpty() {
			continue
		}
		out = append(out, row)
	}
	if len(out) == 0 {
		return nil, ErrNoDataRows
	}
	return out, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
