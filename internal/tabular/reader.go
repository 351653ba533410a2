package tabular

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"csv2json/internal/common"
	"csv2json/internal/record"
)

var (
	// ErrUnsupportedFormat is returned for file extensions no reader handles.
	ErrUnsupportedFormat = errors.New("unsupported input format")
	// ErrNoHeader is returned when the input has no header row left after
	// skipping.
	ErrNoHeader = errors.New("no header row")
	// ErrTooManyFields is returned for a data row wider than the header.
	ErrTooManyFields = errors.New("row has more fields than the header")
)

// Format is the kind of input file.
type Format int

const (
	FormatUnknown Format = iota
	FormatDelimited
	FormatExcel
)

// FormatFor picks the reader from the file extension.
func FormatFor(path string) Format {
	switch common.Ext(path) {
	case ".csv", ".txt", ".tsv":
		return FormatDelimited
	case ".xlsx", ".xlsm":
		return FormatExcel
	default:
		return FormatUnknown
	}
}

// Read loads a whole file into a table.
func Read(ctx context.Context, path string, opts ...Option) (*record.Table, error) {
	rows, err := readRows(ctx, path, -1, opts)
	if err != nil {
		return nil, err
	}

	return build(ctx, rows)
}

// Headers returns the disambiguated header row of a file without reading
// the data rows.
func Headers(ctx context.Context, path string, opts ...Option) ([]string, error) {
	rows, err := readRows(ctx, path, 1, opts)
	if err != nil {
		return nil, err
	}

	header, ok := common.First(rows)
	if !ok {
		return nil, ErrNoHeader
	}

	return uniqueHeaders(header), nil
}

// ReadDelimited reads delimited text from r.
func ReadDelimited(ctx context.Context, r io.Reader, opts ...Option) (*record.Table, error) {
	rows, err := delimitedRows(ctx, r, -1, newOptions(opts))
	if err != nil {
		return nil, err
	}

	return build(ctx, rows)
}

// ReadExcel reads a worksheet from an xlsx workbook in r.
func ReadExcel(ctx context.Context, r io.Reader, opts ...Option) (*record.Table, error) {
	rows, err := excelRows(ctx, r, -1, newOptions(opts))
	if err != nil {
		return nil, err
	}

	return build(ctx, rows)
}

// readRows returns at most limit raw rows after skipping, the header row
// first. Blank lines before the header are ignored. A negative limit reads everything.
func readRows(ctx context.Context, path string, limit int, opts []Option) ([][]string, error) {
	format := FormatFor(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	defer f.Close()

	o := newOptions(opts)
	if format == FormatDelimited && common.Ext(path) == ".tsv" && o.Delimiter == DefaultDelimiter {
		o.Delimiter = '\t'
	}

	var rows [][]string
	if format == FormatExcel {
		rows, err = excelRows(ctx, f, limit, o)
	} else {
		rows, err = delimitedRows(ctx, f, limit, o)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}

	return rows, nil
}

func delimitedRows(ctx context.Context, r io.Reader, limit int, o Options) ([][]string, error) {
	decoded, err := Decoder(r, o.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(decoded)
	cr.Comma = o.Delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string

	skipped := 0

	for limit < 0 || len(rows) < limit {
		if len(rows)%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		if skipped < o.SkipRows {
			skipped++
			continue
		}

		if len(rows) == 0 && isBlank(row) {
			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func excelRows(ctx context.Context, r io.Reader, limit int, o Options) ([][]string, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheet := o.Sheet
	if sheet == "" {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoHeader
		}

		sheet = sheets[0]
	} else if idx, err := wb.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", sheet)
	}

	it, err := wb.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to open sheet %q: %w", sheet, err)
	}
	defer it.Close()

	var rows [][]string

	for line := 0; it.Next() && (limit < 0 || len(rows) < limit); line++ {
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row, err := it.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, err
		}

		if line < o.SkipRows || (len(rows) == 0 && isBlank(row)) {
			continue
		}

		rows = append(rows, row)
	}

	if err := it.Error(); err != nil {
		return nil, err
	}

	return rows, nil
}

// build turns raw rows into records. Rows with no non-blank cell are
// dropped and short rows are padded with nil.
func build(ctx context.Context, rows [][]string) (*record.Table, error) {
	if common.IsEmpty(rows) {
		return nil, ErrNoHeader
	}

	headers := uniqueHeaders(rows[0])
	t := &record.Table{
		Headers: headers,
		Records: make([]*record.Record, 0, len(rows)-1),
	}

	for i, row := range rows[1:] {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		if isBlank(row) {
			continue
		}

		if len(row) > len(headers) && !isBlank(row[len(headers):]) {
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d",
				ErrTooManyFields, i+2, len(row), len(headers))
		}

		rec := record.New()

		for j, name := range headers {
			var v any
			if j < len(row) && row[j] != "" {
				v = row[j]
			}

			rec.Set(name, v)
		}

		t.Records = append(t.Records, rec)
	}

	return t, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
