package parsers

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"csv-to-json/common"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrInvalidUTF8 is wrapped by header and record errors for fields that are
// not valid UTF-8
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// Row represents a single CSV data row in column order
type Row []string

// newCSVReader builds the csv.Reader shared by the count and read passes.
// A leading UTF-8 BOM is skipped so it never reaches the first header name.
func newCSVReader(r io.Reader) *csv.Reader {
	buffered := bufio.NewReader(r)
	if prefix, err := buffered.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		buffered.Discard(len(utf8BOM))
	}

	csvReader := csv.NewReader(buffered)
	csvReader.FieldsPerRecord = -1 // Rows may be shorter or longer than the header
	csvReader.LazyQuotes = true    // A bare " inside an unquoted field is literal
	return csvReader
}

// CountRows counts the data rows (header excluded) in r.
// Malformed rows are counted too; the read pass reports them.
func CountRows(r io.Reader) (int, error) {
	csvReader := newCSVReader(r)
	csvReader.ReuseRecord = true

	count := -1 // header
	for {
		_, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return 0, err
			}
		}
		count++
	}

	if count < 0 {
		return 0, nil
	}
	return count, nil
}

// CountRecords opens path and counts its data rows
func CountRecords(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, common.NewError(common.KindInputOpen, path, err)
	}
	defer file.Close()

	count, err := CountRows(file)
	if err != nil {
		return 0, common.NewError(common.KindInputOpen, path, err)
	}
	return count, nil
}

// Reader yields the data rows of a CSV source one at a time after the
// header row. It is a single forward pass and stops at the first bad row.
type Reader struct {
	name      string
	closer    io.Closer
	csvReader *csv.Reader
	headers   []string
	records   int
	err       error
}

// NewReader reads the header row from r. name is used in error messages.
// An empty source yields no headers and no rows.
func NewReader(r io.Reader, name string) (*Reader, error) {
	reader := &Reader{
		name:      name,
		csvReader: newCSVReader(r),
	}

	headers, err := reader.csvReader.Read()
	if err == io.EOF {
		reader.err = io.EOF
		return reader, nil
	}
	if err == nil {
		err = reader.validate(headers)
	}
	if err != nil {
		return nil, common.NewError(common.KindHeaderParse, name, err)
	}

	reader.headers = headers
	return reader, nil
}

// Open opens path and reads its header row
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, common.NewError(common.KindInputOpen, path, err)
	}

	reader, err := NewReader(file, path)
	if err != nil {
		file.Close()
		return nil, err
	}
	reader.closer = file
	return reader, nil
}

// Headers returns the header row
func (r *Reader) Headers() []string {
	return r.headers
}

// Records returns the number of data rows read so far
func (r *Reader) Records() int {
	return r.records
}

// Next returns the next data row, or io.EOF when the source is exhausted.
// After a read error every further call returns the same error.
func (r *Reader) Next() (Row, error) {
	if r.err != nil {
		return nil, r.err
	}

	record, err := r.csvReader.Read()
	if err == io.EOF {
		r.err = io.EOF
		return nil, io.EOF
	}
	if err == nil {
		err = r.validate(record)
	}
	if err != nil {
		r.err = &common.ConversionError{
			Kind:   common.KindRecordRead,
			Path:   r.name,
			Record: r.records + 1,
			Err:    err,
		}
		return nil, r.err
	}

	r.records++
	return Row(record), nil
}

// validate rejects fields that are not valid UTF-8. It must be called
// before the next Read, since FieldPos refers to the last record read.
func (r *Reader) validate(record []string) error {
	for i, field := range record {
		if !utf8.ValidString(field) {
			line, column := r.csvReader.FieldPos(i)
			return fmt.Errorf("line %d, column %d: %w", line, column, ErrInvalidUTF8)
		}
	}
	return nil
}

// Close releases the underlying file when the reader was created by Open
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
