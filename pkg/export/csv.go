package export

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/user/nessus2csv/pkg/engine"
)

// RowWriter serializes flattened findings.
type RowWriter interface {
	WriteHeader() error
	Write(row engine.FlatRecord) error
	Flush() error
}

// CSVWriter writes rows with every field quoted and CRLF line endings.
type CSVWriter struct {
	w      *bufio.Writer
	schema *engine.Schema
}

func NewCSVWriter(w io.Writer, schema *engine.Schema) *CSVWriter {
	return &CSVWriter{w: bufio.NewWriter(w), schema: schema}
}

func (c *CSVWriter) WriteHeader() error {
	return c.writeLine(c.schema.Columns())
}

func (c *CSVWriter) Write(row engine.FlatRecord) error {
	return c.writeLine(row.Values())
}

func (c *CSVWriter) Flush() error {
	return c.w.Flush()
}

func (c *CSVWriter) writeLine(fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := c.w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := c.w.WriteString(quote(f)); err != nil {
			return err
		}
	}
	_, err := c.w.WriteString("\r\n")
	return err
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// WriteAll writes the header followed by every row and flushes.
func WriteAll(w RowWriter, rows []engine.FlatRecord) error {
	if err := w.WriteHeader(); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	for i, row := range rows {
		if err := w.Write(row); err != nil {
			return errors.Wrapf(err, "failed to write row %d", i+1)
		}
	}
	return errors.Wrap(w.Flush(), "failed to flush output")
}

// WriteFile creates path and writes the report into it as CSV.
func WriteFile(path string, report *engine.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not create %q", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "could not close %q", path)
		}
	}()

	return WriteAll(NewCSVWriter(f, report.Schema), report.Records())
}
