package table

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

type readConfig struct {
	indexColumn    string
	indexColumnSet bool
}

// ReadOption configures ReadCSV.
type ReadOption func(c *readConfig)

// WithIndexColumn reads the row index from the named column. The column is removed from the data columns. The name
// must not be empty.
func WithIndexColumn(name string) ReadOption {
	return func(c *readConfig) {
		c.indexColumn = name
		c.indexColumnSet = true
	}
}

type writeConfig struct {
	withoutIndex bool
}

// WriteOption configures WriteCSV.
type WriteOption func(c *writeConfig)

// WithoutIndex leaves the index column out of the written file.
func WithoutIndex() WriteOption {
	return func(c *writeConfig) {
		c.withoutIndex = true
	}
}

// ReadCSV reads a table from CSV. The first record is the header.
func ReadCSV(r io.Reader, opts ...ReadOption) (*Table, error) {
	conf := &readConfig{}
	for _, opt := range opts {
		opt(conf)
	}

	if conf.indexColumnSet && conf.indexColumn == "" {
		return nil, ErrIndexColumnEmpty
	}

	reader := csv.NewReader(r)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}

	if err != nil {
		return nil, errors.Wrap(err, "unable to read header")
	}

	indexPos := -1

	switch {
	case conf.indexColumnSet:
		for i, name := range header {
			if name == conf.indexColumn {
				indexPos = i

				break
			}
		}

		if indexPos < 0 {
			return nil, errors.Wrapf(ErrColumnNotFound, "index column %q", conf.indexColumn)
		}
	case len(header) > 0 && header[0] == "":
		indexPos = 0
	}

	columns := make([]string, 0, len(header))
	for i, name := range header {
		if i != indexPos {
			columns = append(columns, name)
		}
	}

	tbl, err := New(columns...)
	if err != nil {
		return nil, err
	}

	for line := 0; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, errors.Wrapf(err, "unable to read record %d", line)
		}

		index := strconv.Itoa(line)
		values := record

		if indexPos >= 0 {
			index = record[indexPos]
			values = make([]string, 0, len(record)-1)
			values = append(values, record[:indexPos]...)
			values = append(values, record[indexPos+1:]...)
		}

		err = tbl.Append(index, values...)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to append record %d", line)
		}
	}

	return tbl, nil
}

// ReadCSVFile reads a table from a CSV file.
func ReadCSVFile(path string, opts ...ReadOption) (*Table, error) {
	if path == "" {
		return nil, ErrPathMustBeSet
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	defer file.Close()

	tbl, err := ReadCSV(file, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", path)
	}

	return tbl, nil
}

// WriteCSV writes the table as CSV. The index is written as the first column, with an empty header cell, unless
// WithoutIndex is given.
func (t *Table) WriteCSV(w io.Writer, opts ...WriteOption) error {
	conf := &writeConfig{}
	for _, opt := range opts {
		opt(conf)
	}

	writer := csv.NewWriter(w)

	header := t.columns
	if !conf.withoutIndex {
		header = append([]string{""}, t.columns...)
	}

	err := writer.Write(header)
	if err != nil {
		return errors.Wrap(err, "unable to write header")
	}

	for i, row := range t.rows {
		record := row
		if !conf.withoutIndex {
			record = append([]string{t.index[i]}, row...)
		}

		err = writer.Write(record)
		if err != nil {
			return errors.Wrapf(err, "unable to write row %d", i)
		}
	}

	writer.Flush()

	return errors.Wrap(writer.Error(), "unable to flush csv writer")
}

// WriteCSVFile writes the table to a CSV file, replacing any existing file.
func (t *Table) WriteCSVFile(path string, opts ...WriteOption) (err error) {
	if path == "" {
		return ErrPathMustBeSet
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", path)
	}

	defer func() {
		err = multierr.Append(err, errors.Wrapf(file.Close(), "unable to close %s", path))
	}()

	err = t.WriteCSV(file, opts...)
	if err != nil {
		return errors.Wrapf(err, "unable to write %s", path)
	}

	return nil
}
