package table

import (
	"strconv"

	"github.com/pkg/errors"
)

// Table is an ordered collection of rows sharing the same columns. Each row has an index value.
type Table struct {
	index     []string
	columns   []string
	positions map[string]int
	rows      [][]string
}

// New creates an empty table with the given columns.
func New(columns ...string) (*Table, error) {
	positions := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, ok := positions[name]; ok {
			return nil, errors.Wrapf(ErrDuplicateColumn, "column %q", name)
		}
		positions[name] = i
	}

	return &Table{
		columns:   append([]string(nil), columns...),
		positions: positions,
	}, nil
}

// Append adds a row at the end of the table.
func (t *Table) Append(index string, values ...string) error {
	if len(values) != len(t.columns) {
		return errors.Wrapf(ErrColumnCount, "got %d values for %d columns", len(values), len(t.columns))
	}

	t.index = append(t.index, index)
	t.rows = append(t.rows, append([]string(nil), values...))

	return nil
}

// AppendRow adds a row whose index is its ordinal position.
func (t *Table) AppendRow(values ...string) error {
	return t.Append(strconv.Itoa(len(t.rows)), values...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Index returns the row index values in row order.
func (t *Table) Index() []string {
	return append([]string(nil), t.index...)
}

// SetIndex returns a new table whose index is the named column. The column is removed from the data columns.
func (t *Table) SetIndex(name string) (*Table, error) {
	if name == "" {
		return nil, ErrIndexColumnEmpty
	}

	index, err := t.Column(name)
	if err != nil {
		return nil, err
	}

	out, err := t.Drop(name)
	if err != nil {
		return nil, err
	}

	out.index = index

	return out, nil
}

// HasColumn reports whether the table has a column with this name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.positions[name]

	return ok
}

// Row returns a copy of the i-th row.
func (t *Table) Row(i int) ([]string, error) {
	if i < 0 || i >= len(t.rows) {
		return nil, errors.Wrapf(ErrRowOutOfRange, "row %d of %d", i, len(t.rows))
	}

	return append([]string(nil), t.rows[i]...), nil
}

// Column returns the values of a column in row order.
func (t *Table) Column(name string) ([]string, error) {
	pos, ok := t.positions[name]
	if !ok {
		return nil, errors.Wrapf(ErrColumnNotFound, "column %q", name)
	}

	values := make([]string, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[pos]
	}

	return values, nil
}

// Value returns the cell at row i in the given column.
func (t *Table) Value(i int, name string) (string, error) {
	pos, ok := t.positions[name]
	if !ok {
		return "", errors.Wrapf(ErrColumnNotFound, "column %q", name)
	}

	if i < 0 || i >= len(t.rows) {
		return "", errors.Wrapf(ErrRowOutOfRange, "row %d of %d", i, len(t.rows))
	}

	return t.rows[i][pos], nil
}

// Select returns a new table with only the given columns, in the given order. The index is kept.
func (t *Table) Select(names ...string) (*Table, error) {
	out, err := New(names...)
	if err != nil {
		return nil, err
	}

	positions := make([]int, len(names))
	for i, name := range names {
		pos, ok := t.positions[name]
		if !ok {
			return nil, errors.Wrapf(ErrColumnNotFound, "column %q", name)
		}
		positions[i] = pos
	}

	out.index = append([]string(nil), t.index...)
	out.rows = make([][]string, len(t.rows))

	for i, row := range t.rows {
		selected := make([]string, len(positions))
		for j, pos := range positions {
			selected[j] = row[pos]
		}
		out.rows[i] = selected
	}

	return out, nil
}

// Drop returns a new table without the given columns. Dropping an unknown column is an error.
func (t *Table) Drop(names ...string) (*Table, error) {
	dropped := make(map[string]struct{}, len(names))
	for _, name := range names {
		if !t.HasColumn(name) {
			return nil, errors.Wrapf(ErrColumnNotFound, "column %q", name)
		}
		dropped[name] = struct{}{}
	}

	kept := make([]string, 0, len(t.columns))
	for _, name := range t.columns {
		if _, ok := dropped[name]; !ok {
			kept = append(kept, name)
		}
	}

	return t.Select(kept...)
}

// AddColumn appends a column. There must be one value per row.
func (t *Table) AddColumn(name string, values []string) error {
	if t.HasColumn(name) {
		return errors.Wrapf(ErrColumnExists, "column %q", name)
	}

	if len(values) != len(t.rows) {
		return errors.Wrapf(ErrColumnLength, "got %d values for %d rows", len(values), len(t.rows))
	}

	t.positions[name] = len(t.columns)
	t.columns = append(t.columns, name)

	for i := range t.rows {
		t.rows[i] = append(t.rows[i], values[i])
	}

	return nil
}

// Map returns a new table where every cell of the column has been replaced by fn(cell).
func (t *Table) Map(name string, fn func(string) string) (*Table, error) {
	pos, ok := t.positions[name]
	if !ok {
		return nil, errors.Wrapf(ErrColumnNotFound, "column %q", name)
	}

	out, err := t.Select(t.columns...)
	if err != nil {
		return nil, err
	}

	for _, row := range out.rows {
		row[pos] = fn(row[pos])
	}

	return out, nil
}
