package table

import "github.com/pkg/errors"

var (
	ErrNoHeader         = errors.New("csv has no header")
	ErrColumnNotFound   = errors.New("column not found")
	ErrColumnExists     = errors.New("column already exists")
	ErrColumnCount      = errors.New("number of values does not match number of columns")
	ErrColumnLength     = errors.New("number of values does not match number of rows")
	ErrDuplicateColumn  = errors.New("duplicate column name")
	ErrRowOutOfRange    = errors.New("row out of range")
	ErrPathMustBeSet    = errors.New("path must be set")
	ErrIndexColumnEmpty = errors.New("index column name must be set")
)
