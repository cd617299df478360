// Package table provides a small row-indexed table of string cells.
//
// A Table is what the staged model lifecycle passes around as a dataset: it is read from a CSV file, handed to a
// model for preprocessing or prediction, and written back to disk. Every row carries an index value, which plays the
// part of the item identifier when a submission is produced.
//
// When a CSV file is read, the index is taken from a named column (see WithIndexColumn), from the first column when
// its header cell is empty (the layout written by WriteCSV with the index included), or otherwise from the row ordinal
// starting at 0.
package table
