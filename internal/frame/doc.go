// Package frame holds the small tabular data type the demo pages render.
//
// A Frame is an ordered list of named columns with string cells and an
// implicit 0-based row index. Numeric columns are stored in their canonical
// string form so a frame read from CSV renders verbatim, while Floats parses
// them back for charting.
//
// CSV output follows the usual dataframe layout: the header row starts with
// an empty cell for the index column and every data row starts with its
// index.
//
//	,Name,Age,City
//	0,John,28,New York
//
// ReadCSV parses with default rules (comma delimiter, first row as header).
// ReadIndexedCSV additionally treats the first column as the row index,
// which is how a file produced by WriteCSV round-trips.
package frame
