// Package io reads and writes the plain-text matrix format.
//
// # Format
//
// A file starts with the matrix: one row per line, entries separated by
// whitespace. The matrix ends at the first blank line or at the first line
// containing a colon. Every line from there on may carry metadata:
//
//	1 0 1 -1
//	0 1 1  0
//
//	known: 3
//	unknowable: 1, 2
//
// A line containing "unknowable:" lists columns that every basis must
// include. Otherwise a line containing "known:" lists columns that no basis
// may include. Column indices are 0-based and separated by whitespace and/or
// commas. Other lines are ignored. The line that ends the matrix is itself
// read as metadata, so a file may go straight from the last row to
// "known: ...".
//
// # Errors
//
// Malformed input is reported as an *errors.Error with code INVALID_MATRIX:
// no rows, rows of differing length, unparsable or non-finite numbers, and
// column indices that do not parse or fall outside the matrix. A missing file
// is reported with code FILE_NOT_FOUND.
//
// # Round-trip
//
// [WriteMatrix] emits the same format, so a matrix can be exported and
// re-imported with its marks intact.
package io
