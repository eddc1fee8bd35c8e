package io

import (
	"bufio"
	"bytes"
	stderrors "errors"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/matzehuels/flowbasis/pkg/errors"
	"github.com/matzehuels/flowbasis/pkg/matrix"
)

const (
	unknowablePrefix = "unknowable:"
	knownPrefix      = "known:"
)

// ReadMatrix decodes a matrix and its known/unknowable marks from r.
//
// ReadMatrix does not close r.
func ReadMatrix(r io.Reader) (*matrix.Dense, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var (
		rows       [][]float64
		known      []int
		unknowable []int
		inMatrix   = true
		line       int
	)
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if inMatrix {
			if strings.TrimSpace(text) == "" {
				inMatrix = false
				continue
			}
			if !strings.Contains(text, ":") {
				row, err := parseRow(text, line)
				if err != nil {
					return nil, err
				}
				rows = append(rows, row)
				continue
			}
			inMatrix = false
		}

		var err error
		switch {
		case strings.Contains(text, unknowablePrefix):
			unknowable, err = appendColumns(unknowable, text, unknowablePrefix, line)
		case strings.Contains(text, knownPrefix):
			known, err = appendColumns(known, text, knownPrefix, line)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read matrix")
	}

	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidMatrix, "no matrix rows")
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return nil, errors.New(errors.ErrCodeInvalidMatrix, "row %d has %d entries, want %d", i+1, len(row), width)
		}
	}

	m, err := matrix.NewDenseFromRows(rows)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMatrix, err, "build matrix")
	}
	if err := m.MarkKnown(known...); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMatrix, err, "known columns %v with %d columns", known, width)
	}
	if err := m.MarkUnknowable(unknowable...); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMatrix, err, "unknowable columns %v with %d columns", unknowable, width)
	}
	return m, nil
}

func parseRow(text string, line int) ([]float64, error) {
	fields := strings.Fields(text)
	row := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidMatrix, err, "line %d: entry %d", line, i+1)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.New(errors.ErrCodeInvalidMatrix, "line %d: entry %d is not finite", line, i+1)
		}
		row[i] = v
	}
	return row, nil
}

// appendColumns parses the indices following the first colon after prefix.
func appendColumns(dst []int, text, prefix string, line int) ([]int, error) {
	rest := text[strings.Index(text, prefix)+len(prefix):]
	fields := strings.FieldsFunc(rest, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	for _, f := range fields {
		c, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidMatrix, err, "line %d: column index %q", line, f)
		}
		dst = append(dst, c)
	}
	return dst, nil
}

// ImportMatrix reads the file at path with [ReadMatrix].
func ImportMatrix(path string) (*matrix.Dense, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ReadMatrix(bytes.NewReader(data))
}

// ReadFile returns the raw content of a matrix file. Missing files are
// reported with code FILE_NOT_FOUND.
func ReadFile(path string) ([]byte, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	return data, nil
}
