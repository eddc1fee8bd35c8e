package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/flowbasis/pkg/matrix"
)

// WriteMatrix encodes m and its marks in the format read by [ReadMatrix].
// Entries are written with the shortest representation that parses back to
// the same value.
func WriteMatrix(w io.Writer, m *matrix.Dense) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			if j > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.FormatFloat(m.At(i, j), 'g', -1, 64))
		}
		bw.WriteByte('\n')
	}

	known, unknowable := m.Known(), m.Unknowable()
	if known.Len() > 0 || unknowable.Len() > 0 {
		bw.WriteByte('\n')
	}
	if known.Len() > 0 {
		fmt.Fprintf(bw, "%s %s\n", knownPrefix, joinColumns(known.Values()))
	}
	if unknowable.Len() > 0 {
		fmt.Fprintf(bw, "%s %s\n", unknowablePrefix, joinColumns(unknowable.Values()))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write matrix: %w", err)
	}
	return nil
}

func joinColumns(cols []int) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ", ")
}

// ExportMatrix writes m to a file at path.
// This is a convenience wrapper around [WriteMatrix] for file-based output.
func ExportMatrix(m *matrix.Dense, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteMatrix(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
