package matrix

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// String formats the entries followed by the known and unknowable columns.
// It is meant for debug output.
func (m *Dense) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v\n", mat.Formatted(mat.NewDense(m.rows, m.cols, m.data), mat.Squeeze()))
	fmt.Fprintf(&b, "known: %v\n", m.known)
	fmt.Fprintf(&b, "unknowable: %v\n", m.unknowable)
	return b.String()
}
