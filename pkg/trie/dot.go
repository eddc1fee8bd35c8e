package trie

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT digraph of the trie.
//
// Internal nodes are drawn as points, recorded sequences as rounded boxes
// labeled with the full column list. Edges carry the column they branch on.
// If labels[c] exists column c is shown as labels[c], otherwise by number.
//
// When maxNodes > 0 at most that many nodes, internal points and set boxes
// together, are emitted. A "…" node linked from the last expanded node marks
// the truncation.
func (t *Trie) ToDOT(labels []string, maxNodes int) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Trie {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [arrowhead=none, fontsize=10];\n\n")

	w := dotWriter{t: t, buf: &buf, labels: labels, limit: maxNodes, path: make([]int, t.depth)}
	w.node(0, 0)
	if w.truncated {
		buf.WriteString("  more [label=\"…\", shape=plaintext, style=\"\"];\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	t         *Trie
	buf       *bytes.Buffer
	labels    []string
	limit     int
	emitted   int
	leaves    int
	truncated bool
	path      []int
}

func (w *dotWriter) label(c int) string {
	if c < len(w.labels) && w.labels[c] != "" {
		return w.labels[c]
	}
	return strconv.Itoa(c)
}

func (w *dotWriter) node(h, level int) {
	w.emitted++
	fmt.Fprintf(w.buf, "  n%d [label=\"\", shape=point, width=0.1];\n", h)

	base := h * w.t.width
	for v := 0; v < w.t.width; v++ {
		x := w.t.slots[base+v]
		if x == 0 {
			continue
		}
		if w.limit > 0 && w.emitted >= w.limit {
			w.truncated = true
			fmt.Fprintf(w.buf, "  n%d -> more [style=dashed];\n", h)
			return
		}
		w.path[level] = v
		if level == w.t.depth-1 {
			w.leaf(h, v)
			continue
		}
		fmt.Fprintf(w.buf, "  n%d -> n%d [label=%q];\n", h, x, w.label(v))
		w.node(int(x), level+1)
		if w.truncated {
			return
		}
	}
}

func (w *dotWriter) leaf(parent, v int) {
	w.emitted++
	id := fmt.Sprintf("s%d", w.leaves)
	w.leaves++

	var name bytes.Buffer
	for i, c := range w.path {
		if i > 0 {
			name.WriteByte(',')
		}
		name.WriteString(w.label(c))
	}
	fmt.Fprintf(w.buf, "  %s [label=%q, shape=box, style=\"filled,rounded\"];\n", id, name.String())
	fmt.Fprintf(w.buf, "  n%d -> %s [label=%q];\n", parent, id, w.label(v))
}

// RenderSVG renders ToDOT(labels, maxNodes) to an SVG document with
// Graphviz. Errors are wrapped with the failing stage.
func (t *Trie) RenderSVG(labels []string, maxNodes int) ([]byte, error) {
	dot := t.ToDOT(labels, maxNodes)

	gv, err := graphviz.New(context.Background())
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(context.Background(), g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
