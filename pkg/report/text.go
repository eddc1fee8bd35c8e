package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/flowbasis/internal/style"
)

const textHeader = "Node Feasible     Sum Cond.   Sum Inv Cond         Impact"

// WriteText writes the fixed-width report. With details set, the repeat,
// singular and discarded counters follow the table.
func WriteText(w io.Writer, r *Report, details bool) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Number Feasible: %d\n", r.TotalFeasible)
	fmt.Fprintf(bw, "Normalization: %d\n", r.Normalization)
	fmt.Fprintf(bw, "Feasible by column: \n")
	fmt.Fprintln(bw, textHeader)
	for _, c := range r.ByColumn {
		fmt.Fprintf(bw, "%4d    %5d   %11.5f    %11.5f    ", c.Index, c.Feasible, float64(c.SumCond), float64(c.SumInvCond))
		if c.Impact != nil {
			fmt.Fprintf(bw, "%11.5f\n", float64(*c.Impact))
		} else {
			fmt.Fprintf(bw, "%11s\n", "NA")
		}
	}
	if details {
		fmt.Fprintf(bw, "Number of repeats: %d\n", r.Repeats)
		fmt.Fprintf(bw, "Number singular: %d\n", r.Singular)
		fmt.Fprintf(bw, "Number discarded: %d\n", r.Discarded)
	}
	return bw.Flush()
}

var (
	styleLabel = style.Label.Width(16)
	styleNA    = style.Cell.Inherit(style.Missing)
)

// WriteTable writes the report as a bordered terminal table preceded by the
// global counters.
func WriteTable(w io.Writer, r *Report) error {
	rows := make([][]string, len(r.ByColumn))
	for i, c := range r.ByColumn {
		impact := "NA"
		if c.Impact != nil {
			impact = strconv.FormatFloat(float64(*c.Impact), 'f', 5, 64)
		}
		rows[i] = []string{
			strconv.Itoa(c.Index),
			strconv.Itoa(c.Feasible),
			strconv.FormatFloat(float64(c.SumCond), 'f', 5, 64),
			strconv.FormatFloat(float64(c.SumInvCond), 'f', 5, 64),
			impact,
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(style.Dim).
		Headers("Node", "Feasible", "Sum Cond.", "Sum Inv Cond", "Impact").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return style.Header
			}
			if col == 4 && r.ByColumn[row].Impact == nil {
				return styleNA
			}
			return style.Cell
		})

	bw := bufio.NewWriter(w)
	line := func(label string, v any) {
		fmt.Fprintln(bw, styleLabel.Render(label)+" "+style.Number.Render(fmt.Sprint(v)))
	}
	line("Feasible", r.TotalFeasible)
	line("Normalization", r.Normalization)
	line("Checked", r.Checked)
	line("Repeats", r.Repeats)
	fmt.Fprintln(bw, t.Render())
	return bw.Flush()
}
