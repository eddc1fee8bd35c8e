package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/flowbasis/internal/style"
	"github.com/matzehuels/flowbasis/pkg/stats"
)

// status writes the decorated lines a command prints around its result.
// Commands only use it when stdout is not carrying a report, i.e. the report
// went to a file or the command has none.
type status struct {
	w io.Writer
}

func (c *CLI) status() status { return status{w: c.out} }

func (s status) mark(icon lipgloss.Style, glyph, msg string) {
	fmt.Fprintln(s.w, icon.Render(glyph)+" "+msg)
}

func (s status) success(format string, args ...any) {
	s.mark(style.Feasible, "✓", fmt.Sprintf(format, args...))
}

func (s status) warn(format string, args ...any) {
	s.mark(style.Warning, "!", style.Warning.Render(fmt.Sprintf(format, args...)))
}

func (s status) info(format string, args ...any) {
	s.mark(style.Label, "›", fmt.Sprintf(format, args...))
}

// detail prints an indented, muted line.
func (s status) detail(format string, args ...any) {
	fmt.Fprintln(s.w, "  "+style.Dim.Render(fmt.Sprintf(format, args...)))
}

// wrote names a file the command produced.
func (s status) wrote(path string) {
	fmt.Fprintln(s.w, "  "+style.Dim.Render("→")+" "+style.Value.Render(path))
}

func (s status) field(key, value string) {
	fmt.Fprintln(s.w, style.Label.Width(12).Render(key)+" "+style.Value.Render(value))
}

// search prints the counters of a finished search on one line, ending with
// where the result came from:
//
//	3 feasible · 3 checked · 0 repeats · 0 discarded · fresh
func (s status) search(st *stats.Stats, cached bool) {
	parts := []string{
		style.Feasible.Render(fmt.Sprintf("%d feasible", st.TotalFeasible)),
		style.Dim.Render(fmt.Sprintf("%d checked", st.Checked())),
		style.Dim.Render(fmt.Sprintf("%d repeats", st.Repeats)),
		style.Dim.Render(fmt.Sprintf("%d discarded", st.Discarded)),
	}
	if cached {
		parts = append(parts, style.Cached.Render("cached"))
	} else {
		parts = append(parts, style.Computed.Render("fresh"))
	}
	fmt.Fprintln(s.w, "  "+strings.Join(parts, style.Dim.Render(" · ")))
}

// hint suggests a follow-up command.
func (s status) hint(description, cmd string) {
	fmt.Fprintln(s.w, style.Dim.Render(description+":")+" "+style.Command.Render(cmd))
}
