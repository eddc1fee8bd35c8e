// Package style holds the terminal palette shared by the CLI status output
// and the table report, so both render feasibility, missing impact and
// cached results in the same colors.
package style

import "github.com/charmbracelet/lipgloss"

var (
	teal  = lipgloss.Color("36")
	green = lipgloss.Color("35")
	amber = lipgloss.Color("220")
	blue  = lipgloss.Color("75")
	white = lipgloss.Color("255")
	gray  = lipgloss.Color("245")
	dim   = lipgloss.Color("240")
)

var (
	// Dim is muted text: separators, details, table borders.
	Dim = lipgloss.NewStyle().Foreground(dim)
	// Value is a plain data value.
	Value = lipgloss.NewStyle().Foreground(white)
	// Number is a headline count such as the feasible total.
	Number = lipgloss.NewStyle().Foreground(teal)
	// Label precedes a value in key/value lines.
	Label = lipgloss.NewStyle().Foreground(gray)
	// Warning text.
	Warning = lipgloss.NewStyle().Foreground(amber)
	// Command is a suggested shell command.
	Command = lipgloss.NewStyle().Foreground(blue)

	// Feasible marks success and feasible counts.
	Feasible = lipgloss.NewStyle().Foreground(green)
	// Missing marks an undefined value, such as the impact of a column no
	// feasible basis excludes.
	Missing = Dim

	// Cached and Computed tag where a result came from.
	Cached   = lipgloss.NewStyle().Foreground(green)
	Computed = lipgloss.NewStyle().Foreground(gray)

	// Spinner frames.
	Spinner = lipgloss.NewStyle().Foreground(teal)

	// Header is a table header cell.
	Header = lipgloss.NewStyle().Foreground(gray).Bold(true).Padding(0, 1)
	// Cell is a right-aligned table cell.
	Cell = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
)
