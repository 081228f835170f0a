package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorBlue).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Table collects rows for lipgloss/table rendering. Columns can be styled
// by their cell value, e.g. a status column through StatusStyle.
type Table struct {
	headers   []string
	rows      [][]string
	colStyles map[int]func(cell string) lipgloss.Style
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// Row appends a data row.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// StyleColumn renders every data cell of column col with the style fn
// returns for the cell's text.
func (t *Table) StyleColumn(col int, fn func(cell string) lipgloss.Style) *Table {
	if t.colStyles == nil {
		t.colStyles = make(map[int]func(string) lipgloss.Style)
	}
	t.colStyles[col] = fn
	return t
}

func (t *Table) cellStyle(row, col int) lipgloss.Style {
	if row == table.HeaderRow {
		return tableHeaderStyle
	}
	fn, ok := t.colStyles[col]
	if !ok || row < 0 || row >= len(t.rows) || col >= len(t.rows[row]) {
		return tableCellStyle
	}
	return fn(t.rows[row][col]).Inherit(tableCellStyle)
}

// String renders the table.
func (t *Table) String() string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorDimGray)).
		Headers(t.headers...).
		Rows(t.rows...).
		StyleFunc(t.cellStyle).
		String()
}
