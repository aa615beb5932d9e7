package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"
	"golang.org/x/term"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

// terminalWidth returns the width of w when it is a terminal.
func terminalWidth(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// table prints rows in columns. The last column takes the remaining
// width and cells that do not fit are truncated.
type table struct {
	header []string
	rows   [][]string
	width  int
}

func newTable(width int, header ...string) *table {
	return &table{header: header, width: width}
}

func (t *table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) colWidths() []int {
	widths := make([]int, len(t.header))
	for _, row := range append([][]string{t.header}, t.rows...) {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	used := 0
	for i := 0; i < len(widths)-1; i++ {
		used += widths[i] + 2
	}
	if last := len(widths) - 1; last >= 0 && t.width > 0 {
		widths[last] = max(1, min(widths[last], t.width-used))
	}
	return widths
}

func (t *table) Render(w io.Writer) error {
	widths := t.colWidths()

	writeRow := func(row []string, style *lipgloss.Style) error {
		var b strings.Builder
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if lipgloss.Width(cell) > widths[i] {
				cell = truncate.StringWithTail(cell, uint(widths[i]), "…")
			}
			if i < len(widths)-1 {
				cell = padding.String(cell, uint(widths[i]+2))
			}
			if style != nil {
				cell = style.Render(cell)
			}
			b.WriteString(cell)
		}
		_, err := io.WriteString(w, strings.TrimRight(b.String(), " ")+"\n")
		return err
	}

	if err := writeRow(t.header, &headerStyle); err != nil {
		return err
	}
	for _, row := range t.rows {
		if err := writeRow(row, nil); err != nil {
			return err
		}
	}
	return nil
}
