package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Alignment controls how a column's cells are padded
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// headerPadding is the minimum gap between a header and its column border,
// on top of the one-space cell padding.
const headerPadding = 2

// Column describes one table column
type Column struct {
	Header string
	Align  Alignment
}

// RenderGrid writes rows as a grid table:
//
//	+--------------+---------+
//	| Node Label   |   Count |
//	+==============+=========+
//	| Person       |      10 |
//	+--------------+---------+
//
// Column widths are measured in terminal cells, so wide runes line up.
// A cell containing newlines spans several lines; shorter cells in the same
// row are padded with blank lines. With no rows only the header block is
// written.
func RenderGrid(w io.Writer, columns []Column, rows [][]string) error {
	widths := columnWidths(columns, rows)
	bw := bufio.NewWriter(w)

	writeRule(bw, widths, '-')
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.Header
	}
	writeRow(bw, columns, widths, headers)
	writeRule(bw, widths, '=')

	for _, row := range rows {
		writeRow(bw, columns, widths, row)
		writeRule(bw, widths, '-')
	}
	return bw.Flush()
}

func columnWidths(columns []Column, rows [][]string) []int {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = runewidth.StringWidth(c.Header) + headerPadding
	}
	for _, row := range rows {
		for i := range columns {
			if i >= len(row) {
				break
			}
			for _, line := range strings.Split(row[i], "\n") {
				if cw := runewidth.StringWidth(line); cw > widths[i] {
					widths[i] = cw
				}
			}
		}
	}
	return widths
}

func writeRule(w *bufio.Writer, widths []int, fill rune) {
	w.WriteByte('+')
	for _, width := range widths {
		w.WriteString(strings.Repeat(string(fill), width+2))
		w.WriteByte('+')
	}
	w.WriteByte('\n')
}

func writeRow(w *bufio.Writer, columns []Column, widths []int, cells []string) {
	lines := make([][]string, len(columns))
	height := 1
	for i := range columns {
		if i < len(cells) {
			lines[i] = strings.Split(cells[i], "\n")
		}
		if len(lines[i]) > height {
			height = len(lines[i])
		}
	}

	for n := 0; n < height; n++ {
		w.WriteByte('|')
		for i, c := range columns {
			var line string
			if n < len(lines[i]) {
				line = lines[i][n]
			}
			w.WriteByte(' ')
			if c.Align == AlignRight {
				w.WriteString(runewidth.FillLeft(line, widths[i]))
			} else {
				w.WriteString(runewidth.FillRight(line, widths[i]))
			}
			w.WriteString(" |")
		}
		w.WriteByte('\n')
	}
}
