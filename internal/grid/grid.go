// Package grid lays per-tag task groups out as a multi-column terminal
// overview of fixed-size cells.
package grid

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	MinCellWidth  = 30
	MinCellHeight = 10

	// Room reserved below the grid: 2 prompt lines * 2 + 1 divider line.
	heightOverhead = 5
)

// Render lays the tag groups out as a text block sized to a width x height
// terminal. Tags are sorted alphabetically and fill the grid in reading
// order. Each cell shows the tag with its line count, a dash underline, and
// the group's lines, truncated or padded to the cell height; a row wider
// than the cell is cut short with a ~ marker. Every emitted row is exactly
// width characters. With no groups only the header row is returned.
func Render(groups map[string][]string, width, height int) string {
	header := renderHeader(width)
	if len(groups) == 0 {
		return header
	}

	nx := width / MinCellWidth
	if nx < 1 {
		nx = 1
	}
	ny := (len(groups) + nx - 1) / nx

	w := width / nx
	h := (height - heightOverhead - (ny - 1) - 1) / ny
	if h < MinCellHeight {
		h = MinCellHeight
	}

	tags := make([]string, 0, len(groups))
	for tag := range groups {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	cells := make([][]string, 0, nx*ny)
	for _, tag := range tags {
		cells = append(cells, renderCell(tag, groups[tag], w, h))
	}
	for len(cells) < nx*ny {
		cells = append(cells, blankCell(w, h))
	}

	// Cell i sits in column i%nx, so reading across a grid row follows the
	// sorted tag order. Each cell contributes h rows plus a separator row.
	blank := strings.Repeat(" ", w)
	var rows []string
	for y := 0; y < ny; y++ {
		for l := 0; l <= h; l++ {
			var b strings.Builder
			for x := 0; x < nx; x++ {
				if l < h {
					b.WriteString(cells[y*nx+x][l])
				} else {
					b.WriteString(blank)
				}
			}
			rows = append(rows, pad(b.String(), width))
		}
	}
	rows = rows[:len(rows)-1] // no separator after the last row of cells

	return header + "\n" + strings.Join(rows, "\n")
}

func renderHeader(width int) string {
	header := strings.Repeat("-", width/2) + "TAGS"
	if len(header) > width {
		return header[:width]
	}
	return header + strings.Repeat("-", width-len(header))
}

func renderCell(tag string, lines []string, w, h int) []string {
	heading := fmt.Sprintf("%s: %d", tag, len(lines))
	underline := strings.Repeat("-", utf8.RuneCountInString(heading))

	content := make([]string, 0, h)
	content = append(content, heading, underline)
	content = append(content, lines...)
	if len(content) > h {
		content = content[:h]
	}
	for len(content) < h {
		content = append(content, "")
	}

	cell := make([]string, h)
	for i, line := range content {
		cell[i] = pad(shorten(line, w-1), w)
	}
	return cell
}

func blankCell(w, h int) []string {
	cell := make([]string, h)
	blank := strings.Repeat(" ", w)
	for i := range cell {
		cell[i] = blank
	}
	return cell
}

// shorten cuts line to at most max characters, marking a cut with ~.
func shorten(line string, max int) string {
	if max < 1 {
		return ""
	}
	runes := []rune(line)
	if len(runes) <= max {
		return line
	}
	return string(runes[:max-1]) + "~"
}

// pad right-pads line with spaces to exactly width characters.
func pad(line string, width int) string {
	n := width - utf8.RuneCountInString(line)
	if n <= 0 {
		return line
	}
	return line + strings.Repeat(" ", n)
}
