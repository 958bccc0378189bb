// Package mdtable renders the fixed-width markdown used in report
// emails: pipe tables with columns padded to their widest cell, and
// underlined headings.
package mdtable

import "strings"

// Render produces a markdown table. Every column is left justified
// and padded to the width of its widest cell (never narrower than the
// header), rows have their trailing whitespace trimmed, and the table
// ends with a blank line.
func Render(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var text []string
	text = append(text, renderRow(headers, widths))

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	text = append(text, strings.Join(sep, " | "))

	for _, row := range rows {
		text = append(text, renderRow(row, widths))
	}
	text = append(text, "")
	return strings.Join(text, "\n")
}

func renderRow(cells []string, widths []int) string {
	padded := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = cell + strings.Repeat(" ", w-len(cell))
	}
	return strings.TrimRight(strings.Join(padded, " | "), " ")
}

// Title renders a setext-style level 1 heading.
func Title(s string) string {
	return s + "\n" + strings.Repeat("=", len(s)) + "\n"
}

// Heading renders a setext-style level 2 heading.
func Heading(s string) string {
	return s + "\n" + strings.Repeat("-", len(s)) + "\n"
}
