package document

import "unicode/utf8"

// MaxCellLength is the longest cell text kept in a table, in runes.
const MaxCellLength = 50

// Ellipsis marks truncated cell text.
const Ellipsis = "..."

// TruncateCell shortens s to MaxCellLength runes followed by Ellipsis.
func TruncateCell(s string) string {
	if utf8.RuneCountInString(s) <= MaxCellLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxCellLength]) + Ellipsis
}

// NormalizeWidths turns width hints into integer percentages summing to 100.
// Hints of the wrong length or with non-positive entries fall back to an
// equal split. Rounding leftovers go to the leftmost columns.
func NormalizeWidths(hints []int, columns int) []int {
	if columns <= 0 {
		return nil
	}

	valid := len(hints) == columns
	sum := 0
	for _, h := range hints {
		if h <= 0 {
			valid = false
		}
		sum += h
	}

	widths := make([]int, columns)
	if !valid {
		for i := range widths {
			widths[i] = 100 / columns
		}
	} else {
		for i, h := range hints {
			widths[i] = h * 100 / sum
		}
	}

	used := 0
	for _, w := range widths {
		used += w
	}
	for i := 0; used < 100; i = (i + 1) % columns {
		widths[i]++
		used++
	}
	return widths
}

// NewTable builds a table section. The header is always kept, even when rows
// is empty. Every row is padded or trimmed to the header arity and every cell
// is truncated with TruncateCell.
func NewTable(id, caption string, header []string, widths []int, rows []Row) Table {
	t := Table{
		ID:      id,
		Caption: caption,
		Header:  append([]string(nil), header...),
		Widths:  NormalizeWidths(widths, len(header)),
		Rows:    make([]Row, 0, len(rows)),
	}
	for _, row := range rows {
		cells := make([]string, len(header))
		for i := range cells {
			if i < len(row.Cells) {
				cells[i] = TruncateCell(row.Cells[i])
			}
		}
		t.Rows = append(t.Rows, Row{Cells: cells, Flagged: row.Flagged})
	}
	return t
}

// cells is shorthand for an unflagged row.
func cells(values ...string) Row {
	return Row{Cells: values}
}
