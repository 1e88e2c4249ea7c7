package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/sitcouncil/councilreports/internal/document"
)

// pageWidth is the printable width of the plain-text rendering, in runes.
const pageWidth = 100

// renderText writes m as plain text. Page breaks become form feeds and the
// footer is printed once at the end with the page placeholder filled in.
func renderText(w io.Writer, m *document.Model) error {
	pages := 1
	for _, s := range m.Sections {
		if _, ok := s.(document.PageBreak); ok {
			pages++
		}
	}

	var b strings.Builder
	page := 1
	for _, s := range m.Sections {
		switch v := s.(type) {
		case document.Heading:
			renderHeading(&b, v)
		case document.KeyValueBlock:
			renderKeyValues(&b, v)
		case document.Paragraph:
			renderParagraph(&b, v)
		case document.Table:
			renderTable(&b, v)
		case document.PageBreak:
			page++
			b.WriteString("\f\n")
		case document.SignatureBlock:
			fmt.Fprintf(&b, "%s\n\n", v.Title)
			for _, sig := range v.Signatures {
				fmt.Fprintf(&b, "  ______________________________\n  %s (%s)\n\n", sig.Name, sig.Role)
			}
		case document.Footer:
			label := strings.NewReplacer("{page}", fmt.Sprint(page), "{pages}", fmt.Sprint(pages)).Replace(v.PageLabel)
			b.WriteString(strings.Repeat("-", pageWidth) + "\n")
			fmt.Fprintf(&b, "%s | Document %s | Generated %s | %s\n",
				v.Note, v.DocumentID, document.FormatTimestamp(v.GeneratedAt), label)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func renderHeading(b *strings.Builder, h document.Heading) {
	switch h.Level {
	case 1:
		b.WriteString(strings.Repeat("=", pageWidth) + "\n")
		b.WriteString(center(strings.ToUpper(h.Text)) + "\n")
		if h.Subtitle != "" {
			b.WriteString(center(h.Subtitle) + "\n")
		}
		b.WriteString(strings.Repeat("=", pageWidth) + "\n\n")
	case 2:
		fmt.Fprintf(b, "%s\n%s\n\n", strings.ToUpper(h.Text), strings.Repeat("-", utf8.RuneCountInString(h.Text)))
	default:
		fmt.Fprintf(b, "%s\n\n", h.Text)
	}
}

func renderKeyValues(b *strings.Builder, kv document.KeyValueBlock) {
	if kv.Title != "" {
		fmt.Fprintf(b, "%s\n", kv.Title)
	}
	width := 0
	for _, p := range kv.Pairs {
		width = max(width, utf8.RuneCountInString(p.Key))
	}
	for _, p := range kv.Pairs {
		fmt.Fprintf(b, "  %s:%s %s\n", p.Key, strings.Repeat(" ", width-utf8.RuneCountInString(p.Key)), p.Value)
	}
	b.WriteString("\n")
}

func renderParagraph(b *strings.Builder, p document.Paragraph) {
	for i, line := range p.Lines {
		switch p.Style {
		case document.StyleBulleted:
			fmt.Fprintf(b, "  * %s\n", line)
		case document.StyleNumbered:
			fmt.Fprintf(b, "  %d. %s\n", i+1, line)
		default:
			fmt.Fprintf(b, "%s\n", line)
		}
	}
	b.WriteString("\n")
}

func renderTable(b *strings.Builder, t document.Table) {
	widths := make([]int, len(t.Widths))
	for i, pct := range t.Widths {
		widths[i] = max(pct*pageWidth/100-1, 3)
	}
	line := func(cells []string, marker string) {
		b.WriteString(marker)
		for i, cell := range cells {
			b.WriteString(pad(cell, widths[i]))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	line(t.Header, "  ")
	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}
	line(rule, "  ")
	if len(t.Rows) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, row := range t.Rows {
		marker := "  "
		if row.Flagged {
			marker = "! "
		}
		line(row.Cells, marker)
	}
	b.WriteString("\n")
}

// pad fits s into width runes, cutting it when the column is narrower than
// the cell.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		return string([]rune(s)[:width])
	}
	return s + strings.Repeat(" ", width-n)
}

func center(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= pageWidth {
		return s
	}
	return strings.Repeat(" ", (pageWidth-n)/2) + s
}
