// Package document defines the renderer-agnostic document model and builds it
// from aggregated report bundles.
//
// A Model is an ordered list of sections. Renderers (PDF, HTML, plain text)
// walk the sections in order and never re-derive statistics; everything they
// print is already present as strings in the model. Encode converts a Model
// into a protobuf Struct tree for transport.
package document

import (
	"fmt"
	"time"
)

// Kind identifies a report layout.
type Kind string

const (
	KindMeetingMinutes    Kind = "meeting-minutes"
	KindMemberPerformance Kind = "member-performance"
	KindMonthlyActivity   Kind = "monthly-activity"
)

// Kinds lists every report kind.
var Kinds = []Kind{KindMeetingMinutes, KindMemberPerformance, KindMonthlyActivity}

// Valid reports whether k is a known report kind.
func (k Kind) Valid() bool {
	switch k {
	case KindMeetingMinutes, KindMemberPerformance, KindMonthlyActivity:
		return true
	}
	return false
}

// Title returns the human-readable report name.
func (k Kind) Title() string {
	switch k {
	case KindMeetingMinutes:
		return "Meeting Minutes"
	case KindMemberPerformance:
		return "Member Performance Report"
	case KindMonthlyActivity:
		return "Monthly Activity Report"
	}
	return string(k)
}

// SectionType discriminates the section variants.
type SectionType string

const (
	TypeHeading   SectionType = "heading"
	TypeKeyValue  SectionType = "key_value"
	TypeParagraph SectionType = "paragraph"
	TypeTable     SectionType = "table"
	TypePageBreak SectionType = "page_break"
	TypeSignature SectionType = "signature"
	TypeFooter    SectionType = "footer"
)

// Section is one element of a document. The set of implementations is closed.
type Section interface {
	Type() SectionType
	section()
}

// Heading starts a top-level section (Level 2), a subsection (Level 3) or
// the document header (Level 1).
type Heading struct {
	// ID is a stable slug renderers can use as an anchor.
	ID       string
	Level    int
	Text     string
	Subtitle string
}

// KeyValue is one labelled value.
type KeyValue struct {
	Key   string
	Value string
}

// KeyValueBlock is a list of labelled values, e.g. meeting details.
type KeyValueBlock struct {
	ID    string
	Title string
	Pairs []KeyValue
}

// ParagraphStyle controls how paragraph lines are laid out.
type ParagraphStyle string

const (
	StylePlain    ParagraphStyle = "plain"
	StyleBulleted ParagraphStyle = "bulleted"
	StyleNumbered ParagraphStyle = "numbered"
)

// Paragraph is free text. Lines are never truncated.
type Paragraph struct {
	ID    string
	Style ParagraphStyle
	Lines []string
}

// Row is one table row. Cells has the same arity as the table header.
type Row struct {
	Cells []string

	// Flagged rows are highlighted by renderers (overdue action items).
	Flagged bool
}

// Table is a tabular region with a header row and column width hints.
// Widths are integer percentages of the printable width and sum to 100.
type Table struct {
	ID      string
	Caption string
	Header  []string
	Widths  []int
	Rows    []Row
}

// PageBreak forces the next section onto a new page.
type PageBreak struct{}

// Signature is one signature line.
type Signature struct {
	Role string
	Name string
}

// SignatureBlock holds the approval signature lines.
type SignatureBlock struct {
	Title      string
	Signatures []Signature
}

// PagePlaceholder is substituted by renderers with the current page and page count.
const PagePlaceholder = "Page {page} of {pages}"

// Footer is repeated by renderers at the bottom of every page.
type Footer struct {
	DocumentID  string
	GeneratedAt time.Time
	PageLabel   string
	Note        string
}

func (Heading) Type() SectionType { return TypeHeading }
func (KeyValueBlock) Type() SectionType { return TypeKeyValue }
func (Paragraph) Type() SectionType { return TypeParagraph }
func (Table) Type() SectionType { return TypeTable }
func (PageBreak) Type() SectionType { return TypePageBreak }
func (SignatureBlock) Type() SectionType { return TypeSignature }
func (Footer) Type() SectionType { return TypeFooter }

func (Heading) section() {}
func (KeyValueBlock) section() {}
func (Paragraph) section() {}
func (Table) section() {}
func (PageBreak) section() {}
func (SignatureBlock) section() {}
func (Footer) section() {}

// Model is a finished report.
type Model struct {
	Kind     Kind
	Title    string
	Sections []Section
}

// Append adds sections in order.
func (m *Model) Append(sections ...Section) {
	m.Sections = append(m.Sections, sections...)
}

// Table returns the table with the given ID.
func (m *Model) Table(id string) (Table, bool) {
	for _, s := range m.Sections {
		if t, ok := s.(Table); ok && t.ID == id {
			return t, true
		}
	}
	return Table{}, false
}

// KeyValues returns the key-value block with the given ID.
func (m *Model) KeyValues(id string) (KeyValueBlock, bool) {
	for _, s := range m.Sections {
		if kv, ok := s.(KeyValueBlock); ok && kv.ID == id {
			return kv, true
		}
	}
	return KeyValueBlock{}, false
}

// Paragraph returns the paragraph with the given ID.
func (m *Model) Paragraph(id string) (Paragraph, bool) {
	for _, s := range m.Sections {
		if p, ok := s.(Paragraph); ok && p.ID == id {
			return p, true
		}
	}
	return Paragraph{}, false
}

// Footer returns the document footer.
func (m *Model) Footer() (Footer, bool) {
	for _, s := range m.Sections {
		if f, ok := s.(Footer); ok {
			return f, true
		}
	}
	return Footer{}, false
}

// Value returns the value for key in the block, or "" when absent.
func (b KeyValueBlock) Value(key string) string {
	for _, kv := range b.Pairs {
		if kv.Key == key {
			return kv.Value
		}
	}
	return ""
}

// TopLevel returns the IDs of the level-2 headings in document order.
func (m *Model) TopLevel() []string {
	var ids []string
	for _, s := range m.Sections {
		if h, ok := s.(Heading); ok && h.Level == 2 {
			ids = append(ids, h.ID)
		}
	}
	return ids
}

// PageStarts returns the IDs of level-2 headings directly preceded by a page break.
func (m *Model) PageStarts() []string {
	var ids []string
	for i := 1; i < len(m.Sections); i++ {
		if _, ok := m.Sections[i-1].(PageBreak); !ok {
			continue
		}
		if h, ok := m.Sections[i].(Heading); ok && h.Level == 2 {
			ids = append(ids, h.ID)
		}
	}
	return ids
}

func (m *Model) String() string {
	return fmt.Sprintf("%s (%d sections)", m.Title, len(m.Sections))
}
