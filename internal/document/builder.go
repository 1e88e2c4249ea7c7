package document

import (
	"fmt"
	"time"

	"github.com/sitcouncil/councilreports/internal/aggregator"
)

// Meta carries the per-request values that are not statistics.
type Meta struct {
	// Organization is printed in the document header.
	Organization string

	// DocumentID and GeneratedAt are printed in the footer.
	DocumentID  string
	GeneratedAt time.Time

	// GeneratedBy names the caller. Only the monthly report prints it.
	GeneratedBy string
}

// Build lays out bundle as a report of the given kind. The bundle type must
// match the kind: *aggregator.MeetingBundle, *aggregator.MemberBundle or
// *aggregator.ActivityBundle.
func Build(kind Kind, bundle any, meta Meta) (*Model, error) {
	switch kind {
	case KindMeetingMinutes:
		b, ok := bundle.(*aggregator.MeetingBundle)
		if !ok || b == nil {
			return nil, fmt.Errorf("document: %s needs a meeting bundle, got %T", kind, bundle)
		}
		return MeetingMinutes(b, meta), nil
	case KindMemberPerformance:
		b, ok := bundle.(*aggregator.MemberBundle)
		if !ok || b == nil {
			return nil, fmt.Errorf("document: %s needs a member bundle, got %T", kind, bundle)
		}
		return MemberPerformance(b, meta), nil
	case KindMonthlyActivity:
		b, ok := bundle.(*aggregator.ActivityBundle)
		if !ok || b == nil {
			return nil, fmt.Errorf("document: %s needs an activity bundle, got %T", kind, bundle)
		}
		return MonthlyActivity(b, meta), nil
	}
	return nil, fmt.Errorf("document: unknown report kind %q", kind)
}

// builder accumulates sections for one model.
type builder struct {
	model *Model
}

func newBuilder(kind Kind, meta Meta, subtitle string) *builder {
	b := &builder{model: &Model{Kind: kind, Title: kind.Title()}}
	if subtitle == "" {
		subtitle = kind.Title()
	} else {
		subtitle = kind.Title() + " - " + subtitle
	}
	b.model.Append(Heading{ID: "header", Level: 1, Text: orDefault(meta.Organization, "SIT Council"), Subtitle: subtitle})
	return b
}

// section starts a top-level section, optionally on a new page.
func (b *builder) section(id, text string, newPage bool) {
	if newPage {
		b.model.Append(PageBreak{})
	}
	b.model.Append(Heading{ID: id, Level: 2, Text: text})
}

func (b *builder) subsection(id, text string) {
	b.model.Append(Heading{ID: id, Level: 3, Text: text})
}

func (b *builder) add(s Section) {
	b.model.Append(s)
}

func (b *builder) footer(meta Meta) *Model {
	b.model.Append(Footer{
		DocumentID:  meta.DocumentID,
		GeneratedAt: meta.GeneratedAt.UTC(),
		PageLabel:   PagePlaceholder,
		Note:        "Generated by the " + orDefault(meta.Organization, "SIT Council") + " reporting system",
	})
	return b.model
}
