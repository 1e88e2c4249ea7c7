package document

import (
	"strconv"

	"github.com/sitcouncil/councilreports/internal/aggregator"
)

// MemberPerformance lays out a member's stored performance block.
func MemberPerformance(bundle *aggregator.MemberBundle, meta Meta) *Model {
	u := bundle.User
	p := u.Performance
	b := newBuilder(KindMemberPerformance, meta, u.Name)

	b.section("member-information", "Member Information", false)
	b.add(KeyValueBlock{
		ID: "member-information",
		Pairs: []KeyValue{
			{Key: "Name", Value: u.Name},
			{Key: "Initials", Value: bundle.Initials},
			{Key: "Role", Value: string(u.Role)},
			{Key: "Student ID", Value: orDefault(u.StudentID, notSpecified)},
			{Key: "Department", Value: orDefault(u.Department, notSpecified)},
			{Key: "Join Date", Value: formatOptionalDate(&u.JoinDate, notSpecified)},
		},
	})

	b.section("performance-metrics", "Performance Metrics", false)
	b.add(NewTable("performance-metrics", "Performance Metrics",
		[]string{"Metric", "Value"},
		[]int{60, 40},
		[]Row{
			cells("Meetings Attended", itoa(p.MeetingsAttended)),
			cells("Tasks Completed", itoa(p.TasksCompleted)),
			cells("Rating", strconv.FormatFloat(p.Rating, 'f', 1, 64)+" / 5"),
			cells("Current Streak", plural(p.Streak, "meeting", "meetings")),
			cells("Points", itoa(p.Points)),
			cells("Achievements", itoa(len(p.Achievements))),
		},
	))

	if len(p.Achievements) > 0 {
		b.section("achievements", "Achievements", false)
		b.add(Paragraph{ID: "achievements", Style: StyleBulleted, Lines: append([]string(nil), p.Achievements...)})
	}

	b.section("performance-trend", "Performance Trend", false)
	trendRows := make([]Row, 0, len(bundle.Trend))
	for _, point := range bundle.Trend {
		trendRows = append(trendRows, cells(point.Label, strconv.FormatFloat(point.Value, 'f', 0, 64)))
	}
	b.add(NewTable("performance-trend", "Performance Trend", []string{"Period", "Score"}, []int{50, 50}, trendRows))
	b.add(Paragraph{ID: "performance-trend-note", Style: StylePlain,
		Lines: []string{"Trend values are illustrative and are not derived from meeting history."}})

	return b.footer(meta)
}
