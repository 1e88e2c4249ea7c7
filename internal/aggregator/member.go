package aggregator

import (
	"context"

	"github.com/sitcouncil/councilreports/internal/calculator"
	"github.com/sitcouncil/councilreports/internal/models"
)

// TrendPoint is one labelled value of the performance trend chart.
type TrendPoint struct {
	Label string
	Value float64
}

// placeholderTrend is the illustrative series shown on every member
// performance report. It is not derived from the member's history.
var placeholderTrend = []TrendPoint{
	{Label: "Jan", Value: 65},
	{Label: "Feb", Value: 72},
	{Label: "Mar", Value: 68},
	{Label: "Apr", Value: 80},
	{Label: "May", Value: 76},
	{Label: "Jun", Value: 85},
}

// MemberBundle is the single-user scope: the stored profile and performance
// block as is, plus display helpers.
type MemberBundle struct {
	User     models.User
	Initials string

	// Trend is the fixed placeholder series; see placeholderTrend.
	Trend []TrendPoint
}

// Member aggregates the single-user scope. The performance block is displayed
// as stored and is not recomputed from meetings.
func (a *Aggregator) Member(ctx context.Context, userID string) (*MemberBundle, error) {
	user, err := a.users.GetUser(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user", userID)
	}

	trend := make([]TrendPoint, len(placeholderTrend))
	copy(trend, placeholderTrend)

	return &MemberBundle{
		User:     *user,
		Initials: calculator.AvatarInitials(user.Name),
		Trend:    trend,
	}, nil
}
