package auth

import (
	"errors"
	"fmt"

	"github.com/sitcouncil/councilreports/internal/document"
	"github.com/sitcouncil/councilreports/internal/models"
)

// ErrForbidden is returned when a principal may not request a report.
var ErrForbidden = errors.New("not allowed to request this report")

// Principal is an authenticated caller.
type Principal struct {
	UserID string
	Name   string
	Role   models.Role
}

// Policy decides which reports a principal may request.
//
//   - Officers may request every report.
//   - Members may request meeting minutes and their own performance report.
//   - Guests may request nothing.
type Policy struct{}

// Authorize checks whether p may request a report of the given kind.
// subjectID is the user the report is about and only matters for
// member performance reports.
func (Policy) Authorize(p Principal, kind document.Kind, subjectID string) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown report kind %q", ErrForbidden, kind)
	}
	if p.Role.IsOfficer() {
		return nil
	}
	if p.Role != models.RoleMember {
		return fmt.Errorf("%w: role %q", ErrForbidden, p.Role)
	}

	switch kind {
	case document.KindMeetingMinutes:
		return nil
	case document.KindMemberPerformance:
		if subjectID == p.UserID {
			return nil
		}
		return fmt.Errorf("%w: members may only view their own performance", ErrForbidden)
	case document.KindMonthlyActivity:
		return fmt.Errorf("%w: monthly reports are limited to officers", ErrForbidden)
	}
	return fmt.Errorf("%w: %s", ErrForbidden, kind)
}
