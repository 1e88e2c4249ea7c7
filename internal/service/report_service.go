package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"

	"github.com/sitcouncil/councilreports/internal/auth"
	"github.com/sitcouncil/councilreports/internal/document"
	"github.com/sitcouncil/councilreports/internal/middleware"
	"github.com/sitcouncil/councilreports/internal/report"
)

var errMissingPrincipal = errors.New("no authenticated caller")

// ReportService implements the ReportService RPC interface.
type ReportService struct {
	engine *report.Engine
	policy auth.Policy
	logger *slog.Logger
}

// NewReportService creates a new report service.
func NewReportService(engine *report.Engine, logger *slog.Logger) *ReportService {
	return &ReportService{
		engine: engine,
		logger: logger,
	}
}

// NewReportServiceHandler builds an HTTP handler serving every ReportService
// procedure. It returns the path to mount the handler on.
func NewReportServiceHandler(svc *ReportService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec())}, opts...)
	minutes := connect.NewUnaryHandler(ReportServiceMeetingMinutesProcedure, svc.MeetingMinutes, opts...)
	performance := connect.NewUnaryHandler(ReportServiceMemberPerformanceProcedure, svc.MemberPerformance, opts...)
	monthly := connect.NewUnaryHandler(ReportServiceMonthlyActivityProcedure, svc.MonthlyActivity, opts...)

	return "/" + ReportServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ReportServiceMeetingMinutesProcedure:
			minutes.ServeHTTP(w, r)
		case ReportServiceMemberPerformanceProcedure:
			performance.ServeHTTP(w, r)
		case ReportServiceMonthlyActivityProcedure:
			monthly.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// MeetingMinutes builds the minutes of one meeting.
func (s *ReportService) MeetingMinutes(ctx context.Context, req *connect.Request[MeetingMinutesRequest]) (*connect.Response[ReportResponse], error) {
	s.logger.Info("MeetingMinutes request", "meeting_id", req.Msg.MeetingID)

	if req.Msg.MeetingID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("meeting_id is required"))
	}
	principal, err := s.authorize(ctx, document.KindMeetingMinutes, "")
	if err != nil {
		return nil, err
	}

	rep, err := s.engine.BuildMeetingMinutes(ctx, req.Msg.MeetingID, caller(principal))
	if err != nil {
		return nil, s.reportError(err)
	}
	return s.respond(rep)
}

// MemberPerformance builds a member's performance report.
func (s *ReportService) MemberPerformance(ctx context.Context, req *connect.Request[MemberPerformanceRequest]) (*connect.Response[ReportResponse], error) {
	s.logger.Info("MemberPerformance request", "user_id", req.Msg.UserID)

	userID := req.Msg.UserID
	if userID == "" {
		userID = middleware.GetUserID(ctx)
	}
	principal, err := s.authorize(ctx, document.KindMemberPerformance, userID)
	if err != nil {
		return nil, err
	}

	rep, err := s.engine.BuildMemberPerformance(ctx, userID, caller(principal))
	if err != nil {
		return nil, s.reportError(err)
	}
	return s.respond(rep)
}

// MonthlyActivity builds the activity report of one calendar month.
func (s *ReportService) MonthlyActivity(ctx context.Context, req *connect.Request[MonthlyActivityRequest]) (*connect.Response[ReportResponse], error) {
	s.logger.Info("MonthlyActivity request", "year", req.Msg.Year, "month", req.Msg.Month)

	principal, err := s.authorize(ctx, document.KindMonthlyActivity, "")
	if err != nil {
		return nil, err
	}

	rep, err := s.engine.BuildMonthlyActivity(ctx, req.Msg.Year, time.Month(req.Msg.Month), caller(principal))
	if err != nil {
		return nil, s.reportError(err)
	}
	return s.respond(rep)
}

func (s *ReportService) authorize(ctx context.Context, kind document.Kind, subjectID string) (auth.Principal, error) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		return auth.Principal{}, connect.NewError(connect.CodeUnauthenticated, errMissingPrincipal)
	}
	if err := s.policy.Authorize(principal, kind, subjectID); err != nil {
		s.logger.Warn("Report request denied", "kind", kind, "user_id", principal.UserID, "role", principal.Role, "error", err)
		return auth.Principal{}, connect.NewError(connect.CodePermissionDenied, err)
	}
	return principal, nil
}

func (s *ReportService) respond(rep *report.Report) (*connect.Response[ReportResponse], error) {
	data, err := document.MarshalJSON(rep.Model)
	if err != nil {
		s.logger.Error("Failed to encode document", "kind", rep.Kind, "scope", rep.Scope, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	footer, _ := rep.Model.Footer()
	s.logger.Info("Report generated", "kind", rep.Kind, "scope", rep.Scope, "filename", rep.Filename)
	return connect.NewResponse(&ReportResponse{
		Kind:       string(rep.Kind),
		Filename:   rep.Filename,
		DocumentID: footer.DocumentID,
		Document:   data,
	}), nil
}

// reportError maps a report failure onto a Connect error code.
func (s *ReportService) reportError(err error) error {
	switch {
	case report.IsNotFound(err):
		s.logger.Warn("Report scope not found", "error", err)
		return connect.NewError(connect.CodeNotFound, err)
	case report.IsInvalidScope(err):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}
	s.logger.Error("Report generation failed", "error", err)
	return connect.NewError(connect.CodeInternal, err)
}

func caller(p auth.Principal) report.Caller {
	return report.Caller{ID: p.UserID, Name: p.Name}
}
