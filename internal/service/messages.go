package service

import "encoding/json"

// Service and procedure names.
const (
	ReportServiceName = "council.v1.ReportService"
	AuthServiceName   = "council.v1.AuthService"

	ReportServiceMeetingMinutesProcedure    = "/council.v1.ReportService/MeetingMinutes"
	ReportServiceMemberPerformanceProcedure = "/council.v1.ReportService/MemberPerformance"
	ReportServiceMonthlyActivityProcedure   = "/council.v1.ReportService/MonthlyActivity"
	AuthServiceLoginProcedure               = "/council.v1.AuthService/Login"
)

type MeetingMinutesRequest struct {
	MeetingID string `json:"meeting_id"`
}

// MemberPerformanceRequest asks for a member's report. An empty UserID means
// the caller.
type MemberPerformanceRequest struct {
	UserID string `json:"user_id"`
}

type MonthlyActivityRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// ReportResponse carries a finished document. Document is the encoded
// section tree.
type ReportResponse struct {
	Kind       string          `json:"kind"`
	Filename   string          `json:"filename"`
	DocumentID string          `json:"document_id"`
	Document   json.RawMessage `json:"document"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// UserInfo is the public part of a user record.
type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
