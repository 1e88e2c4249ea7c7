package service

import (
	"context"

	"connectrpc.com/connect"
)

// ReportServiceClient calls ReportService over Connect with the JSON codec.
type ReportServiceClient struct {
	meetingMinutes    *connect.Client[MeetingMinutesRequest, ReportResponse]
	memberPerformance *connect.Client[MemberPerformanceRequest, ReportResponse]
	monthlyActivity   *connect.Client[MonthlyActivityRequest, ReportResponse]
}

// NewReportServiceClient creates a client for the service at baseURL.
func NewReportServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ReportServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(Codec())}, opts...)
	return &ReportServiceClient{
		meetingMinutes:    connect.NewClient[MeetingMinutesRequest, ReportResponse](httpClient, baseURL+ReportServiceMeetingMinutesProcedure, opts...),
		memberPerformance: connect.NewClient[MemberPerformanceRequest, ReportResponse](httpClient, baseURL+ReportServiceMemberPerformanceProcedure, opts...),
		monthlyActivity:   connect.NewClient[MonthlyActivityRequest, ReportResponse](httpClient, baseURL+ReportServiceMonthlyActivityProcedure, opts...),
	}
}

func (c *ReportServiceClient) MeetingMinutes(ctx context.Context, req *connect.Request[MeetingMinutesRequest]) (*connect.Response[ReportResponse], error) {
	return c.meetingMinutes.CallUnary(ctx, req)
}

func (c *ReportServiceClient) MemberPerformance(ctx context.Context, req *connect.Request[MemberPerformanceRequest]) (*connect.Response[ReportResponse], error) {
	return c.memberPerformance.CallUnary(ctx, req)
}

func (c *ReportServiceClient) MonthlyActivity(ctx context.Context, req *connect.Request[MonthlyActivityRequest]) (*connect.Response[ReportResponse], error) {
	return c.monthlyActivity.CallUnary(ctx, req)
}

// AuthServiceClient calls AuthService over Connect with the JSON codec.
type AuthServiceClient struct {
	login *connect.Client[LoginRequest, LoginResponse]
}

// NewAuthServiceClient creates a client for the service at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(Codec())}, opts...)
	return &AuthServiceClient{
		login: connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
	}
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}
