package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/sitcouncil/councilreports/internal/auth"
	"github.com/sitcouncil/councilreports/internal/models"
)

type empty struct{}

// capture returns a handler that records the principal it was called with.
func capture(got *auth.Principal) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		*got, _ = GetPrincipal(ctx)
		return connect.NewResponse(&empty{}), nil
	}
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.Generate(&models.User{ID: "u-ada", Name: "Ada Lovelace", Role: models.RolePresident})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tests := []struct {
		name   string
		header string
		code   connect.Code
	}{
		{"missing header", "", connect.CodeUnauthenticated},
		{"not bearer", "Basic abc", connect.CodeUnauthenticated},
		{"bad token", "Bearer nope", connect.CodeUnauthenticated},
		{"valid", "Bearer " + token, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got auth.Principal
			handler := RequireAuth(jwtManager)(capture(&got))

			req := connect.NewRequest(&empty{})
			if tt.header != "" {
				req.Header().Set("Authorization", tt.header)
			}
			_, err := handler(context.Background(), req)

			if tt.code != 0 {
				if connect.CodeOf(err) != tt.code {
					t.Fatalf("expected %v, got %v", tt.code, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.UserID != "u-ada" || got.Name != "Ada Lovelace" || got.Role != models.RolePresident {
				t.Errorf("unexpected principal: %+v", got)
			}
		})
	}
}

func TestLoggingInterceptorLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	failing := func(err error) connect.UnaryFunc {
		return func(context.Context, connect.AnyRequest) (connect.AnyResponse, error) {
			return nil, err
		}
	}

	ctx := WithPrincipal(context.Background(), auth.Principal{UserID: "u-ada", Role: models.RolePresident})
	req := connect.NewRequest(&empty{})

	_, _ = LoggingInterceptor(logger)(failing(connect.NewError(connect.CodeNotFound, errors.New("meeting m-1"))))(ctx, req)
	_, _ = LoggingInterceptor(logger)(failing(errors.New("boom")))(ctx, req)

	out := buf.String()
	if !strings.Contains(out, "level=WARN msg=\"RPC rejected\"") {
		t.Errorf("expected a warn record for not found, got %q", out)
	}
	if !strings.Contains(out, "level=ERROR msg=\"RPC error\"") {
		t.Errorf("expected an error record for internal failure, got %q", out)
	}
	if !strings.Contains(out, "user_id=u-ada") {
		t.Errorf("expected the caller in the record, got %q", out)
	}
}

func TestMetricsInterceptor(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)

	ok := func(context.Context, connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&empty{}), nil
	}
	denied := func(context.Context, connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodePermissionDenied, auth.ErrForbidden)
	}

	req := connect.NewRequest(&empty{})
	_, _ = m.Interceptor()(ok)(context.Background(), req)
	_, _ = m.Interceptor()(ok)(context.Background(), req)
	_, _ = m.Interceptor()(denied)(context.Background(), req)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("", "ok")); got != 2 {
		t.Errorf("expected 2 ok calls, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("", "permission_denied")); got != 1 {
		t.Errorf("expected 1 denied call, got %v", got)
	}
}
