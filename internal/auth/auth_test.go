package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sitcouncil/councilreports/internal/document"
	"github.com/sitcouncil/councilreports/internal/models"
	"github.com/sitcouncil/councilreports/internal/testfixtures"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: "u-ada", Email: "ada@sit.edu", Name: "Ada Lovelace", Role: models.RolePresident}

	token, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != "u-ada" || claims.Name != "Ada Lovelace" || claims.Role != models.RolePresident {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestJWTRejectsExpiredAndForeignTokens(t *testing.T) {
	clock := testfixtures.NewClock(time.Time{})
	m := NewJWTManager("test-secret", time.Hour)
	m.now = clock.Now

	token, err := m.Generate(&models.User{ID: "u-ada", Role: models.RolePresident})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	other := NewJWTManager("other-secret", time.Hour)
	other.now = clock.Now
	if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for foreign secret, got %v", err)
	}

	clock.Advance(2 * time.Hour)
	if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}

	if _, err := m.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	store := testfixtures.NewMemoryStore(nil, nil)
	a := NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)

	user := &models.User{Name: "Ada Lovelace", Email: " Ada@SIT.edu ", Role: models.RolePresident}
	if err := a.Register(ctx, user, "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if err := a.Register(ctx, user, "analytical-engine"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == "" {
		t.Error("expected an assigned ID")
	}
	if user.Email != "ada@sit.edu" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}

	dup := &models.User{Name: "Ada Again", Email: "ada@sit.edu", Role: models.RoleMember}
	if err := a.Register(ctx, dup, "analytical-engine"); !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}

	got, err := a.Authenticate(ctx, "ADA@sit.edu", "analytical-engine")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, got.ID)
	}

	if _, err := a.Authenticate(ctx, "ada@sit.edu", "difference-engine"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := a.Authenticate(ctx, "nobody@sit.edu", "analytical-engine"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestPolicy(t *testing.T) {
	president := Principal{UserID: "u-ada", Role: models.RolePresident}
	member := Principal{UserID: "u-linus", Role: models.RoleMember}
	guest := Principal{UserID: "u-guest", Role: models.RoleGuest}

	tests := []struct {
		name    string
		p       Principal
		kind    document.Kind
		subject string
		allowed bool
	}{
		{"officer minutes", president, document.KindMeetingMinutes, "", true},
		{"officer other performance", president, document.KindMemberPerformance, "u-linus", true},
		{"officer monthly", president, document.KindMonthlyActivity, "", true},
		{"member minutes", member, document.KindMeetingMinutes, "", true},
		{"member own performance", member, document.KindMemberPerformance, "u-linus", true},
		{"member other performance", member, document.KindMemberPerformance, "u-ada", false},
		{"member monthly", member, document.KindMonthlyActivity, "", false},
		{"guest minutes", guest, document.KindMeetingMinutes, "", false},
		{"unknown kind", president, document.Kind("ledger"), "", false},
	}

	var policy Policy
	for _, kind := range document.Kinds {
		if err := policy.Authorize(president, kind, "u-linus"); err != nil {
			t.Errorf("officer denied %s: %v", kind, err)
		}
		if err := policy.Authorize(guest, kind, "u-guest"); !errors.Is(err, ErrForbidden) {
			t.Errorf("guest allowed %s: %v", kind, err)
		}
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.Authorize(tt.p, tt.kind, tt.subject)
			if tt.allowed && err != nil {
				t.Errorf("expected allowed, got %v", err)
			}
			if !tt.allowed && !errors.Is(err, ErrForbidden) {
				t.Errorf("expected ErrForbidden, got %v", err)
			}
		})
	}
}
