package services

import (
	"context"
	"errors"
	"testing"

	"arthika/internal/core"
	"arthika/internal/store"
)

func TestSignUpAndLogIn(t *testing.T) {
	svc := NewAuthService(store.NewMemoryStore())
	ctx := context.Background()

	user := core.UserProfile{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret1",
	}
	if err := svc.SignUp(ctx, user); err != nil {
		t.Fatalf("signup: %v", err)
	}

	got, err := svc.LogIn(ctx, "asha@example.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.Name != "Asha" {
		t.Fatalf("expected profile name Asha, got %q", got.Name)
	}
}

func TestLogInFailures(t *testing.T) {
	svc := NewAuthService(store.NewMemoryStore())
	ctx := context.Background()

	// No account yet.
	if _, err := svc.LogIn(ctx, "asha@example.com", "secret1"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound before signup, got %v", err)
	}

	if err := svc.SignUp(ctx, core.UserProfile{
		Name: "Asha", Email: "asha@example.com", Password: "secret1",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "asha@example.com", "nope"},
		{"wrong email", "other@example.com", "secret1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.LogIn(ctx, tt.email, tt.password); !errors.Is(err, ErrUserNotFound) {
				t.Fatalf("expected ErrUserNotFound, got %v", err)
			}
		})
	}
}

func TestSignUpRejectsInvalidProfile(t *testing.T) {
	svc := NewAuthService(store.NewMemoryStore())

	err := svc.SignUp(context.Background(), core.UserProfile{
		Name: "Asha", Email: "not-an-email", Password: "secret1",
	})
	if !errors.Is(err, core.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	svc := NewAuthService(store.NewMemoryStore())
	ctx := context.Background()

	empty, err := svc.Profile(ctx)
	if err != nil {
		t.Fatalf("profile on fresh store: %v", err)
	}
	if empty.Name != "" || empty.Email != "" {
		t.Fatalf("expected empty profile, got %+v", empty)
	}

	want := core.UserProfile{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret1",
		Photo:    "data:image/png;base64,AAA",
	}
	if err := svc.SaveProfile(ctx, want); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	got, err := svc.Profile(ctx)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if got != want {
		t.Fatalf("profile mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestSavingsCoercionAndRoundTrip(t *testing.T) {
	svc := NewAuthService(store.NewMemoryStore())
	ctx := context.Background()

	saved, err := svc.SaveSavings(ctx, map[string]any{
		"Travel": "1200.75",
		"Health": "abc",
		"Home":   500.0,
	})
	if err != nil {
		t.Fatalf("save savings: %v", err)
	}
	if saved["Travel"] != 1200 {
		t.Fatalf("expected Travel truncated to 1200, got %v", saved["Travel"])
	}
	if saved["Health"] != 0 {
		t.Fatalf("expected garbage to coerce to 0, got %v", saved["Health"])
	}
	if saved["Home"] != 500 {
		t.Fatalf("expected numeric Home kept at 500, got %v", saved["Home"])
	}

	got, err := svc.Savings(ctx)
	if err != nil {
		t.Fatalf("savings: %v", err)
	}
	if got["Home"] != 500 {
		t.Fatalf("expected Home 500, got %v", got["Home"])
	}

	if err := svc.ClearSavings(ctx); err != nil {
		t.Fatalf("clear savings: %v", err)
	}
	got, err = svc.Savings(ctx)
	if err != nil {
		t.Fatalf("savings after clear: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty savings after clear, got %v", got)
	}
}
