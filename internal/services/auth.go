package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"arthika/internal/core"
	"arthika/internal/store"
)

// ErrUserNotFound is returned for both a missing account and a wrong
// password, deliberately indistinguishable to the caller.
var ErrUserNotFound = errors.New("user not found")

// AuthService manages the single-user account: signup, login, the
// profile scalars and the savings map. Passwords are stored as-is; the
// account gate is a convenience, not a security boundary.
type AuthService struct {
	store store.RecordStore
}

func NewAuthService(s store.RecordStore) *AuthService {
	return &AuthService{store: s}
}

// SignUp validates and stores the account object. A second signup
// overwrites the first; there is exactly one account.
func (a *AuthService) SignUp(ctx context.Context, user core.UserProfile) error {
	if err := user.Validate(); err != nil {
		return err
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := a.store.Set(ctx, store.KeyUser, raw); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	return nil
}

// LogIn checks email and password against the stored account and
// returns the profile on success.
func (a *AuthService) LogIn(ctx context.Context, email, password string) (core.UserProfile, error) {
	raw, ok, err := a.store.Get(ctx, store.KeyUser)
	if err != nil {
		return core.UserProfile{}, fmt.Errorf("load user: %w", err)
	}
	if !ok {
		return core.UserProfile{}, ErrUserNotFound
	}

	var user core.UserProfile
	if err := json.Unmarshal(raw, &user); err != nil {
		return core.UserProfile{}, fmt.Errorf("decode user: %w", err)
	}

	if user.Email != email || user.Password != password {
		return core.UserProfile{}, ErrUserNotFound
	}
	return user, nil
}

// Profile reads the four profile scalars. Absent keys read as empty
// strings, so a fresh install renders an empty editor instead of
// failing.
func (a *AuthService) Profile(ctx context.Context) (core.UserProfile, error) {
	var profile core.UserProfile
	for _, field := range []struct {
		key string
		dst *string
	}{
		{store.KeyUserName, &profile.Name},
		{store.KeyUserEmail, &profile.Email},
		{store.KeyUserPassword, &profile.Password},
		{store.KeyUserPhoto, &profile.Photo},
	} {
		raw, ok, err := a.store.Get(ctx, field.key)
		if err != nil {
			return core.UserProfile{}, fmt.Errorf("load %s: %w", field.key, err)
		}
		if ok {
			*field.dst = string(raw)
		}
	}
	return profile, nil
}

// SaveProfile persists the four scalars in one atomic write.
func (a *AuthService) SaveProfile(ctx context.Context, profile core.UserProfile) error {
	values := map[string][]byte{
		store.KeyUserName:     []byte(profile.Name),
		store.KeyUserEmail:    []byte(profile.Email),
		store.KeyUserPassword: []byte(profile.Password),
		store.KeyUserPhoto:    []byte(profile.Photo),
	}
	if err := a.store.SetMulti(ctx, values); err != nil {
		return fmt.Errorf("persist profile: %w", err)
	}
	return nil
}

// Savings reads the category-to-amount savings map. Missing or
// malformed state reads as an empty map.
func (a *AuthService) Savings(ctx context.Context) (map[string]float64, error) {
	raw, ok, err := a.store.Get(ctx, store.KeyUserSavings)
	if err != nil {
		return nil, fmt.Errorf("load savings: %w", err)
	}
	savings := map[string]float64{}
	if !ok {
		return savings, nil
	}
	if err := json.Unmarshal(raw, &savings); err != nil {
		return map[string]float64{}, nil
	}
	return savings, nil
}

// SaveSavings coerces every amount to a whole number and persists the
// map. Values arrive as strings or JSON numbers; unparsable entries
// become 0 rather than failing the save.
func (a *AuthService) SaveSavings(ctx context.Context, entries map[string]any) (map[string]float64, error) {
	savings := make(map[string]float64, len(entries))
	for category, value := range entries {
		savings[category] = core.CoerceSavingValue(value)
	}

	raw, err := json.Marshal(savings)
	if err != nil {
		return nil, fmt.Errorf("encode savings: %w", err)
	}
	if err := a.store.Set(ctx, store.KeyUserSavings, raw); err != nil {
		return nil, fmt.Errorf("persist savings: %w", err)
	}
	return savings, nil
}

// ClearSavings removes the savings map entirely.
func (a *AuthService) ClearSavings(ctx context.Context) error {
	if err := a.store.Delete(ctx, store.KeyUserSavings); err != nil {
		return fmt.Errorf("clear savings: %w", err)
	}
	return nil
}
