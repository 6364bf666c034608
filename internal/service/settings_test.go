package service

import (
	"context"
	"errors"
	"testing"

	"iptv-storefront/internal/dto"
	"iptv-storefront/internal/repository"
)

func TestSettingsGetCreatesDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(repository.NewSettingsRepository(db))

	settings, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}

	if settings.Version != 1 {
		t.Fatalf("expected initial version 1, got %d", settings.Version)
	}
	if settings.SessionTimeoutMinutes != 30 {
		t.Fatalf("unexpected default session timeout: %d", settings.SessionTimeoutMinutes)
	}
	if settings.MaxLoginAttempts != 5 {
		t.Fatalf("unexpected default max login attempts: %d", settings.MaxLoginAttempts)
	}
	if !settings.NotifyOrderUpdates {
		t.Fatal("expected order-update notifications on by default")
	}
}

func TestSettingsUpdateBumpsVersion(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(repository.NewSettingsRepository(db))

	if _, err := svc.Get(context.Background()); err != nil {
		t.Fatalf("get settings: %v", err)
	}

	rateLimit := 250
	updated, err := svc.Update(context.Background(), &dto.UpdateSettingsRequest{
		Version:   1,
		RateLimit: &rateLimit,
	})
	if err != nil {
		t.Fatalf("update settings: %v", err)
	}

	if updated.Version != 2 {
		t.Fatalf("expected version 2 after update, got %d", updated.Version)
	}
	if updated.RateLimit != 250 {
		t.Fatalf("expected rate limit 250, got %d", updated.RateLimit)
	}
}

func TestSettingsUpdateRejectsStaleVersion(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(repository.NewSettingsRepository(db))

	attempts := 3
	if _, err := svc.Update(context.Background(), &dto.UpdateSettingsRequest{
		Version:          1,
		MaxLoginAttempts: &attempts,
	}); err != nil {
		t.Fatalf("first update: %v", err)
	}

	// A second writer still holding version 1 must be rejected.
	other := 10
	_, err := svc.Update(context.Background(), &dto.UpdateSettingsRequest{
		Version:          1,
		MaxLoginAttempts: &other,
	})
	if !errors.Is(err, repository.ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}

	settings, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if settings.MaxLoginAttempts != 3 {
		t.Fatalf("stale write must not apply, got %d", settings.MaxLoginAttempts)
	}
}

func TestSettingsUpdateRequiresVersion(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(repository.NewSettingsRepository(db))

	rateLimit := 50
	_, err := svc.Update(context.Background(), &dto.UpdateSettingsRequest{RateLimit: &rateLimit})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error for missing version, got %v", err)
	}
}

func TestSettingsWebhookSecretIsMasked(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(repository.NewSettingsRepository(db))

	if _, err := svc.Get(context.Background()); err != nil {
		t.Fatalf("get settings: %v", err)
	}

	secret := "whsec_live_abc123"
	updated, err := svc.Update(context.Background(), &dto.UpdateSettingsRequest{
		Version:       1,
		WebhookSecret: &secret,
	})
	if err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if updated.WebhookSecret == secret {
		t.Fatal("webhook secret must not be echoed back in plaintext")
	}

	fetched, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if fetched.WebhookSecret == secret {
		t.Fatal("webhook secret must be masked on reads")
	}
	if fetched.WebhookSecret == "" {
		t.Fatal("stored secret should surface as a mask, not empty")
	}
}
