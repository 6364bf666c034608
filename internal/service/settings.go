package service

import (
	"context"
	"fmt"

	"iptv-storefront/internal/dto"
	"iptv-storefront/internal/model"
	"iptv-storefront/internal/repository"
)

type SettingsService interface {
	// Get returns the settings with the webhook secret masked.
	Get(ctx context.Context) (*model.AdminSettings, error)
	Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*model.AdminSettings, error)
}

type settingsServiceImpl struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsServiceImpl{
		settingsRepo: settingsRepo,
	}
}

func maskSecret(settings *model.AdminSettings) *model.AdminSettings {
	masked := *settings
	if masked.WebhookSecret != "" {
		masked.WebhookSecret = "••••••••"
	}
	return &masked
}

func (s *settingsServiceImpl) Get(ctx context.Context) (*model.AdminSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	return maskSecret(settings), nil
}

func (s *settingsServiceImpl) Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*model.AdminSettings, error) {
	if req.Version < 1 {
		return nil, validationErrorf("version is required")
	}

	fields := map[string]interface{}{}
	if req.NotifyEmail != nil {
		fields["notify_email"] = *req.NotifyEmail
	}
	if req.NotifyWebhook != nil {
		fields["notify_webhook"] = *req.NotifyWebhook
	}
	if req.NotifyOrderUpdates != nil {
		fields["notify_order_updates"] = *req.NotifyOrderUpdates
	}
	if req.SessionTimeoutMinutes != nil {
		fields["session_timeout_minutes"] = *req.SessionTimeoutMinutes
	}
	if req.MaxLoginAttempts != nil {
		fields["max_login_attempts"] = *req.MaxLoginAttempts
	}
	if req.RequireStrongPassword != nil {
		fields["require_strong_password"] = *req.RequireStrongPassword
	}
	if req.RateLimit != nil {
		fields["rate_limit"] = *req.RateLimit
	}
	if req.WebhookSecret != nil {
		fields["webhook_secret"] = *req.WebhookSecret
	}

	updated, err := s.settingsRepo.Update(ctx, req.Version, fields)
	if err != nil {
		return nil, err
	}

	return maskSecret(updated), nil
}
