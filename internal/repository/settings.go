package repository

import (
	"context"
	"errors"

	"iptv-storefront/internal/model"

	"gorm.io/gorm"
)

// ErrVersionConflict signals that a settings update carried a stale version.
var ErrVersionConflict = errors.New("settings were modified by another session")

type SettingsRepository interface {
	// Get returns the settings row, creating it with defaults on first use.
	Get(ctx context.Context) (*model.AdminSettings, error)
	// Update applies fields only if the stored version still matches
	// expectedVersion, then bumps the version.
	Update(ctx context.Context, expectedVersion int, fields map[string]interface{}) (*model.AdminSettings, error)
}

type settingsRepoImpl struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepoImpl{db: db}
}

func (r *settingsRepoImpl) Get(ctx context.Context) (*model.AdminSettings, error) {
	var settings model.AdminSettings
	err := r.db.WithContext(ctx).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = model.AdminSettings{
		Version:               1,
		NotifyOrderUpdates:    true,
		SessionTimeoutMinutes: 30,
		MaxLoginAttempts:      5,
		RequireStrongPassword: true,
		RateLimit:             100,
	}
	if err := r.db.WithContext(ctx).Create(&settings).Error; err != nil {
		return nil, err
	}

	return &settings, nil
}

func (r *settingsRepoImpl) Update(ctx context.Context, expectedVersion int, fields map[string]interface{}) (*model.AdminSettings, error) {
	current, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}

	fields["version"] = expectedVersion + 1

	var updated model.AdminSettings
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.AdminSettings{}).
			Where("id = ? AND version = ?", current.ID, expectedVersion).
			Updates(fields)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrVersionConflict
		}

		return tx.Where("id = ?", current.ID).First(&updated).Error
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}
