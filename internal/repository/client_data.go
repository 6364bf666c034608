package repository

import (
	"context"
	"time"

	"iptv-storefront/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClientDataRepository interface {
	// Upsert inserts a client record or, when the email is already known,
	// overwrites name/region/source with the latest submission.
	Upsert(ctx context.Context, tx *gorm.DB, clientData *model.ClientData) error
	List(ctx context.Context, search string, offset, limit int) ([]*model.ClientData, int64, error)
	FindAll(ctx context.Context) ([]*model.ClientData, error)
	FindSince(ctx context.Context, since time.Time) ([]*model.ClientData, error)
	Delete(ctx context.Context, clientID string) error
}

type clientDataRepoImpl struct {
	db *gorm.DB
}

func NewClientDataRepository(db *gorm.DB) ClientDataRepository {
	return &clientDataRepoImpl{
		db: db,
	}
}

func (r *clientDataRepoImpl) Upsert(ctx context.Context, tx *gorm.DB, clientData *model.ClientData) error {
	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"full_name":  clientData.FullName,
			"region":     clientData.Region,
			"source":     clientData.Source,
			"updated_at": time.Now(),
		}),
	}).Create(clientData).Error
}

func (r *clientDataRepoImpl) List(ctx context.Context, search string, offset, limit int) ([]*model.ClientData, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.ClientData{})

	if search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"full_name LIKE ? OR email LIKE ? OR region LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []*model.ClientData
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&clients).Error
	if err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}

func (r *clientDataRepoImpl) FindAll(ctx context.Context) ([]*model.ClientData, error) {
	var clients []*model.ClientData
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&clients).Error

	if err != nil {
		return nil, err
	}

	return clients, nil
}

func (r *clientDataRepoImpl) FindSince(ctx context.Context, since time.Time) ([]*model.ClientData, error) {
	var clients []*model.ClientData
	err := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Find(&clients).Error

	if err != nil {
		return nil, err
	}

	return clients, nil
}

func (r *clientDataRepoImpl) Delete(ctx context.Context, clientID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", clientID).
		Delete(&model.ClientData{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
