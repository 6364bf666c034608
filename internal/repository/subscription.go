package repository

import (
	"context"
	"time"

	"iptv-storefront/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	FindByOrderID(ctx context.Context, orderID string) (*model.Subscription, error)
	// EnsureActive creates an ACTIVE subscription for the order if none
	// exists and returns it. An existing subscription is returned untouched
	// so repeated activations never extend the period.
	EnsureActive(ctx context.Context, tx *gorm.DB, orderID, productID string, start, end time.Time) (*model.Subscription, error)
}

type subscriptionRepoImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepoImpl{
		db: db,
	}
}

func (r *subscriptionRepoImpl) FindByOrderID(ctx context.Context, orderID string) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&sub).Error

	if err != nil {
		return nil, err
	}

	return &sub, nil
}

func (r *subscriptionRepoImpl) EnsureActive(ctx context.Context, tx *gorm.DB, orderID, productID string, start, end time.Time) (*model.Subscription, error) {
	var sub model.Subscription
	err := tx.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&sub).Error

	if err == nil {
		return &sub, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	sub = model.Subscription{
		OrderID:   orderID,
		ProductID: productID,
		Status:    model.SubscriptionActive,
		StartAt:   start,
		EndAt:     end,
	}
	if err := tx.WithContext(ctx).Create(&sub).Error; err != nil {
		return nil, err
	}

	return &sub, nil
}
