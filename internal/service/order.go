package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"iptv-storefront/internal/dto"
	"iptv-storefront/internal/model"
	"iptv-storefront/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrOrderNotPaid is returned when delivery activation is requested for an
// order whose payment has not completed; handlers map it to 409.
var ErrOrderNotPaid = errors.New("order payment is not completed")

var validPaymentStatuses = map[string]bool{
	model.PaymentPending:   true,
	model.PaymentCompleted: true,
	model.PaymentFailed:    true,
	model.PaymentCancelled: true,
}

var validDeliveryStatuses = map[string]bool{
	model.DeliveryPending:    true,
	model.DeliveryProcessing: true,
	model.DeliveryCompleted:  true,
	model.DeliveryFailed:     true,
}

type OrderService interface {
	ListSummaries(ctx context.Context) ([]*dto.OrderSummary, error)
	CreateTestOrder(ctx context.Context, req *dto.CreateOrderRequest) (*model.Order, *model.Product, error)
	MarkPaid(ctx context.Context, orderID string) (*dto.MarkPaidResponse, error)

	List(ctx context.Context, filter repository.OrderFilter) ([]*model.Order, error)
	Get(ctx context.Context, orderID string) (*model.Order, error)
	Update(ctx context.Context, orderID string, req *dto.UpdateOrderRequest) (*model.Order, error)
	Delete(ctx context.Context, orderID string) error
	Activate(ctx context.Context, orderID string) (*model.Order, error)
}

type orderServiceImpl struct {
	db               *gorm.DB
	orderRepo        repository.OrderRepository
	productRepo      repository.ProductRepository
	subscriptionRepo repository.SubscriptionRepository
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	subscriptionRepo repository.SubscriptionRepository,
) OrderService {
	return &orderServiceImpl{
		db:               db,
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

func (s *orderServiceImpl) ListSummaries(ctx context.Context) ([]*dto.OrderSummary, error) {
	orders, err := s.orderRepo.List(ctx, repository.OrderFilter{})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	summaries := make([]*dto.OrderSummary, len(orders))
	for i, order := range orders {
		summary := &dto.OrderSummary{
			ID:             order.ID,
			Email:          order.Email,
			PaymentStatus:  order.PaymentStatus,
			DeliveryStatus: order.DeliveryStatus,
			CreatedAt:      order.CreatedAt,
		}

		if product, err := s.productRepo.FindByID(ctx, order.ProductID); err == nil {
			summary.ProductName = product.Name
		}
		if sub, err := s.subscriptionRepo.FindByOrderID(ctx, order.ID); err == nil {
			status := sub.Status
			summary.SubscriptionStatus = &status
		}

		summaries[i] = summary
	}

	return summaries, nil
}

func (s *orderServiceImpl) CreateTestOrder(ctx context.Context, req *dto.CreateOrderRequest) (*model.Order, *model.Product, error) {
	if req.PlanID == "" {
		return nil, nil, validationErrorf("planId is required")
	}

	product, err := s.productRepo.FindByID(ctx, req.PlanID)
	if err != nil {
		return nil, nil, fmt.Errorf("find plan %s: %w", req.PlanID, err)
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = "test@tvforall.store"
	}

	order := &model.Order{
		ID:             uuid.NewString(),
		FullName:       "Test User",
		Email:          email,
		Region:         "N/A",
		ProductID:      product.ID,
		AdultChannels:  false,
		PaymentStatus:  model.PaymentPending,
		DeliveryStatus: model.DeliveryPending,
	}

	if err := s.orderRepo.Create(ctx, s.db, order); err != nil {
		return nil, nil, fmt.Errorf("create order: %w", err)
	}

	return order, product, nil
}

// MarkPaid flips the payment status to completed and activates the
// subscription for exactly durationDays from now. Calling it again does not
// extend an existing subscription.
func (s *orderServiceImpl) MarkPaid(ctx context.Context, orderID string) (*dto.MarkPaidResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, order.ProductID)
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", order.ProductID, err)
	}

	startAt := time.Now().UTC()
	endAt := startAt.AddDate(0, 0, product.DurationDays)

	var sub *model.Subscription
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.MarkPaymentCompleted(ctx, tx, orderID); err != nil {
			return fmt.Errorf("mark order completed: %w", err)
		}

		sub, err = s.subscriptionRepo.EnsureActive(ctx, tx, orderID, order.ProductID, startAt, endAt)
		if err != nil {
			return fmt.Errorf("ensure subscription: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.MarkPaidResponse{
		OrderID:       orderID,
		PaymentStatus: model.PaymentCompleted,
		Subscription: dto.SubscriptionInfo{
			ID:      sub.ID,
			Status:  sub.Status,
			StartAt: sub.StartAt,
			EndAt:   sub.EndAt,
		},
	}, nil
}

func (s *orderServiceImpl) List(ctx context.Context, filter repository.OrderFilter) ([]*model.Order, error) {
	return s.orderRepo.List(ctx, filter)
}

func (s *orderServiceImpl) Get(ctx context.Context, orderID string) (*model.Order, error) {
	return s.orderRepo.FindByID(ctx, orderID)
}

func (s *orderServiceImpl) Update(ctx context.Context, orderID string, req *dto.UpdateOrderRequest) (*model.Order, error) {
	fields := map[string]interface{}{}

	if req.PaymentStatus != nil {
		if !validPaymentStatuses[*req.PaymentStatus] {
			return nil, validationErrorf("invalid paymentStatus: %s", *req.PaymentStatus)
		}
		fields["payment_status"] = *req.PaymentStatus
	}
	if req.DeliveryStatus != nil {
		if !validDeliveryStatuses[*req.DeliveryStatus] {
			return nil, validationErrorf("invalid deliveryStatus: %s", *req.DeliveryStatus)
		}
		fields["delivery_status"] = *req.DeliveryStatus
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	if len(fields) == 0 {
		return s.orderRepo.FindByID(ctx, orderID)
	}

	return s.orderRepo.Update(ctx, orderID, fields)
}

func (s *orderServiceImpl) Delete(ctx context.Context, orderID string) error {
	return s.orderRepo.Delete(ctx, orderID)
}

// Activate marks delivery completed for a paid order. The subscription is
// created if missing; an existing one keeps its original period.
func (s *orderServiceImpl) Activate(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}

	if order.PaymentStatus != model.PaymentCompleted {
		return nil, ErrOrderNotPaid
	}

	product, err := s.productRepo.FindByID(ctx, order.ProductID)
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", order.ProductID, err)
	}

	startAt := time.Now().UTC()
	endAt := startAt.AddDate(0, 0, product.DurationDays)

	var updated *model.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Order{}).
			Where("id = ?", orderID).
			Updates(map[string]interface{}{
				"delivery_status": model.DeliveryCompleted,
				"updated_at":      time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}

		if _, err := s.subscriptionRepo.EnsureActive(ctx, tx, orderID, order.ProductID, startAt, endAt); err != nil {
			return fmt.Errorf("ensure subscription: %w", err)
		}

		var o model.Order
		if err := tx.Where("id = ?", orderID).First(&o).Error; err != nil {
			return err
		}
		updated = &o
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
