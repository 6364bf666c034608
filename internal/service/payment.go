package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"iptv-storefront/internal/client"
	"iptv-storefront/internal/dto"
	"iptv-storefront/internal/model"
	"iptv-storefront/internal/repository"

	"gorm.io/gorm"
)

// ErrInvalidSignature is returned when a webhook delivery fails IPN
// verification; handlers map it to 401.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// PaymentService processes inbound NOWPayments IPN callbacks.
type PaymentService interface {
	HandleIPN(ctx context.Context, body []byte, signature string) error
}

type paymentServiceImpl struct {
	db               *gorm.DB
	provider         client.PaymentProvider
	orderRepo        repository.OrderRepository
	productRepo      repository.ProductRepository
	subscriptionRepo repository.SubscriptionRepository
	webhookEventRepo repository.WebhookEventRepository
}

func NewPaymentService(
	db *gorm.DB,
	provider client.PaymentProvider,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	subscriptionRepo repository.SubscriptionRepository,
	webhookEventRepo repository.WebhookEventRepository,
) PaymentService {
	return &paymentServiceImpl{
		db:               db,
		provider:         provider,
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		subscriptionRepo: subscriptionRepo,
		webhookEventRepo: webhookEventRepo,
	}
}

// HandleIPN is deliberately forgiving: lookup misses and replays return nil so
// the endpoint answers 200 and the provider stops retrying. Only signature
// failures and storage errors surface to the handler.
func (s *paymentServiceImpl) HandleIPN(ctx context.Context, body []byte, signature string) error {
	if s.provider.SignatureEnforced() && !s.provider.VerifyIPN(body, signature) {
		return ErrInvalidSignature
	}

	var payload dto.NowPaymentsIPN
	if err := json.Unmarshal(body, &payload); err != nil {
		return &ValidationError{Message: "malformed webhook payload"}
	}

	eventID := payload.EventID()
	if eventID != "" {
		seen, err := s.webhookEventRepo.Exists(ctx, eventID)
		if err != nil {
			return fmt.Errorf("check webhook event: %w", err)
		}
		if seen {
			log.Printf("webhook event %s already processed, skipping", eventID)
			return nil
		}
	}

	order, err := s.orderRepo.FindByNowpaymentsID(ctx, payload.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("warning: no order for NOWPayments reference %q", payload.OrderID)
			return nil
		}
		return fmt.Errorf("find order by nowpayments id: %w", err)
	}

	if order.PaymentStatus == model.PaymentCompleted {
		return nil
	}

	switch payload.PaymentStatus {
	case "finished":
		return s.completePayment(ctx, order, eventID)
	case "failed", "refunded", "expired":
		return s.failPayment(ctx, order, eventID, payload.PaymentStatus)
	default:
		// waiting / confirming / partially_paid keep the order pending. The
		// event is not recorded so the terminal delivery for the same
		// payment id still goes through.
		log.Printf("order %s payment status remains pending (provider status %q)", order.ID, payload.PaymentStatus)
		return nil
	}
}

func (s *paymentServiceImpl) completePayment(ctx context.Context, order *model.Order, eventID string) error {
	product, err := s.productRepo.FindByID(ctx, order.ProductID)
	if err != nil {
		return fmt.Errorf("find product %s: %w", order.ProductID, err)
	}

	startAt := time.Now().UTC()
	endAt := startAt.AddDate(0, 0, product.DurationDays)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.MarkPaymentCompleted(ctx, tx, order.ID); err != nil {
			return fmt.Errorf("mark order completed: %w", err)
		}

		_, err := s.subscriptionRepo.EnsureActive(ctx, tx, order.ID, order.ProductID, startAt, endAt)
		if err != nil {
			return fmt.Errorf("ensure subscription: %w", err)
		}

		if eventID != "" {
			if err := s.webhookEventRepo.MarkProcessed(ctx, tx, eventID, "payment.finished"); err != nil {
				return fmt.Errorf("record webhook event: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("order %s payment status updated to: %s", order.ID, model.PaymentCompleted)
	return nil
}

func (s *paymentServiceImpl) failPayment(ctx context.Context, order *model.Order, eventID, providerStatus string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Order{}).
			Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"payment_status": model.PaymentFailed,
				"updated_at":     time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}

		if eventID != "" {
			if err := s.webhookEventRepo.MarkProcessed(ctx, tx, eventID, "payment."+providerStatus); err != nil {
				return fmt.Errorf("record webhook event: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("order %s payment status updated to: %s", order.ID, model.PaymentFailed)
	return nil
}
