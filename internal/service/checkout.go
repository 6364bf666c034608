package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"iptv-storefront/internal/client"
	"iptv-storefront/internal/dto"
	"iptv-storefront/internal/model"
	"iptv-storefront/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError carries a user-correctable message; handlers map it to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

type CheckoutService interface {
	Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	PaymentLinks() map[string]string
}

type checkoutServiceImpl struct {
	db             *gorm.DB
	provider       client.PaymentProvider
	productRepo    repository.ProductRepository
	orderRepo      repository.OrderRepository
	clientDataRepo repository.ClientDataRepository
}

func NewCheckoutService(
	db *gorm.DB,
	provider client.PaymentProvider,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	clientDataRepo repository.ClientDataRepository,
) CheckoutService {
	return &checkoutServiceImpl{
		db:             db,
		provider:       provider,
		productRepo:    productRepo,
		orderRepo:      orderRepo,
		clientDataRepo: clientDataRepo,
	}
}

func (s *checkoutServiceImpl) Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	region := strings.TrimSpace(req.Region)

	if len(fullName) < 2 {
		return nil, validationErrorf("Full name is required")
	}
	if !emailPattern.MatchString(email) {
		return nil, validationErrorf("Valid email is required")
	}
	if region == "" {
		return nil, validationErrorf("Region is required")
	}

	plan, ok := model.ResolvePlan(req.Plan)
	if !ok {
		return nil, validationErrorf("No payment link found for plan: %s", req.Plan)
	}

	// Self-healing catalog: the product row is rewritten from the catalog on
	// every checkout so a missing or stale row never blocks a sale.
	err := s.productRepo.Upsert(ctx, &model.Product{
		ID:           plan.ID,
		Name:         plan.Name,
		Description:  plan.Description,
		PriceUsd:     plan.PriceUsd,
		DurationDays: plan.DurationDays,
		Active:       true,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert product: %w", err)
	}

	orderID := uuid.NewString()

	invoice, err := s.provider.CreateInvoice(ctx, &client.InvoiceRequest{
		OrderID:     orderID,
		PlanID:      plan.ID,
		Description: plan.Name,
		PriceUsd:    plan.PriceUsd,
	})
	if err != nil {
		return nil, fmt.Errorf("create payment invoice: %w", err)
	}

	providerRef := invoice.ProviderRef
	order := &model.Order{
		ID:             orderID,
		FullName:       fullName,
		Email:          email,
		Region:         region,
		ProductID:      plan.ID,
		AdultChannels:  req.AdultChannels,
		PaymentStatus:  model.PaymentPending,
		DeliveryStatus: model.DeliveryPending,
		NowpaymentsID:  &providerRef,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}

		err := s.clientDataRepo.Upsert(ctx, tx, &model.ClientData{
			ID:       uuid.NewString(),
			FullName: fullName,
			Email:    email,
			Region:   region,
			Source:   "website",
		})
		if err != nil {
			return fmt.Errorf("store client data: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.CheckoutResponse{
		Success:    true,
		OrderID:    order.ID,
		PaymentURL: invoice.PaymentURL,
		PlanInfo: &dto.PlanInfo{
			Label: plan.Name,
			Price: "$" + plan.PriceUsd.String(),
		},
	}, nil
}

func (s *checkoutServiceImpl) PaymentLinks() map[string]string {
	return s.provider.StaticLinks()
}
