package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"iptv-storefront/internal/client"
	"iptv-storefront/internal/model"
	"iptv-storefront/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared",
		atomic.AddInt64(&testDBCounter, 1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Product{},
		&model.Order{},
		&model.Subscription{},
		&model.ClientData{},
		&model.WebhookEvent{},
		&model.AdminSettings{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func seedProducts(t *testing.T, db *gorm.DB) {
	t.Helper()

	if err := repository.NewProductRepository(db).Seed(context.Background()); err != nil {
		t.Fatalf("seed products: %v", err)
	}
}

// stubProvider is a PaymentProvider with canned behavior for service tests.
type stubProvider struct {
	mode        client.InvoiceMode
	links       map[string]string
	invoiceURL  string
	createErr   error
	enforceSig  bool
	validSig    string
	invoiceReqs []*client.InvoiceRequest
}

func (p *stubProvider) Mode() client.InvoiceMode {
	return p.mode
}

func (p *stubProvider) CreateInvoice(_ context.Context, req *client.InvoiceRequest) (*client.Invoice, error) {
	p.invoiceReqs = append(p.invoiceReqs, req)
	if p.createErr != nil {
		return nil, p.createErr
	}
	url := p.invoiceURL
	if p.mode == client.ModeStatic {
		url = p.links[req.PlanID]
	}
	return &client.Invoice{ProviderRef: req.OrderID, PaymentURL: url}, nil
}

func (p *stubProvider) StaticLinks() map[string]string {
	return p.links
}

func (p *stubProvider) VerifyIPN(_ []byte, signature string) bool {
	return signature == p.validSig
}

func (p *stubProvider) SignatureEnforced() bool {
	return p.enforceSig
}

func priceOf(t *testing.T, db *gorm.DB, productID string) decimal.Decimal {
	t.Helper()

	var product model.Product
	if err := db.Where("id = ?", productID).First(&product).Error; err != nil {
		t.Fatalf("load product %s: %v", productID, err)
	}
	return product.PriceUsd
}
