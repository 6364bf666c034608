package client

import (
	"bytes"
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"iptv-storefront/internal/config"

	"github.com/shopspring/decimal"
)

// ErrUpstream marks failures of the payment provider itself, as opposed to
// bad input on our side. Handlers map it to 502.
var ErrUpstream = errors.New("payment provider unavailable")

// ErrNoPaymentLink is returned in static mode for a plan the link table does
// not cover. The plan id came from the request, so handlers map it to 400.
var ErrNoPaymentLink = errors.New("no payment link configured for plan")

// InvoiceMode is the provider capability the checkout flow runs in.
type InvoiceMode string

const (
	// ModeStatic serves pre-created invoice links from configuration.
	ModeStatic InvoiceMode = "static"
	// ModeDynamic creates a fresh invoice through the provider API per order.
	ModeDynamic InvoiceMode = "dynamic"
)

type InvoiceRequest struct {
	OrderID     string
	PlanID      string
	Description string
	PriceUsd    decimal.Decimal
}

type Invoice struct {
	// ProviderRef is what the provider will echo back as order_id in IPN
	// callbacks.
	ProviderRef string
	PaymentURL  string
}

// PaymentProvider abstracts the NOWPayments integration behind the single
// surface the checkout and webhook flows need.
type PaymentProvider interface {
	Mode() InvoiceMode
	CreateInvoice(ctx context.Context, req *InvoiceRequest) (*Invoice, error)
	// StaticLinks exposes the configured plan→URL table (empty in dynamic
	// mode); used by the checkout verification endpoint.
	StaticLinks() map[string]string
	VerifyIPN(body []byte, signature string) bool
	SignatureEnforced() bool
}

type nowPaymentsClient struct {
	httpClient    *http.Client
	baseApiURL    string
	apiKey        string
	webhookSecret string
	enforceSig    bool
	siteURL       string
	staticLinks   map[string]string
}

func NewNowPaymentsClient(cfg *config.NowPayments, siteURL string) PaymentProvider {
	return &nowPaymentsClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:    cfg.BaseApiURL,
		apiKey:        cfg.APIKey,
		webhookSecret: cfg.WebhookSecret,
		enforceSig:    cfg.WebhookSecretConfigured(),
		siteURL:       siteURL,
		staticLinks:   cfg.StaticLinks,
	}
}

func (c *nowPaymentsClient) Mode() InvoiceMode {
	if len(c.staticLinks) > 0 {
		return ModeStatic
	}
	return ModeDynamic
}

type createInvoiceResult struct {
	ID         json.Number `json:"id"`
	InvoiceURL string      `json:"invoice_url"`
}

func (c *nowPaymentsClient) CreateInvoice(ctx context.Context, req *InvoiceRequest) (*Invoice, error) {
	if c.Mode() == ModeStatic {
		url, ok := c.staticLinks[req.PlanID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoPaymentLink, req.PlanID)
		}
		return &Invoice{ProviderRef: req.OrderID, PaymentURL: url}, nil
	}

	payload := map[string]interface{}{
		"price_amount":      req.PriceUsd.StringFixed(2),
		"price_currency":    "usd",
		"order_id":          req.OrderID,
		"order_description": req.Description,
		"ipn_callback_url":  fmt.Sprintf("%s/api/webhooks/nowpayments", c.siteURL),
		"success_url":       fmt.Sprintf("%s/checkout/success", c.siteURL),
		"cancel_url":        c.siteURL,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal invoice payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v1/invoice",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: nowpayments error %d: %s", ErrUpstream, resp.StatusCode, string(b))
	}

	var result createInvoiceResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode nowpayments response: %w", err)
	}
	if result.InvoiceURL == "" {
		return nil, fmt.Errorf("%w: nowpayments response missing invoice_url", ErrUpstream)
	}

	return &Invoice{
		ProviderRef: req.OrderID,
		PaymentURL:  result.InvoiceURL,
	}, nil
}

// VerifyIPN checks the x-nowpayments-sig header: hex(SHA512(body + secret)).
func (c *nowPaymentsClient) VerifyIPN(body []byte, signature string) bool {
	if signature == "" {
		return false
	}

	h := sha512.New()
	h.Write(body)
	h.Write([]byte(c.webhookSecret))
	expected := hex.EncodeToString(h.Sum(nil))

	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

func (c *nowPaymentsClient) StaticLinks() map[string]string {
	return c.staticLinks
}

func (c *nowPaymentsClient) SignatureEnforced() bool {
	return c.enforceSig
}
