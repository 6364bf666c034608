package dto

import (
	"strconv"
	"time"

	"iptv-storefront/internal/model"
)

type CheckoutRequest struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Region        string `json:"region"`
	AdultChannels bool   `json:"adultChannels"`
	Plan          string `json:"plan"`
}

type PlanInfo struct {
	Label string `json:"label"`
	Price string `json:"price"`
}

type CheckoutResponse struct {
	Success    bool      `json:"success"`
	OrderID    string    `json:"orderId,omitempty"`
	PaymentURL string    `json:"paymentUrl,omitempty"`
	PlanInfo   *PlanInfo `json:"planInfo,omitempty"`
	Error      string    `json:"error,omitempty"`
}

type CreateOrderRequest struct {
	PlanID string `json:"planId"`
	Email  string `json:"email"`
}

type OrderSummary struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	PaymentStatus      string    `json:"paymentStatus"`
	DeliveryStatus     string    `json:"deliveryStatus"`
	ProductName        string    `json:"productName"`
	CreatedAt          time.Time `json:"createdAt"`
	SubscriptionStatus *string   `json:"subscriptionStatus"`
}

type UpdateOrderRequest struct {
	PaymentStatus  *string `json:"paymentStatus"`
	DeliveryStatus *string `json:"deliveryStatus"`
	Notes          *string `json:"notes"`
}

type SubscriptionInfo struct {
	ID      uint      `json:"id"`
	Status  string    `json:"status"`
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
}

type MarkPaidResponse struct {
	OrderID       string           `json:"orderId"`
	PaymentStatus string           `json:"paymentStatus"`
	Subscription  SubscriptionInfo `json:"subscription"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// NowPaymentsIPN is the inbound webhook payload. Only the payment id,
// order_id and payment_status drive behavior; the rest is kept for logging
// parity with the provider contract.
type NowPaymentsIPN struct {
	ID            string  `json:"id"`
	PaymentID     int64   `json:"payment_id"`
	InvoiceID     int64   `json:"invoice_id"`
	OrderID       string  `json:"order_id"`
	PaymentStatus string  `json:"payment_status"`
	PayAddress    string  `json:"pay_address"`
	PriceAmount   float64 `json:"price_amount"`
	PriceCurrency string  `json:"price_currency"`
	PayAmount     float64 `json:"pay_amount"`
	PayCurrency   string  `json:"pay_currency"`
	PurchaseID    string  `json:"purchase_id"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// EventID returns the identifier used for replay protection. Some provider
// payloads carry a string id, others only the numeric payment_id.
func (p *NowPaymentsIPN) EventID() string {
	if p.ID != "" {
		return p.ID
	}
	if p.PaymentID != 0 {
		return strconv.FormatInt(p.PaymentID, 10)
	}
	return ""
}

type ClientListResponse struct {
	Clients []*model.ClientData `json:"clients"`
	Total   int64               `json:"total"`
	Page    int                 `json:"page"`
	Pages   int                 `json:"pages"`
}

type UpdateSettingsRequest struct {
	Version int `json:"version"`

	NotifyEmail        *bool `json:"notifyEmail"`
	NotifyWebhook      *bool `json:"notifyWebhook"`
	NotifyOrderUpdates *bool `json:"notifyOrderUpdates"`

	SessionTimeoutMinutes *int  `json:"sessionTimeoutMinutes"`
	MaxLoginAttempts      *int  `json:"maxLoginAttempts"`
	RequireStrongPassword *bool `json:"requireStrongPassword"`

	RateLimit     *int    `json:"rateLimit"`
	WebhookSecret *string `json:"webhookSecret"`
}
