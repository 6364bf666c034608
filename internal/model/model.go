package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment statuses an Order can hold. The webhook maps provider statuses onto
// these; the admin update route rejects anything else.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentCancelled = "cancelled"
)

// Delivery statuses.
const (
	DeliveryPending    = "pending"
	DeliveryProcessing = "processing"
	DeliveryCompleted  = "completed"
	DeliveryFailed     = "failed"
)

const SubscriptionActive = "ACTIVE"

type Product struct {
	ID           string          `gorm:"primaryKey;size:64;not null" json:"id"` // plan id, e.g. plan_3m
	Name         string          `gorm:"size:128;not null" json:"name"`
	Description  string          `gorm:"size:512" json:"description"`
	PriceUsd     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"priceUsd"`
	DurationDays int             `gorm:"not null" json:"durationDays"`
	Active       bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type Order struct {
	ID             string `gorm:"primaryKey;size:64;not null" json:"id"`
	FullName       string `gorm:"size:128;not null" json:"fullName"`
	Email          string `gorm:"size:256;index;not null" json:"email"`
	Region         string `gorm:"size:64;not null" json:"region"`
	ProductID      string `gorm:"size:64;index;not null" json:"productId"`
	AdultChannels  bool   `gorm:"not null" json:"adultChannels"`
	PaymentStatus  string `gorm:"size:32;index;not null" json:"paymentStatus"`
	DeliveryStatus string `gorm:"size:32;index;not null" json:"deliveryStatus"`
	// NowpaymentsID is the provider-side reference used to match inbound
	// webhook deliveries to this order.
	NowpaymentsID *string   `gorm:"size:128;index" json:"nowpaymentsId"`
	Notes         string    `gorm:"size:1024" json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Subscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   string    `gorm:"size:64;uniqueIndex;not null" json:"orderId"`
	ProductID string    `gorm:"size:64;index;not null" json:"productId"`
	Status    string    `gorm:"size:32;not null" json:"status"` // ACTIVE
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ClientData struct {
	ID        string    `gorm:"primaryKey;size:64;not null" json:"id"`
	FullName  string    `gorm:"size:128;not null" json:"fullName"`
	Email     string    `gorm:"size:256;uniqueIndex;not null" json:"email"`
	Region    string    `gorm:"size:64;not null" json:"region"`
	Source    string    `gorm:"size:64;not null;default:website" json:"source"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WebhookEvent records provider payment ids that were already processed so
// replayed or out-of-order deliveries become no-ops.
type WebhookEvent struct {
	EventID     string    `gorm:"primaryKey;size:128;not null"`
	EventType   string    `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}

// AdminSettings is a single durable row. Version implements optimistic
// concurrency: updates carry the version they read and fail on mismatch.
type AdminSettings struct {
	ID      uint `gorm:"primaryKey" json:"-"`
	Version int  `gorm:"not null;default:1" json:"version"`

	NotifyEmail        bool `gorm:"not null" json:"notifyEmail"`
	NotifyWebhook      bool `gorm:"not null" json:"notifyWebhook"`
	NotifyOrderUpdates bool `gorm:"not null;default:true" json:"notifyOrderUpdates"`

	SessionTimeoutMinutes int  `gorm:"not null;default:30" json:"sessionTimeoutMinutes"`
	MaxLoginAttempts      int  `gorm:"not null;default:5" json:"maxLoginAttempts"`
	RequireStrongPassword bool `gorm:"not null;default:true" json:"requireStrongPassword"`

	RateLimit     int    `gorm:"not null;default:100" json:"rateLimit"`
	WebhookSecret string `gorm:"size:256" json:"webhookSecret"`

	UpdatedAt time.Time `json:"updatedAt"`
}
