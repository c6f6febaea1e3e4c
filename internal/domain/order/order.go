package order

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

var (
	// ErrNotFound indicates no record exists for the requested order identifier
	ErrNotFound = errors.New("order: not found")
	// ErrOrderIDRequired indicates the order identifier is missing or blank
	ErrOrderIDRequired = errors.New("order: orderId is required")
	// ErrPlatformRequired indicates the platform is missing or blank
	ErrPlatformRequired = errors.New("order: platform is required")
)

// ---------------------------------------------------------------------------
// Tracking snapshot
// ---------------------------------------------------------------------------

// TrackingEvent is a single entry in a shipment's tracking history.
type TrackingEvent struct {
	Status   string    `json:"status"`
	Date     time.Time `json:"date"`
	Location string    `json:"location"`
}

// TrackingInfo is a point-in-time snapshot of a shipment's state as reported
// by an e-commerce platform.
type TrackingInfo struct {
	Status            string          `json:"status"`
	EstimatedDelivery time.Time       `json:"estimatedDelivery"`
	History           []TrackingEvent `json:"history"`
}

// ---------------------------------------------------------------------------
// Order
// ---------------------------------------------------------------------------

// Order is the stored record for one externally supplied order identifier.
// AIAnalysis is derived on every fetch when a tracking status is present; it
// is never written to the store.
type Order struct {
	OrderID      string        `json:"orderId"`
	Platform     string        `json:"platform"`
	TrackingInfo *TrackingInfo `json:"trackingInfo,omitempty"`
	LastUpdated  time.Time     `json:"lastUpdated"`
	AIAnalysis   string        `json:"aiAnalysis,omitempty"`
}

// New creates an order record, validating the required identifiers. The
// caller-supplied tracking info may be nil.
func New(orderID, platform string, info *TrackingInfo) (Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return Order{}, ErrOrderIDRequired
	}
	if strings.TrimSpace(platform) == "" {
		return Order{}, ErrPlatformRequired
	}
	return Order{
		OrderID:      orderID,
		Platform:     platform,
		TrackingInfo: info,
		LastUpdated:  time.Now(),
	}, nil
}

// Touch refreshes the last-updated timestamp.
func (o *Order) Touch() {
	o.LastUpdated = time.Now()
}

// ---------------------------------------------------------------------------
// Repository
// ---------------------------------------------------------------------------

// Repository defines behavior for persisting order records. Implementations
// must make Upsert and Get key-atomic: concurrent writers for the same
// identifier resolve to last-writer-wins with no partial record visible.
type Repository interface {
	// Upsert stores the record, fully replacing any prior record for the
	// same identifier, and returns the stored record.
	Upsert(ctx context.Context, o Order) (Order, error)
	// Get returns the current record or ErrNotFound.
	Get(ctx context.Context, orderID string) (Order, error)
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
	// Close releases any resources held by the store.
	Close() error
}
