package integration

import (
	"context"
	"errors"

	"github.com/ordertrack/backend/internal/domain/order"
)

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

var (
	// ErrPlatformNotSupported indicates the provider has no adapter for the platform
	ErrPlatformNotSupported = errors.New("integration: platform not supported")
	// ErrPlatformUnavailable indicates the platform could not be reached
	ErrPlatformUnavailable = errors.New("integration: platform temporarily unavailable")
)

// ---------------------------------------------------------------------------
// PlatformCode represents a supported e-commerce platform
// ---------------------------------------------------------------------------

// PlatformCode represents an e-commerce platform identifier as supplied by
// clients. Values outside the known set are stored verbatim but receive no
// tracking enrichment.
type PlatformCode string

const (
	// PlatformMercadoLivre represents Mercado Livre
	PlatformMercadoLivre PlatformCode = "mercadolivre"
	// PlatformAmazon represents Amazon
	PlatformAmazon PlatformCode = "amazon"
	// PlatformShopee represents Shopee
	PlatformShopee PlatformCode = "shopee"
)

// IsKnown returns true if the platform has a tracking adapter.
func (c PlatformCode) IsKnown() bool {
	switch c {
	case PlatformMercadoLivre, PlatformAmazon, PlatformShopee:
		return true
	default:
		return false
	}
}

// String returns the string representation of PlatformCode
func (c PlatformCode) String() string {
	return string(c)
}

// ---------------------------------------------------------------------------
// TrackingProvider
// ---------------------------------------------------------------------------

// TrackingProvider produces shipment tracking snapshots for platform orders.
// The bundled implementation simulates platform responses; a production
// adapter integrating a real platform API implements the same contract and
// requires no handler changes.
type TrackingProvider interface {
	// Supports reports whether the provider can track orders on the platform.
	Supports(platform PlatformCode) bool
	// Track returns the current tracking snapshot for the order.
	Track(ctx context.Context, platform PlatformCode, orderID string) (*order.TrackingInfo, error)
}
