// Package ecommerce contains tracking adapters for e-commerce platforms.
//
// The only adapter currently shipped is a simulator: no real platform API is
// called. Each invocation picks a status uniformly at random from the
// platform's lifecycle labels, independently of previous calls, so repeated
// fetches may report an earlier lifecycle stage than before (e.g. "Entregue"
// followed by "Preparando para envio"). That is the documented contract of
// the simulator, not an ordering bug.
package ecommerce

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/ordertrack/backend/internal/domain/integration"
	"github.com/ordertrack/backend/internal/domain/order"
)

// distributionCenter is the placeholder location attached to every simulated
// tracking event.
const distributionCenter = "Centro de distribuição"

// deliveryEstimate is how far in the future the simulated estimated delivery
// date lies.
const deliveryEstimate = 3 * 24 * time.Hour

// platformStatuses holds the shipment lifecycle labels per platform, in each
// platform's customer-facing language, ordered from order receipt to
// delivery.
var platformStatuses = map[integration.PlatformCode][]string{
	integration.PlatformMercadoLivre: {
		"Pedido recebido",
		"Preparando para envio",
		"Enviado",
		"Em trânsito",
		"Entregue",
	},
	integration.PlatformAmazon: {
		"Order placed",
		"Preparing for shipment",
		"Shipped",
		"Out for delivery",
		"Delivered",
	},
	integration.PlatformShopee: {
		"Pedido confirmado",
		"Processando",
		"Enviado",
		"A caminho",
		"Entregue",
	},
}

// StatusLabels returns the lifecycle labels for a platform, or nil when the
// platform has no simulated tracking.
func StatusLabels(platform integration.PlatformCode) []string {
	labels, ok := platformStatuses[platform]
	if !ok {
		return nil
	}
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

// SimulatedTracker implements integration.TrackingProvider with randomized
// snapshots for the known platforms. One tracker is shared by all request
// goroutines; rand.Rand is not safe for concurrent use, so draws are
// serialized by mu.
type SimulatedTracker struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// SimulatedTrackerOption is a functional option for SimulatedTracker
type SimulatedTrackerOption func(*SimulatedTracker)

// WithRand sets the random source (deterministic sources are useful in tests)
func WithRand(rng *rand.Rand) SimulatedTrackerOption {
	return func(t *SimulatedTracker) {
		t.rng = rng
	}
}

// WithClock sets the time source
func WithClock(now func() time.Time) SimulatedTrackerOption {
	return func(t *SimulatedTracker) {
		t.now = now
	}
}

// NewSimulatedTracker creates a tracker seeded from the current time.
func NewSimulatedTracker(opts ...SimulatedTrackerOption) *SimulatedTracker {
	t := &SimulatedTracker{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Supports reports whether the platform has simulated tracking. The
// simulator covers exactly the known platform set.
func (t *SimulatedTracker) Supports(platform integration.PlatformCode) bool {
	return platform.IsKnown()
}

// Track returns a randomized tracking snapshot: one status from the
// platform's label set, an estimated delivery three days out, and a
// single-entry history log.
func (t *SimulatedTracker) Track(ctx context.Context, platform integration.PlatformCode, orderID string) (*order.TrackingInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	labels, ok := platformStatuses[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %s", integration.ErrPlatformNotSupported, platform)
	}

	now := t.now()
	t.mu.Lock()
	status := labels[t.rng.Intn(len(labels))]
	t.mu.Unlock()

	return &order.TrackingInfo{
		Status:            status,
		EstimatedDelivery: now.Add(deliveryEstimate),
		History: []order.TrackingEvent{
			{
				Status:   status,
				Date:     now,
				Location: distributionCenter,
			},
		},
	}, nil
}

// Ensure SimulatedTracker implements TrackingProvider interface
var _ integration.TrackingProvider = (*SimulatedTracker)(nil)
