// Package store provides order.Repository implementations. The in-memory
// store is the default backend; Redis is available for deployments that want
// records to survive process restarts.
package store

import (
	"context"
	"sync"

	"github.com/ordertrack/backend/internal/domain/order"
)

// MemoryStore is a process-local order repository. A single RWMutex guards
// the table, making Upsert and Get key-atomic: readers never observe a
// partially written record and concurrent writes resolve to last-writer-wins.
type MemoryStore struct {
	mu     sync.RWMutex
	orders map[string]order.Order
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{orders: make(map[string]order.Order)}
}

// Upsert stores the record, fully replacing any prior record for the same
// identifier.
func (s *MemoryStore) Upsert(_ context.Context, o order.Order) (order.Order, error) {
	stored := cloneOrder(o)
	s.mu.Lock()
	s.orders[o.OrderID] = stored
	s.mu.Unlock()
	return cloneOrder(stored), nil
}

// Get retrieves a record by order identifier.
func (s *MemoryStore) Get(_ context.Context, orderID string) (order.Order, error) {
	s.mu.RLock()
	o, ok := s.orders[orderID]
	s.mu.RUnlock()
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	return cloneOrder(o), nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// Len returns the number of stored records (for tests and diagnostics).
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

// cloneOrder copies the record so callers and the table never alias the same
// tracking snapshot.
func cloneOrder(o order.Order) order.Order {
	c := o
	if o.TrackingInfo != nil {
		info := *o.TrackingInfo
		if o.TrackingInfo.History != nil {
			info.History = make([]order.TrackingEvent, len(o.TrackingInfo.History))
			copy(info.History, o.TrackingInfo.History)
		}
		c.TrackingInfo = &info
	}
	return c
}

// Ensure MemoryStore implements order.Repository
var _ order.Repository = (*MemoryStore)(nil)
