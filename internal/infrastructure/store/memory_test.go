package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordertrack/backend/internal/domain/order"
)

func TestMemoryStoreUpsert(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and returns the record", func(t *testing.T) {
		s := NewMemoryStore()
		o, err := order.New("PED-1", "amazon", nil)
		require.NoError(t, err)

		stored, err := s.Upsert(ctx, o)
		require.NoError(t, err)
		assert.Equal(t, o.OrderID, stored.OrderID)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("replaces prior record with the same id", func(t *testing.T) {
		s := NewMemoryStore()
		first, _ := order.New("PED-1", "amazon", &order.TrackingInfo{Status: "Shipped"})
		second, _ := order.New("PED-1", "shopee", nil)

		_, err := s.Upsert(ctx, first)
		require.NoError(t, err)
		_, err = s.Upsert(ctx, second)
		require.NoError(t, err)

		got, err := s.Get(ctx, "PED-1")
		require.NoError(t, err)
		assert.Equal(t, "shopee", got.Platform)
		assert.Nil(t, got.TrackingInfo, "replacement drops the old snapshot entirely")
		assert.Equal(t, 1, s.Len())
	})

	t.Run("does not alias caller-owned tracking info", func(t *testing.T) {
		s := NewMemoryStore()
		info := &order.TrackingInfo{
			Status:  "Enviado",
			History: []order.TrackingEvent{{Status: "Enviado", Date: time.Now()}},
		}
		o, _ := order.New("PED-2", "mercadolivre", info)

		_, err := s.Upsert(ctx, o)
		require.NoError(t, err)

		// Mutating the caller's snapshot must not affect the stored record.
		info.Status = "changed"
		info.History[0].Status = "changed"

		got, err := s.Get(ctx, "PED-2")
		require.NoError(t, err)
		assert.Equal(t, "Enviado", got.TrackingInfo.Status)
		assert.Equal(t, "Enviado", got.TrackingInfo.History[0].Status)
	})
}

func TestMemoryStoreGet(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ErrNotFound for unknown id", func(t *testing.T) {
		s := NewMemoryStore()
		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, order.ErrNotFound)
	})

	t.Run("returned record does not alias the table", func(t *testing.T) {
		s := NewMemoryStore()
		o, _ := order.New("PED-3", "amazon", &order.TrackingInfo{Status: "Shipped"})
		_, err := s.Upsert(ctx, o)
		require.NoError(t, err)

		got, err := s.Get(ctx, "PED-3")
		require.NoError(t, err)
		got.TrackingInfo.Status = "mutated"

		again, err := s.Get(ctx, "PED-3")
		require.NoError(t, err)
		assert.Equal(t, "Shipped", again.TrackingInfo.Status)
	})
}

func TestMemoryStoreConcurrency(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			o, _ := order.New("PED-shared", fmt.Sprintf("platform-%d", i), nil)
			_, _ = s.Upsert(ctx, o)
		}(i)
		go func() {
			defer wg.Done()
			_, _ = s.Get(ctx, "PED-shared")
		}()
	}
	wg.Wait()

	got, err := s.Get(ctx, "PED-shared")
	require.NoError(t, err)
	assert.Equal(t, "PED-shared", got.OrderID)
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStorePingAndClose(t *testing.T) {
	s := NewMemoryStore()
	assert.NoError(t, s.Ping(context.Background()))
	assert.NoError(t, s.Close())
}
