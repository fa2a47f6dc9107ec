package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKVDB(t *testing.T) *KVDB {
	db, err := OpenBadger("")
	require.NoError(t, err)

	k := NewKVDB(db)
	t.Cleanup(func() {
		k.Close()
	})
	return k
}

func TestSaveAndGetRoute(t *testing.T) {
	k := newTestKVDB(t)
	ctx := context.Background()

	route := CachedRoute{
		NodeIDs: []int64{1, 3},
		Lats:    []float64{0, 1},
		Lons:    []float64{0, 1},
		Length:  157249,
	}
	require.NoError(t, k.SaveRoute(ctx, "twophase", 1, 3, route))

	got, err := k.GetRoute(ctx, "twophase", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, route, got)

	_, err = k.GetRoute(ctx, "twophase", 3, 1)
	assert.ErrorIs(t, err, ErrRouteNotCached)

	_, err = k.GetRoute(ctx, "restart", 1, 3)
	assert.ErrorIs(t, err, ErrRouteNotCached)
}

func TestSaveRoutes(t *testing.T) {
	k := newTestKVDB(t)
	ctx := context.Background()

	entries := make([]RouteEntry, 0)
	for i := int64(0); i < 50; i++ {
		entries = append(entries, RouteEntry{
			From:  i,
			To:    i + 1,
			Route: CachedRoute{NodeIDs: []int64{i, i + 1}, Lats: []float64{0, 0}, Lons: []float64{0, 0}, Length: i},
		})
	}
	require.NoError(t, k.SaveRoutes(ctx, "restart", entries))

	for _, e := range entries {
		got, err := k.GetRoute(ctx, "restart", e.From, e.To)
		require.NoError(t, err)
		assert.Equal(t, e.Route.Length, got.Length)
	}
}

func TestGetRouteCanceled(t *testing.T) {
	k := newTestKVDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := k.GetRoute(ctx, "twophase", 1, 2)
	assert.ErrorIs(t, err, context.Canceled)
}
