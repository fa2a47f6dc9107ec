package kv

import (
	"github.com/kelindar/binary"
)

// CachedRoute is a shortest path as stored in the route cache.
type CachedRoute struct {
	NodeIDs []int64
	Lats    []float64
	Lons    []float64
	Length  int64
}

func encodeRoute(route CachedRoute) ([]byte, error) {
	bb, err := binary.Marshal(route)
	if err != nil {
		return nil, err
	}
	return compress(bb)
}

func decodeRoute(bbCompressed []byte) (CachedRoute, error) {
	var route CachedRoute
	bb, err := decompress(bbCompressed)
	if err != nil {
		return route, err
	}
	err = binary.Unmarshal(bb, &route)
	return route, err
}
