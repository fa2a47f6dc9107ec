package kv

import (
	"fmt"

	"github.com/DataDog/zstd"
)

// compression level for cached routes.
const routeCompressionLevel = zstd.BestSpeed

func compress(bb []byte) ([]byte, error) {
	bbCompressed, err := zstd.CompressLevel(nil, bb, routeCompressionLevel)
	if err != nil {
		return nil, fmt.Errorf("compress cached route: %w", err)
	}
	return bbCompressed, nil
}

func decompress(bbCompressed []byte) ([]byte, error) {
	bb, err := zstd.Decompress(nil, bbCompressed)
	if err != nil {
		return nil, fmt.Errorf("decompress cached route: %w", err)
	}
	return bb, nil
}
