package storage

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// upper bound for decoder allocations when loading a graph file.
const maxDecoderMemory = 4 << 30

// writeCompressed streams data through a zstd encoder into w.
func writeCompressed(w io.Writer, data []byte) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression), zstd.WithEncoderCRC(true))
	if err != nil {
		return fmt.Errorf("create zstd encoder: %w", err)
	}

	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return fmt.Errorf("compress graph: %w", err)
	}
	return enc.Close()
}

// readCompressed decompresses the whole zstd stream from r.
func readCompressed(r io.Reader) ([]byte, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderMaxMemory(maxDecoderMemory), zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decompress graph: %w", err)
	}
	return data, nil
}
