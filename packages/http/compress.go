package http

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
)

var gzipWriterPool = sync.Pool{
	New: func() interface{} {
		return gzip.NewWriter(io.Discard)
	},
}

// Compress gzip-encodes data.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	z := gzipWriterPool.Get().(*gzip.Writer)
	defer gzipWriterPool.Put(z)

	z.Reset(&buf)
	if _, err := z.Write(data); err != nil {
		return nil, fmt.Errorf("gzip write: %w", err)
	}
	if err := z.Close(); err != nil {
		return nil, fmt.Errorf("gzip close: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress reverses Compress.
func Decompress(data []byte) ([]byte, error) {
	z, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip reader: %w", err)
	}
	defer func() { _ = z.Close() }()
	return io.ReadAll(z)
}
