package processor

import (
	"fmt"

	"github.com/golang/snappy"
)

// CompressPayload snappy-encodes an encoded figure
func CompressPayload(data []byte) []byte {
	return snappy.Encode(nil, data)
}

// DecompressPayload reverses CompressPayload
func DecompressPayload(data []byte) ([]byte, error) {
	decompressed, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("decompress payload: %w", err)
	}
	return decompressed, nil
}
