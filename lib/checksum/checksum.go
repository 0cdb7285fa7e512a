// Package checksum derives short content keys for buffered blobs.
package checksum

import (
	"crypto/sha256"
	"encoding/binary"
)

// CalculateCheckSum returns the first four bytes of the SHA-256 digest of data
// as a non-negative int.
func CalculateCheckSum(data []byte) int {
	sum := sha256.Sum256(data)
	return int(binary.BigEndian.Uint32(sum[:4]))
}
