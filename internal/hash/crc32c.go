package hash

import (
	"encoding/binary"
	"hash"
	"hash/crc32"
)

// crc32cTable is pre-computed for the Castagnoli polynomial.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the CRC32-Castagnoli checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// NewCRC32C returns a new CRC32-Castagnoli hash.Hash32.
func NewCRC32C() hash.Hash32 {
	return crc32.New(crc32cTable)
}

// AppendCRC32C appends the little-endian checksum of data to data.
func AppendCRC32C(data []byte) []byte {
	return binary.LittleEndian.AppendUint32(data, CRC32C(data))
}

// VerifyCRC32C splits a buffer produced by AppendCRC32C into its payload and
// reports whether the trailing checksum matches.
func VerifyCRC32C(data []byte) ([]byte, bool) {
	if len(data) < 4 {
		return nil, false
	}
	payload := data[:len(data)-4]
	want := binary.LittleEndian.Uint32(data[len(data)-4:])
	return payload, CRC32C(payload) == want
}
