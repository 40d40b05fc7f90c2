package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRC32C_KnownValue(t *testing.T) {
	// RFC 3720 test vector: 32 bytes of zeros.
	assert.Equal(t, uint32(0x8a9136aa), CRC32C(make([]byte, 32)))
}

func TestCRC32C_Streaming(t *testing.T) {
	data := []byte("ndimage snapshot payload")
	h := NewCRC32C()
	_, _ = h.Write(data[:7])
	_, _ = h.Write(data[7:])
	assert.Equal(t, CRC32C(data), h.Sum32())
}

func TestAppendVerify(t *testing.T) {
	buf := AppendCRC32C([]byte("hello"))
	require.Len(t, buf, 9)

	payload, ok := VerifyCRC32C(buf)
	require.True(t, ok)
	assert.Equal(t, "hello", string(payload))

	buf[1] ^= 0x01
	_, ok = VerifyCRC32C(buf)
	assert.False(t, ok)

	_, ok = VerifyCRC32C([]byte{1, 2})
	assert.False(t, ok)
}
