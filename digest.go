package ndimage

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 fingerprint of an image's content.
type Digest [32]byte

// digestKey is the ASCII domain name "ndimage.image.digest", zero-padded
// to the 32 bytes BLAKE3 keyed mode requires.
var digestKey = [32]byte{
	'n', 'd', 'i', 'm', 'a', 'g', 'e', '.', 'i', 'm', 'a', 'g', 'e', '.',
	'd', 'i', 'g', 'e', 's', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Digest hashes the data type, sizes, tensor element count and samples in
// normal order. Two images with the same content have the same digest
// regardless of strides, views or allocator.
func (img *Image) Digest() (Digest, error) {
	if err := img.requireForged(); err != nil {
		return Digest{}, err
	}

	hasher, err := blake3.NewKeyed(digestKey[:])
	if err != nil {
		panic("ndimage: BLAKE3 keyed hash initialization failed: " + err.Error())
	}

	var hdr []byte
	hdr = append(hdr, byte(img.dataType))
	hdr = binary.LittleEndian.AppendUint32(hdr, uint32(img.sizes.Len()))
	for _, s := range img.sizes.Slice() {
		hdr = binary.LittleEndian.AppendUint64(hdr, uint64(s))
	}
	hdr = binary.LittleEndian.AppendUint64(hdr, uint64(img.tensor.Elements()))
	_, _ = hasher.Write(hdr)

	size := img.dataType.SizeOf()
	data := img.block.data
	buf := make([]byte, 0, 32<<10)
	img.forEachSample(func(pos int) {
		buf = append(buf, data[pos:pos+size]...)
		if len(buf) >= cap(buf)-size {
			_, _ = hasher.Write(buf)
			buf = buf[:0]
		}
	})
	_, _ = hasher.Write(buf)

	var d Digest
	copy(d[:], hasher.Sum(nil))
	return d, nil
}

// String returns the digest in hex.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}
