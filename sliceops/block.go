package sliceops

import (
	"github.com/pkg/errors"
	"github.com/rigado/smpcrypto"
)

const blockSize = smpcrypto.BlockSize

// Xor16 returns a XOR b. Both operands must be exactly one block.
func Xor16(a, b []byte) ([]byte, error) {
	if err := smpcrypto.CheckLen("xor a", a, blockSize); err != nil {
		return nil, err
	}
	if err := smpcrypto.CheckLen("xor b", b, blockSize); err != nil {
		return nil, err
	}

	out := make([]byte, blockSize)
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out, nil
}

// ShiftLeftOneBit treats b as a big-endian 128-bit integer and shifts it
// left by one. The bit shifted out of b[0] is dropped.
func ShiftLeftOneBit(b []byte) ([]byte, error) {
	if err := smpcrypto.CheckLen("shift", b, blockSize); err != nil {
		return nil, err
	}

	out := make([]byte, blockSize)
	var carry byte
	for i := blockSize - 1; i >= 0; i-- {
		out[i] = b[i]<<1 | carry
		carry = b[i] >> 7
	}
	return out, nil
}

// Pad copies the first n bytes of last, appends 0x80 when n < 16 and zero
// fills the rest of the block.
func Pad(last []byte, n int) ([]byte, error) {
	if n < 0 || n > blockSize {
		return nil, &smpcrypto.RangeError{Field: "pad length", Value: n}
	}
	if len(last) < n {
		return nil, errors.Wrap(&smpcrypto.LengthError{Field: "pad", Want: n, Got: len(last)}, "short last block")
	}

	out := make([]byte, blockSize)
	copy(out, last[:n])
	if n < blockSize {
		out[n] = 0x80
	}
	return out, nil
}
